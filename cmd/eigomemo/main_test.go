package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(nil, slog.LevelDebug))
		})
	}
}

func TestNewMemoCommand(t *testing.T) {
	cmd := newMemoCommand()

	assert.Equal(t, "memo", cmd.Use)
	assert.True(t, cmd.HasSubCommands())

	subcommands := map[string]bool{}
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
		assert.NotNil(t, sub.RunE, "subcommand %s should be runnable", sub.Name())
	}
	for _, name := range []string{"add", "list", "show", "translate", "tag", "done", "delete"} {
		assert.True(t, subcommands[name], "memo should have a %s subcommand", name)
	}
}

func TestNewMemoListCommand(t *testing.T) {
	cmd := newMemoListCommand()

	statusFlag := cmd.Flags().Lookup("status")
	require.NotNil(t, statusFlag)
	assert.Equal(t, "", statusFlag.DefValue)
}

func TestNewReviewCommand(t *testing.T) {
	cmd := newReviewCommand()

	assert.Equal(t, "review", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestNewInsightsCommand(t *testing.T) {
	cmd := newInsightsCommand()

	assert.Equal(t, "insights", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestNewMigrateCommand(t *testing.T) {
	cmd := newMigrateCommand()

	assert.Equal(t, "migrate", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}
