package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		env               map[string]string
		wantErr           bool
		wantErrorContains []string
		want              *Config
	}{
		{
			name: "custom values override defaults",
			configContent: `database:
  host: db.internal
  port: 3307
  database: memos
  username: app
review:
  session_size: 5
openai:
  timeout_seconds: 10
`,
			want: &Config{
				Database: DatabaseConfig{
					Host:     "db.internal",
					Port:     3307,
					Database: "memos",
					Username: "app",
				},
				OpenAI: OpenAIConfig{
					Model:          "gpt-4o-mini",
					TimeoutSeconds: 10,
				},
				Review: ReviewConfig{
					SessionSize: 5,
				},
			},
		},
		{
			name:          "defaults apply for empty config",
			configContent: "{}\n",
			want: &Config{
				Database: DatabaseConfig{
					Host:     "localhost",
					Port:     3306,
					Database: "eigomemo",
					Username: "eigomemo",
				},
				OpenAI: OpenAIConfig{
					Model:          "gpt-4o-mini",
					TimeoutSeconds: 30,
				},
				Review: ReviewConfig{
					SessionSize: 3,
				},
			},
		},
		{
			name:          "secrets come from the environment",
			configContent: "{}\n",
			env: map[string]string{
				"OPENAI_API_KEY":       "sk-test-key",
				"OPENAI_MODEL":         "gpt-4o",
				"EIGOMEMO_DB_PASSWORD": "hunter2",
			},
			want: &Config{
				Database: DatabaseConfig{
					Host:     "localhost",
					Port:     3306,
					Database: "eigomemo",
					Username: "eigomemo",
					Password: "hunter2",
				},
				OpenAI: OpenAIConfig{
					APIKey:         "sk-test-key",
					Model:          "gpt-4o",
					TimeoutSeconds: 30,
				},
				Review: ReviewConfig{
					SessionSize: 3,
				},
			},
		},
		{
			name: "invalid YAML format",
			configContent: `database:
  host: [unclosed
`,
			wantErr:           true,
			wantErrorContains: []string{"could not be read"},
		},
		{
			name: "session size out of range",
			configContent: `review:
  session_size: 0
`,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "session_size"},
		},
		{
			name: "database port out of range",
			configContent: `database:
  port: 70000
`,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "port"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.env {
				t.Setenv(key, value)
			}

			configFile := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(configFile, []byte(tc.configContent), 0o644))

			loader, err := NewConfigLoader(configFile)
			require.NoError(t, err)

			got, err := loader.Load()
			if tc.wantErr {
				require.Error(t, err)
				for _, msg := range tc.wantErrorContains {
					assert.Contains(t, err.Error(), msg)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoad_MissingConfigFileUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	loader, err := NewConfigLoader("")
	require.NoError(t, err)

	got, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, got.Review.SessionSize)
	assert.Equal(t, "gpt-4o-mini", got.OpenAI.Model)
	assert.Equal(t, "localhost", got.Database.Host)
}
