// Package testutil provides shared test helpers for config files and memo fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/koutarou20820065963-netizen/eigomemo/internal/memo"
)

// SetupTestConfig writes a minimal config file into tmpDir and returns its path.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	configContent := `database:
  host: localhost
  port: 3306
  database: eigomemo_test
  username: test
review:
  session_size: 3
`
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	return configPath
}

// NewReviewedMemo returns a memo that has a reference answer and is due at
// the given time, which is the common fixture for selector and session tests.
func NewReviewedMemo(id, sourceText, referenceAnswer string, level int, dueAt time.Time) memo.Memo {
	return memo.Memo{
		ID:              id,
		SourceText:      sourceText,
		ReferenceAnswer: &referenceAnswer,
		Status:          memo.StatusUnprocessed,
		Level:           level,
		NextReviewAt:    &dueAt,
	}
}
