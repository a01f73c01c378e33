package testutils

import (
	"github.com/icinga/icingadb/pkg/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// NewTestLogger creates a new logger for testing purposes.
//
// The logger uses zaptest to integrate with the testing.T instance, allowing log output to be
// captured and displayed in test results. The logging level is set to Debug, so that every dropped
// query string segment shows up in the output.
func NewTestLogger(t *testing.T) *logging.Logger {
	return logging.NewLogger(zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel)).Sugar(), time.Hour)
}

// WriteConfigFile writes the given YAML content to a config file in a temporary directory and returns its path.
func WriteConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "writing config file should not fail")

	return path
}
