package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevel(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)

	Setup("debug", "")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	Setup("WARN", "")
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	Setup("loud", "")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestSetupWritesFile(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)

	file := filepath.Join(t.TempDir(), "cbat.log")
	Setup("info", file)
	logrus.Info("written to file")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
