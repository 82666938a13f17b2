package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "sortdl", AppName)
}

func TestDatabaseFilename(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "journal.db", DatabaseFilename)
}

func TestLogFilename(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "sortdl.log", LogFilename)
}

func TestConfigFilename(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "config.yaml", ConfigFilename)
}
