package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "the file is not created")
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "precision: 4\nlog_level: debug\ndiagram:\n  width: 12\n")
	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, s.Precision)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 12.0, s.Diagram.Width)
	assert.Equal(t, 6.0, s.Diagram.Height, "unset keys keep their default")
	assert.Equal(t, 1e-9, s.Tolerance)
}

func TestLoadEmptyFile(t *testing.T) {
	s, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":        "precison: 3\n",
		"negative precision": "precision: -1\n",
		"huge precision":     "precision: 11\n",
		"zero tolerance":     "tolerance: 0\n",
		"bad level":          "log_level: loud\n",
		"tiny profile":       "diagram:\n  profile_width: 2\n",
		"not yaml":           "precision: [\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv(EnvVar, "/etc/gostatics.yaml")
	assert.Equal(t, "/tmp/explicit.yaml", Path("/tmp/explicit.yaml"))
	assert.Equal(t, "/etc/gostatics.yaml", Path(""))

	t.Setenv(EnvVar, "")
	t.Setenv("HOME", "/home/someone")
	assert.Equal(t, filepath.Join("/home/someone", ".gostatics", "config.yaml"), Path(""))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseLevel("trace")
	assert.Error(t, err)
}
