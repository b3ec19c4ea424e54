package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quire/internal/config"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := config.FromEnv(env(nil))
		assert.Equal(t, "nvim", cfg.Editor)
		assert.Empty(t, cfg.Author)
		assert.Empty(t, cfg.LogFile)
	})

	t.Run("Quire Variables Win", func(t *testing.T) {
		cfg := config.FromEnv(env(map[string]string{
			"QUIRE_EDITOR":   "hx",
			"EDITOR":         "vi",
			"QUIRE_AUTHOR":   "ada",
			"USER":           "root",
			"QUIRE_LOG_FILE": "/tmp/quire.log",
		}))
		assert.Equal(t, "hx", cfg.Editor)
		assert.Equal(t, "ada", cfg.Author)
		assert.Equal(t, "/tmp/quire.log", cfg.LogFile)
	})

	t.Run("Falls Back To Standard Variables", func(t *testing.T) {
		cfg := config.FromEnv(env(map[string]string{"EDITOR": "vi", "USER": "root"}))
		assert.Equal(t, "vi", cfg.Editor)
		assert.Equal(t, "root", cfg.Author)
	})
}

func TestLoad(t *testing.T) {
	t.Run("Missing File Is Fine", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), ".env"))
		require.NoError(t, err)
	})

	t.Run("Reads Dotenv", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(envFile, []byte("QUIRE_AUTHOR=from-dotenv\n"), 0644))

		t.Setenv("QUIRE_AUTHOR", "")
		require.NoError(t, os.Unsetenv("QUIRE_AUTHOR"))

		cfg, err := config.Load(envFile)
		require.NoError(t, err)
		assert.Equal(t, "from-dotenv", cfg.Author)
	})

	t.Run("Environment Wins Over Dotenv", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(envFile, []byte("QUIRE_EDITOR=from-dotenv\n"), 0644))
		t.Setenv("QUIRE_EDITOR", "from-env")

		cfg, err := config.Load(envFile)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Editor)
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	config.NewLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	config.NewLogger(&buf, true).Debug("shown", "k", "v")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "k=v")

	config.NewLogger(nil, true).Info("discarded")
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quire.log")
	w := config.LogFile(path)
	logger := config.NewLogger(w, false)
	logger.Info("written")
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=written")
}
