package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PRIMER_CONFIG_DIR", dir)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, defaultServer, cfg.Server)
	assert.Equal(t, defaultEnv, cfg.Env)
	assert.Equal(t, filepath.Join(dir, "session.db"), cfg.SessionPath)
}

func TestLoad_ServerFromEnvAndFlag(t *testing.T) {
	t.Setenv("PRIMER_CONFIG_DIR", t.TempDir())
	t.Setenv("PRIMER_SERVER", "https://vault.example.com/")

	v := viper.New()
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "https://vault.example.com", cfg.Server)

	v = viper.New()
	v.Set("server", "http://127.0.0.1:9000")
	cfg, err = Load(v)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.Server)
}

func TestLoad_BadServer(t *testing.T) {
	t.Setenv("PRIMER_CONFIG_DIR", t.TempDir())
	t.Setenv("PRIMER_SERVER", "localhost:8080")

	_, err := Load(viper.New())
	assert.Error(t, err)
}

func TestEnsureDir(t *testing.T) {
	cfg := &Config{ConfigDir: filepath.Join(t.TempDir(), "nested", ".primer")}
	require.NoError(t, cfg.EnsureDir())
	assert.DirExists(t, cfg.ConfigDir)
}
