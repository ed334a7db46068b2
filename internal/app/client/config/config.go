package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServer    = "http://localhost:8080"
	defaultEnv       = "local"
	defaultConfigDir = ".primer"
	sessionFile      = "session.db"
)

type Config struct {
	Env         string
	Server      string
	LogLevel    string
	ConfigDir   string
	SessionPath string
}

// Load reads PRIMER_* variables (and an optional .env) through v. Flags
// bound to v win over the environment.
func Load(v *viper.Viper) (*Config, error) {
	// Отсутствие .env не ошибка
	_ = godotenv.Load()

	v.SetEnvPrefix("primer")
	v.AutomaticEnv()
	v.SetDefault("env", defaultEnv)
	v.SetDefault("server", defaultServer)
	v.SetDefault("log_level", "")

	configDir := v.GetString("config_dir")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		configDir = filepath.Join(home, defaultConfigDir)
	}

	cfg := &Config{
		Env:         v.GetString("env"),
		Server:      strings.TrimRight(v.GetString("server"), "/"),
		LogLevel:    v.GetString("log_level"),
		ConfigDir:   configDir,
		SessionPath: filepath.Join(configDir, sessionFile),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server == "" {
		return fmt.Errorf("адрес сервера не может быть пустым")
	}
	if !strings.HasPrefix(c.Server, "http://") && !strings.HasPrefix(c.Server, "https://") {
		return fmt.Errorf("адрес сервера должен начинаться с http:// или https://: %q", c.Server)
	}
	return nil
}

// EnsureDir создает директорию для локального файла сессии
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.ConfigDir, 0o700)
}
