package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"primer/internal/app/server/crypto"
)

const (
	defaultEnvPath = ".env"
	EnvLocal       = "local"
	EnvDev         = "dev"
	EnvProd        = "prod"

	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	TokenFormatJWT    = "jwt"
	TokenFormatPaseto = "paseto"

	PasswordPolicyBasic  = "basic"
	PasswordPolicyStrict = "strict"
)

// Config is built once at startup and passed by value or pointer; nothing
// mutates it afterwards.
type Config struct {
	Env       string
	DB        DB
	Server    Server
	Logger    Logger
	Token     Token
	Vault     Vault
	Security  Security
	RateLimit RateLimit
}

type DB struct {
	DatabaseURI string
	MaxConns    int32
}

type Server struct {
	RunAddress string
	Storage    string
}

type Logger struct {
	LogLevel string
}

type Token struct {
	Format       string
	Issuer       string
	JWTSecret    []byte
	PasetoKeyHex string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

type Vault struct {
	Key []byte
}

type Security struct {
	BcryptCost     int
	PasswordPolicy string
}

type RateLimit struct {
	PerMinute     int
	AuthPerMinute int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", ":8080")
	v.SetDefault("storage", StoragePostgres)
	v.SetDefault("db_max_conns", 10)
	v.SetDefault("token_format", TokenFormatJWT)
	v.SetDefault("token_issuer", "primer")
	v.SetDefault("jwt_access_token_expires", 1600)
	v.SetDefault("jwt_refresh_token_expires", 604800)
	v.SetDefault("bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("password_policy", PasswordPolicyBasic)
	v.SetDefault("rate_limit_per_minute", 15)
	v.SetDefault("auth_rate_limit_per_minute", 2)
	v.SetDefault("log_level", "")
}

// Load reads an optional .env file (ENV_FILE overrides the path) and then
// the process environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	envPath := v.GetString("env_file")
	if envPath == "" {
		envPath = defaultEnvPath
	}
	// Отсутствие .env не ошибка, переменные берём из окружения
	_ = godotenv.Load(envPath)

	return fromViper(v)
}

// MustLoad is Load that panics; used by main.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func fromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	cfg := Config{
		Env: v.GetString("app_env"),
		DB: DB{
			DatabaseURI: v.GetString("database_uri"),
			MaxConns:    v.GetInt32("db_max_conns"),
		},
		Server: Server{
			RunAddress: v.GetString("run_address"),
			Storage:    strings.ToLower(v.GetString("storage")),
		},
		Logger: Logger{LogLevel: v.GetString("log_level")},
		Token: Token{
			Format:       strings.ToLower(v.GetString("token_format")),
			Issuer:       v.GetString("token_issuer"),
			JWTSecret:    []byte(v.GetString("jwt_secret")),
			PasetoKeyHex: v.GetString("paseto_secret_key_hex"),
			AccessTTL:    time.Duration(v.GetInt64("jwt_access_token_expires")) * time.Second,
			RefreshTTL:   time.Duration(v.GetInt64("jwt_refresh_token_expires")) * time.Second,
		},
		Security: Security{
			BcryptCost:     v.GetInt("bcrypt_cost"),
			PasswordPolicy: strings.ToLower(v.GetString("password_policy")),
		},
		RateLimit: RateLimit{
			PerMinute:     v.GetInt("rate_limit_per_minute"),
			AuthPerMinute: v.GetInt("auth_rate_limit_per_minute"),
		},
	}

	key, err := vaultKey(v.GetString("vault_key"), v.GetString("vault_passphrase"))
	if err != nil {
		return nil, err
	}
	cfg.Vault.Key = key

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func vaultKey(keyHex, passphrase string) ([]byte, error) {
	switch {
	case keyHex != "":
		key, err := crypto.ParseKeyHex(keyHex)
		if err != nil {
			return nil, fmt.Errorf("VAULT_KEY: %w", err)
		}
		return key, nil
	case passphrase != "":
		return crypto.DeriveKey(passphrase)
	default:
		return nil, errors.New("VAULT_KEY or VAULT_PASSPHRASE is required")
	}
}

func (c *Config) validate() error {
	switch c.Server.Storage {
	case StoragePostgres:
		if c.DB.DatabaseURI == "" {
			return errors.New("DATABASE_URI is required for postgres storage")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE %q", c.Server.Storage)
	}

	switch c.Token.Format {
	case TokenFormatJWT:
		if len(c.Token.JWTSecret) == 0 {
			return errors.New("JWT_SECRET is required")
		}
	case TokenFormatPaseto:
		if c.Token.PasetoKeyHex == "" {
			return errors.New("PASETO_SECRET_KEY_HEX is required")
		}
	default:
		return fmt.Errorf("unknown TOKEN_FORMAT %q", c.Token.Format)
	}

	if c.Token.AccessTTL <= 0 || c.Token.RefreshTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.Token.AccessTTL >= c.Token.RefreshTTL {
		return errors.New("JWT_ACCESS_TOKEN_EXPIRES must be shorter than JWT_REFRESH_TOKEN_EXPIRES")
	}
	switch c.Security.PasswordPolicy {
	case PasswordPolicyBasic, PasswordPolicyStrict:
	default:
		return fmt.Errorf("unknown PASSWORD_POLICY %q", c.Security.PasswordPolicy)
	}

	if c.RateLimit.PerMinute <= 0 || c.RateLimit.AuthPerMinute <= 0 {
		return errors.New("rate limits must be positive")
	}
	return nil
}
