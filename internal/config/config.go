package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr             string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	DBType         string
	DatabaseURL    string
	DBMaxOpenConns int
	DBLogLevel     string

	// SessionSecret signs the session cookie. The default is a static
	// literal; set SESSION_SECRET in any real deployment.
	SessionSecret   string
	SessionTTL      time.Duration
	PasswordHashing bool

	LogLevel  string
	LogFormat string
}

const DefaultSessionSecret = "secret-key"

func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("CORS_ALLOW_CREDENTIALS", false)
	v.SetDefault("DB_TYPE", "sqlite")
	v.SetDefault("DATABASE_URL", "murmur.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("SESSION_SECRET", DefaultSessionSecret)
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("PASSWORD_HASHING", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	cfg := Config{
		HTTPAddr:             strings.TrimSpace(v.GetString("HTTP_ADDR")),
		CORSAllowCredentials: v.GetBool("CORS_ALLOW_CREDENTIALS"),
		DBType:               strings.ToLower(strings.TrimSpace(v.GetString("DB_TYPE"))),
		DatabaseURL:          strings.TrimSpace(v.GetString("DATABASE_URL")),
		DBMaxOpenConns:       v.GetInt("DB_MAX_OPEN_CONNS"),
		DBLogLevel:           strings.ToLower(strings.TrimSpace(v.GetString("DB_LOG_LEVEL"))),
		SessionSecret:        v.GetString("SESSION_SECRET"),
		SessionTTL:           v.GetDuration("SESSION_TTL"),
		PasswordHashing:      v.GetBool("PASSWORD_HASHING"),
		LogLevel:             strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogFormat:            strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT"))),
	}

	for _, o := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	switch cfg.DBType {
	case "sqlite", "mysql", "postgres", "pq":
	default:
		return Config{}, fmt.Errorf("unsupported DB_TYPE %q", cfg.DBType)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET must not be empty")
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}

	return cfg, nil
}
