package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Port              int           `mapstructure:"PORT"`
	DataDir           string        `mapstructure:"DATA_DIR"`
	DataURL           string        `mapstructure:"DATA_URL"`
	YearsBack         int           `mapstructure:"YEARS_BACK"`
	YearsBackDefault  int           `mapstructure:"YEARS_BACK_DEFAULT"`
	CacheTTL          time.Duration `mapstructure:"CACHE_TTL"`
	SnapshotDSN       string        `mapstructure:"SNAPSHOT_DSN"`
	RedisURL          string        `mapstructure:"REDIS_URL"`
	SectionCacheTTL   time.Duration `mapstructure:"SECTION_CACHE_TTL"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	AdminPasswordHash string        `mapstructure:"ADMIN_PASSWORD_HASH"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
}

var AppConfig *Config

var keys = []string{
	"PORT", "DATA_DIR", "DATA_URL", "YEARS_BACK", "YEARS_BACK_DEFAULT", "CACHE_TTL",
	"SNAPSHOT_DSN", "REDIS_URL", "SECTION_CACHE_TTL", "JWT_SECRET", "ADMIN_PASSWORD_HASH", "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 8080)
	v.SetDefault("DATA_DIR", ".")
	v.SetDefault("YEARS_BACK", 10)
	v.SetDefault("YEARS_BACK_DEFAULT", 10)
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("SECTION_CACHE_TTL", "5m")
	v.SetDefault("LOG_LEVEL", "info")
}

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	cfg, err := Load(viper.GetViper(), ".")
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		slog.Error("Unable to load config", "error", err)
		os.Exit(1)
	}
	AppConfig = cfg
}

// Load reads .env from dir (if present), overlays the environment and decodes the result.
func Load(v *viper.Viper, dir string) (*Config, error) {
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	setDefaults(v)
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about.
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	if err := v.ReadInConfig(); err != nil {
		slog.Warn(".env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the loader and the cache cannot work with.
func (c *Config) Validate() error {
	if c.YearsBack < 0 {
		return errors.New("YEARS_BACK must not be negative")
	}
	if c.YearsBackDefault < 0 {
		return errors.New("YEARS_BACK_DEFAULT must not be negative")
	}
	if c.CacheTTL <= 0 {
		return errors.New("CACHE_TTL must be positive")
	}
	if c.Port <= 0 {
		return errors.New("PORT must be positive")
	}
	return nil
}

// SetupLogger installs a text slog handler at the given level as the default logger.
func SetupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}
