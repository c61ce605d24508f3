package albums

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Environment variables read by the server.
const (
	EnvListenAddr    = "LISTEN_ADDR"
	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"
	EnvSeedFile      = "SEED_FILE"
	EnvLogLevel      = "LOG_LEVEL"
)

// ErrInvalidRedisDB is returned for a negative database index.
var ErrInvalidRedisDB = errors.New("redis database index must not be negative")

// Config is the server configuration.
type Config struct {
	ListenAddr    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// SeedFile is loaded into Redis on start when set.
	SeedFile string
	LogLevel logrus.Level
}

// NewViper returns a viper instance bound to the server environment variables with their
// defaults.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(EnvListenAddr, ":8080")
	v.SetDefault(EnvRedisAddr, "redis:6379")
	v.SetDefault(EnvRedisPassword, "")
	v.SetDefault(EnvRedisDB, 0)
	v.SetDefault(EnvSeedFile, "")
	v.SetDefault(EnvLogLevel, "info")
	v.AutomaticEnv()

	return v
}

// LoadConfig reads the configuration from v.
func LoadConfig(v *viper.Viper) (Config, error) {
	level, err := logrus.ParseLevel(v.GetString(EnvLogLevel))
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", EnvLogLevel, err)
	}

	cfg := Config{
		ListenAddr:    v.GetString(EnvListenAddr),
		RedisAddr:     v.GetString(EnvRedisAddr),
		RedisPassword: v.GetString(EnvRedisPassword),
		RedisDB:       v.GetInt(EnvRedisDB),
		SeedFile:      v.GetString(EnvSeedFile),
		LogLevel:      level,
	}

	if cfg.RedisDB < 0 {
		return Config{}, fmt.Errorf("%w: %d", ErrInvalidRedisDB, cfg.RedisDB)
	}

	return cfg, nil
}
