package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. JAVELIN_REDIS_ADDR.
const EnvPrefix = "JAVELIN"

// Config holds application configuration.
type Config struct {
	LogLevel string        `mapstructure:"log_level"`
	Debug    bool          `mapstructure:"debug"`
	Request  RequestConfig `mapstructure:"request"`
	Redis    RedisConfig   `mapstructure:"redis"`
	Server   ServerConfig  `mapstructure:"server"`
}

// RequestConfig holds defaults for outgoing async requests.
type RequestConfig struct {
	Method  string        `mapstructure:"method"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RedisConfig selects the Redis metadata store. An empty Addr keeps metadata in memory.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ServerConfig holds the envelope dev server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Fixtures        string        `mapstructure:"fixtures"`
	Metrics         bool          `mapstructure:"metrics"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// NewViper returns a viper instance carrying the defaults and env bindings.
// Callers may bind command flags to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("debug", false)
	v.SetDefault("request.method", "POST")
	v.SetDefault("request.timeout", 0)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "javelin:metadata:")
	v.SetDefault("redis.ttl", 0)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.fixtures", "")
	v.SetDefault("server.metrics", false)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and decodes the result.
// An explicit path must exist; without one, javelin.yaml is looked up in the
// working directory and in $HOME/.config/javelin, and its absence is not an error.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("javelin")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "javelin"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return c, nil
}
