package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Codesign CodesignConfig `mapstructure:"codesign"`
	Relay    RelayConfig    `mapstructure:"relay"`
	Store    StoreConfig    `mapstructure:"store"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type CodesignConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Cookie  string `mapstructure:"cookie"`
	// Timeout of 0 leaves fetches unbounded.
	Timeout time.Duration `mapstructure:"timeout"`
}

type RelayConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	URL               string        `mapstructure:"url"`
	PingInterval      time.Duration `mapstructure:"ping_interval"`
	ReconnectInterval time.Duration `mapstructure:"reconnect_interval"`
}

type StoreConfig struct {
	Root string `mapstructure:"root"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8081")

	v.SetDefault("codesign.base_url", "https://codesign.qq.com")
	v.SetDefault("codesign.cookie", "")
	v.SetDefault("codesign.timeout", "0s")

	v.SetDefault("relay.enabled", true)
	v.SetDefault("relay.url", "ws://localhost:3690")
	v.SetDefault("relay.ping_interval", "30s")
	v.SetDefault("relay.reconnect_interval", "5s")

	v.SetDefault("store.root", "./projects")

	v.SetDefault("log.level", "info")
}

// Load reads .env (if any), then the config file at path (if given), then
// ANNOX_* environment variables, e.g. ANNOX_CODESIGN_COOKIE.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("annox")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Codesign.Timeout < 0 {
		return errors.New("codesign.timeout must not be negative")
	}
	if c.Relay.PingInterval <= 0 || c.Relay.ReconnectInterval <= 0 {
		return errors.New("relay intervals must be positive")
	}
	if !strings.HasPrefix(c.Relay.URL, "ws://") && !strings.HasPrefix(c.Relay.URL, "wss://") {
		return errors.Newf("relay.url %q is not a ws:// or wss:// URL", c.Relay.URL)
	}
	return nil
}
