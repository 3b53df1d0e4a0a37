// Package config loads application configuration and owns logger setup.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Catalog  CatalogConfig  `yaml:"catalog" mapstructure:"catalog"`
	Selector SelectorConfig `yaml:"selector" mapstructure:"selector"`
	Regions  []string       `yaml:"regions" mapstructure:"regions"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the observation/build store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// CatalogConfig configures the candidate sources.
type CatalogConfig struct {
	// Path to a YAML catalog; empty falls back to the embedded catalog.
	Path string `yaml:"path" mapstructure:"path"`
	// ScrapeSim enables the simulated fresh-pricing provider.
	ScrapeSim bool `yaml:"scrape_sim" mapstructure:"scrape_sim"`
}

// SelectorConfig tunes build selection.
type SelectorConfig struct {
	EnvelopeStretch float64 `yaml:"envelope_stretch" mapstructure:"envelope_stretch"`
	Seed            int64   `yaml:"seed" mapstructure:"seed"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// SupportedRegion reports whether a region code is configured.
func (c *Config) SupportedRegion(region string) bool {
	for _, r := range c.Regions {
		if strings.EqualFold(r, region) {
			return true
		}
	}
	return false
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PCBUILDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "pc-builder.db")
	v.SetDefault("catalog.scrape_sim", true)
	v.SetDefault("selector.envelope_stretch", 1.5)
	v.SetDefault("regions", []string{"US", "EU", "UK", "CA", "IN"})
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
