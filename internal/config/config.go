// Package config loads service settings from an optional YAML file and
// CARDIOFORM_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix scopes environment overrides, e.g. CARDIOFORM_SERVER_ADDR.
const EnvPrefix = "CARDIOFORM"

// Config is the full service configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Rules  RulesConfig  `mapstructure:"rules"`
	Theme  ThemeConfig  `mapstructure:"theme"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr              string        `mapstructure:"addr"`
	ShutdownGrace     time.Duration `mapstructure:"shutdown_grace"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	AssetPrefix       string        `mapstructure:"asset_prefix"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// RulesConfig points at optional rule overrides: a YAML/JSON file or a
// directory of them. Empty uses the built-in rules.
type RulesConfig struct {
	Path string `mapstructure:"path"`
}

// ThemeConfig selects the status colour palette.
type ThemeConfig struct {
	Name    string `mapstructure:"name"`
	Variant string `mapstructure:"variant"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ShutdownGrace:     10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			AssetPrefix:       "/assets/",
		},
		Log: LogConfig{
			Level: "info",
		},
		Theme: ThemeConfig{
			Name: "cardioform",
		},
	}
}

// Load reads configuration from path, when set, layered over defaults and
// under environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings the service cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr is required")
	}
	if c.Server.ShutdownGrace < 0 {
		return fmt.Errorf("config: server.shutdown_grace must not be negative, got %s", c.Server.ShutdownGrace)
	}
	if !strings.HasPrefix(c.Server.AssetPrefix, "/") {
		return fmt.Errorf("config: server.asset_prefix must start with /, got %q", c.Server.AssetPrefix)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	if strings.TrimSpace(c.Theme.Name) == "" {
		return errors.New("config: theme.name is required")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("server.shutdown_grace", def.Server.ShutdownGrace)
	v.SetDefault("server.read_header_timeout", def.Server.ReadHeaderTimeout)
	v.SetDefault("server.asset_prefix", def.Server.AssetPrefix)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.development", def.Log.Development)
	v.SetDefault("rules.path", def.Rules.Path)
	v.SetDefault("theme.name", def.Theme.Name)
	v.SetDefault("theme.variant", def.Theme.Variant)
}
