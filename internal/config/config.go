package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Theme   string        `yaml:"theme" mapstructure:"theme"`
}

type StorageConfig struct {
	Path    string `yaml:"path" mapstructure:"path"`
	Backend string `yaml:"backend" mapstructure:"backend"`
	Sync    string `yaml:"sync" mapstructure:"sync"`
	Strict  bool   `yaml:"strict" mapstructure:"strict"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file,omitempty" mapstructure:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:    "StudentDb.data",
			Backend: "file",
			Sync:    "always",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Theme: "green",
	}
}

// Dir returns the per-user configuration directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "studentdb")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "studentdb")
}

// Path returns the per-user configuration file.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads config.yaml from the working directory or the user config
// directory, applies STUDENTDB_* environment overrides and validates the result.
// A missing file is not an error.
func Load() (*Config, error) {
	return load(viper.New(), ".", Dir())
}

func load(v *viper.Viper, paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Environment variables
	v.SetEnvPrefix("STUDENTDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about
	for _, key := range []string{"storage.path", "storage.backend", "storage.sync", "storage.strict", "log.level", "log.format", "log.file", "theme"} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error produced
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors and fills unset values.
func (c *Config) Validate() error {
	if c.Storage.Path == "" {
		c.Storage.Path = "StudentDb.data"
	}
	switch c.Storage.Backend {
	case "":
		c.Storage.Backend = "file"
	case "file", "bolt":
	default:
		return fmt.Errorf("config: storage.backend %q is invalid (must be file or bolt)", c.Storage.Backend)
	}
	switch c.Storage.Sync {
	case "":
		c.Storage.Sync = "always"
	case "always", "flush":
	default:
		return fmt.Errorf("config: storage.sync %q is invalid (must be always or flush)", c.Storage.Sync)
	}
	switch strings.ToLower(c.Log.Level) {
	case "":
		c.Log.Level = "warn"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid", c.Log.Level)
	}
	switch c.Log.Format {
	case "":
		c.Log.Format = "console"
	case "console", "json":
	default:
		return fmt.Errorf("config: log.format %q is invalid (must be console or json)", c.Log.Format)
	}
	return nil
}
