package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RANKINCOHEN_BRACKET_N.
const EnvPrefix = "RANKINCOHEN"

// FileEnv names the environment variable holding an optional YAML file path.
const FileEnv = EnvPrefix + "_CONFIG"

var defaults = map[string]interface{}{
	"bracket.f":     "E4",
	"bracket.g":     "E4",
	"bracket.k":     4,
	"bracket.l":     4,
	"bracket.n":     2,
	"output.format": "text",
	"log.level":     "warn",
}

// Load reads configuration from defaults, the YAML file at path (skipped
// when empty) and environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	v := viper.New()

	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	if path != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees env vars for keys viper already knows about.
	for key := range defaults {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind environment for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
