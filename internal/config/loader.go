package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".escheck"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for escheck settings.
const envPrefix = "ESCHECK"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	return &cfg, nil
}

// applyDefaults sets the built-in defaults for all settings.
func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("target", "")
	viperCfg.SetDefault("browsers", "")
	viperCfg.SetDefault("source_type", "script")
	viperCfg.SetDefault("allow_hash_bang", false)
	viperCfg.SetDefault("check_features", true)
	viperCfg.SetDefault("check_for_polyfills", false)
	viperCfg.SetDefault("ignore", "")
	viperCfg.SetDefault("ignore_file", "")
	viperCfg.SetDefault("allow_list", "")
	viperCfg.SetDefault("workers", 0)
	viperCfg.SetDefault("format", "text")
}
