// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for the env var prefix.
	AppName = "plugpack"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "plugpack"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

//nolint:gochecknoglobals // Test seam for the config file path.
var configFilePathOverride = ""

// SetConfigFilePathOverride forces Load to read the given file instead of
// searching the working directory. Used by the --config flag and tests.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}

// Config holds the packaging defaults a release run starts from. Flags
// override any of these per invocation.
type Config struct {
	// Product is the identifier used in archive filenames (e.g. "tape_delay").
	Product string `mapstructure:"product"`
	// Platforms are the targets a release must cover.
	Platforms []string `mapstructure:"platforms"`
	// Dist is the directory archives and the manifest are written to.
	Dist string `mapstructure:"dist"`
	// Sources maps a platform name to its build output path.
	Sources map[string]string `mapstructure:"sources"`
}

// DefaultConfig returns the built-in defaults: both supported platforms,
// archives in the working directory, no product preset.
func DefaultConfig() *Config {
	return &Config{
		Platforms: []string{"windows", "macos"},
		Dist:      ".",
		Sources:   map[string]string{},
	}
}

// Load reads plugpack.toml (if present) and PLUGPACK_* environment
// variables on top of the defaults.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("product", defaults.Product)
	v.SetDefault("platforms", defaults.Platforms)
	v.SetDefault("dist", defaults.Dist)
	v.SetDefault("sources", defaults.Sources)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFilePathOverride != "" {
		if !fileExists(configFilePathOverride) {
			return nil, fmt.Errorf("config file not found: %s", configFilePathOverride)
		}
		v.SetConfigFile(configFilePathOverride)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFilePathOverride, err)
		}
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			// A missing file means defaults; anything else is a real error.
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
