// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"uberjar-cli/internal/jartool"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "uberjar"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

// Config holds the persistent settings of the tool. Everything has a
// working default; a config file only overrides.
type Config struct {
	// JarTool is the archiver command used for extraction and creation.
	JarTool string `mapstructure:"jar_tool" toml:"jar_tool"`

	Launcher LauncherConfig `mapstructure:"launcher" toml:"launcher"`
	Patterns PatternsConfig `mapstructure:"patterns" toml:"patterns"`
	UI       UIConfig       `mapstructure:"ui" toml:"ui"`
}

// LauncherConfig controls the java invocation baked into launcher scripts.
type LauncherConfig struct {
	// LoaderClass is set as java.system.class.loader.
	LoaderClass string `mapstructure:"loader_class" toml:"loader_class"`
	// HeapSize is the -Xmx value.
	HeapSize string `mapstructure:"heap_size" toml:"heap_size"`
}

// PatternsConfig appends user patterns to the built-in classification
// lists. Additions only; the built-in lists cannot be disabled.
type PatternsConfig struct {
	IgnoredJars  []string `mapstructure:"ignored_jars" toml:"ignored_jars"`
	IgnoredFiles []string `mapstructure:"ignored_files" toml:"ignored_files"`
	AppendMerge  []string `mapstructure:"append_merge" toml:"append_merge"`
	IgnoreMerge  []string `mapstructure:"ignore_merge" toml:"ignore_merge"`
}

// UIConfig holds terminal output preferences.
type UIConfig struct {
	Verbose bool `mapstructure:"verbose" toml:"verbose"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		JarTool: jartool.DefaultCommand,
		Launcher: LauncherConfig{
			LoaderClass: "de.cau.cs.kieler.kicool.cli.CLILoader",
			HeapSize:    "512m",
		},
	}
}

// ConfigDir returns the uberjar configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the path of the config file that Load reads,
// honoring the --config override.
func ConfigFilePath() (string, error) {
	if configFilePathOverride != "" {
		return configFilePathOverride, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// Load reads the configuration. A missing config file is not an error:
// the defaults are returned. Environment variables prefixed with
// UBERJAR_ override file values (e.g. UBERJAR_JAR_TOOL).
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("jar_tool", defaults.JarTool)
	v.SetDefault("launcher.loader_class", defaults.Launcher.LoaderClass)
	v.SetDefault("launcher.heap_size", defaults.Launcher.HeapSize)
	v.SetDefault("patterns.ignored_jars", defaults.Patterns.IgnoredJars)
	v.SetDefault("patterns.ignored_files", defaults.Patterns.IgnoredFiles)
	v.SetDefault("patterns.append_merge", defaults.Patterns.AppendMerge)
	v.SetDefault("patterns.ignore_merge", defaults.Patterns.IgnoreMerge)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFilePathOverride != "" {
		// An explicit --config file must exist and parse.
		v.SetConfigFile(configFilePathOverride)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFilePathOverride, err)
		}
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
