package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/zjrosen/mdinput/internal/log"
)

// LocalConfigPath is the project-local config location, relative to the
// working directory.
const LocalConfigPath = ".mdinput/config.yaml"

// Resolve picks the config file to load:
//  1. explicit, when set
//  2. .mdinput/config.yaml under workDir
//  3. ~/.config/mdinput/config.yaml under home
//
// When none exists a default config is written to the local path and
// created is true.
func Resolve(explicit, workDir, home string) (path string, created bool, err error) {
	if explicit != "" {
		return explicit, false, nil
	}

	local := filepath.Join(workDir, LocalConfigPath)
	if _, err := os.Stat(local); err == nil {
		return local, false, nil
	}
	if home != "" {
		user := filepath.Join(home, ".config", "mdinput", "config.yaml")
		if _, err := os.Stat(user); err == nil {
			return user, false, nil
		}
	}

	if err := WriteDefaultConfig(local); err != nil {
		return "", false, err
	}
	return local, true, nil
}

// Load reads and validates the config file at path. Missing keys take
// their value from Defaults.
func Load(path string) (Config, error) {
	// "::" lets theme.colors use dotted keys like "status.error" without
	// viper treating them as nested paths.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config file %s not found: %w", path, err)
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	log.Debug(log.CatConfig, "Loaded config", "path", path, "fields", len(cfg.Fields))
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Defaults()
	v.SetDefault("title", defaults.Title)
	v.SetDefault("ui::markdown_style", defaults.UI.MarkdownStyle)
	v.SetDefault("ui::width", defaults.UI.Width)
	v.SetDefault("ui::id_mode", defaults.UI.IDMode)
}
