// Package config provides configuration types and defaults for mdinput.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zjrosen/mdinput/internal/log"
	"github.com/zjrosen/mdinput/internal/ui/styles"
)

// ID generation modes for fields without an explicit id.
const (
	IDModeCounter = "counter"
	IDModeUUID    = "uuid"
)

// FieldConfig defines one markdown field of the form.
type FieldConfig struct {
	Name        string `mapstructure:"name"`
	ID          string `mapstructure:"id"`      // optional, generated when empty
	Label       string `mapstructure:"label"`
	Default     string `mapstructure:"default"` // adopted once when the form opens
	Value       string `mapstructure:"value"`   // overrides default
	Helper      string `mapstructure:"helper"`
	Margin      string `mapstructure:"margin"` // "dense", "none", "normal"
	Multiline   bool   `mapstructure:"multiline"`
	FullWidth   bool   `mapstructure:"full_width"`
	EmptyHelper bool   `mapstructure:"empty_helper"` // reserve the helper row
	Required    bool   `mapstructure:"required"`     // blocks submit while empty
	Class       string `mapstructure:"class"`
}

// Config holds all configuration options for mdinput.
type Config struct {
	Title  string        `mapstructure:"title"`
	UI     UIConfig      `mapstructure:"ui"`
	Theme  ThemeConfig   `mapstructure:"theme"`
	Fields []FieldConfig `mapstructure:"fields"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style"` // glamour style, "dark" (default)
	Width         int    `mapstructure:"width"`          // width of fields that are not full_width
	IDMode        string `mapstructure:"id_mode"`        // "counter" (default) or "uuid"
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "dracula", "nord",
	// "high-contrast"
	Preset string `mapstructure:"preset"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     status:
	//       error: "#FF0000"
	// Or quoted dot notation:
	//   colors:
	//     "status.error": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// StyleConfig converts the theme into the form styles.ApplyTheme takes.
func (t ThemeConfig) StyleConfig() styles.ThemeConfig {
	return styles.ThemeConfig{
		Preset: t.Preset,
		Colors: t.FlattenedColors(),
	}
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// DefaultFields returns the fields shown when the config lists none.
func DefaultFields() []FieldConfig {
	return []FieldConfig{
		{
			Name:     "title",
			Label:    "Title",
			Required: true,
		},
		{
			Name:        "description",
			Label:       "Description",
			Helper:      "Markdown supported",
			Multiline:   true,
			FullWidth:   true,
			EmptyHelper: true,
		},
	}
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Title: "New entry",
		UI: UIConfig{
			MarkdownStyle: "dark",
			Width:         60,
			IDMode:        IDModeCounter,
		},
		Fields: DefaultFields(),
	}
}

// GetFields returns the configured fields, or DefaultFields() if none.
func (c Config) GetFields() []FieldConfig {
	if len(c.Fields) == 0 {
		return DefaultFields()
	}
	return c.Fields
}

// ValidateFields checks field configuration for errors.
// Returns nil if fields are valid or empty (will use defaults).
func ValidateFields(fields []FieldConfig) error {
	names := make(map[string]int, len(fields))
	ids := make(map[string]int, len(fields))

	for i, f := range fields {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("field %d: name is required", i)
		}
		if prev, ok := names[f.Name]; ok {
			return fmt.Errorf("field %d: name %q already used by field %d", i, f.Name, prev)
		}
		names[f.Name] = i

		if f.ID != "" {
			if strings.Contains(f.ID, "/") {
				return fmt.Errorf("field %d: id %q must not contain '/'", i, f.ID)
			}
			if prev, ok := ids[f.ID]; ok {
				return fmt.Errorf("field %d: id %q already used by field %d", i, f.ID, prev)
			}
			ids[f.ID] = i
		}

		if !styles.Margin(f.Margin).Valid() {
			return fmt.Errorf("field %d: invalid margin %q (must be dense, none or normal)", i, f.Margin)
		}
		if strings.ContainsAny(f.Class, " \t\n") {
			return fmt.Errorf("field %d: class %q must be a single class name", i, f.Class)
		}
	}
	return nil
}

// ValidateUI checks UI configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateUI(ui UIConfig) error {
	switch ui.IDMode {
	case "", IDModeCounter, IDModeUUID:
	default:
		return fmt.Errorf("ui.id_mode must be %q or %q, got %q", IDModeCounter, IDModeUUID, ui.IDMode)
	}
	if ui.Width < 0 {
		return fmt.Errorf("ui.width must not be negative, got %d", ui.Width)
	}
	return nil
}

// ValidateTheme checks that the theme preset and color tokens exist and that
// every override is a hex color.
func ValidateTheme(theme ThemeConfig) error {
	if theme.Preset != "" {
		if _, ok := styles.Presets[theme.Preset]; !ok {
			return fmt.Errorf("theme.preset %q is unknown (available: %s)", theme.Preset, strings.Join(styles.PresetNames(), ", "))
		}
	}
	for token, value := range theme.FlattenedColors() {
		if !styles.IsValidToken(styles.ColorToken(token)) {
			return fmt.Errorf("theme.colors: unknown color token %q", token)
		}
		if !styles.IsValidHexColor(value) {
			return fmt.Errorf("theme.colors.%s: invalid hex color %q", token, value)
		}
	}
	return nil
}

// Validate checks the whole config.
func (c Config) Validate() error {
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	if err := ValidateFields(c.Fields); err != nil {
		return fmt.Errorf("fields: %w", err)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# mdinput configuration
# Fields edit raw markdown while focused and show the rendered preview
# once you move away.

title: "New entry"

ui:
  # Glamour style for previews: dark, light, notty, ascii, dracula, tokyo-night
  markdown_style: dark
  # Width in columns of fields that are not full_width
  width: 60
  # How ids are generated for fields without one: counter or uuid
  id_mode: counter

# theme:
#   # Built-in presets: default, catppuccin-mocha, dracula, nord, high-contrast
#   preset: default
#   colors:
#     status.error: "#FF8787"
#     form.border.focus: "#FFFFFF"

fields:
  - name: title
    label: Title
    required: true
  - name: description
    label: Description
    helper: Markdown supported
    multiline: true
    full_width: true
    empty_helper: true
#   - name: notes
#     label: Notes
#     default: "*optional*"
#     margin: dense
`
}

// DefaultConfigPath returns ~/.config/mdinput/config.yaml, or "" if the
// home directory is unavailable.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mdinput", "config.yaml")
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
