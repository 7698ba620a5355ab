// Package styles contains Lip Gloss style definitions.
package styles

import (
	"maps"
	"slices"
)

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// PresetNames returns the names of all presets in sorted order.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(Presets))
}

// DefaultPreset matches the AdaptiveColor definitions in styles.go (Dark values).
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default mdinput theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#CCCCCC",
		TokenTextMuted:       "#696969",
		TokenTextDescription: "#999999",
		TokenTextPlaceholder: "#777777",

		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#FFFFFF",

		TokenStatusSuccess: "#73F59F",
		TokenStatusError:   "#FF8787",

		TokenFormBorder:      "#8C8C8C",
		TokenFormBorderFocus: "#FFFFFF",
		TokenFormLabel:       "#8C8C8C",
		TokenFormLabelFocus:  "#FFFFFF",

		TokenMarkdownBadge:   "#FFFFFF",
		TokenMarkdownBadgeBg: "#5C5C5C",

		TokenOverlayTitle: "#C9C9C9",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha palette.
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#CDD6F4", // text
		TokenTextMuted:       "#6C7086", // overlay0
		TokenTextDescription: "#A6ADC8", // subtext0
		TokenTextPlaceholder: "#585B70", // surface2

		TokenBorderDefault: "#6C7086", // overlay0
		TokenBorderFocus:   "#CDD6F4", // text

		TokenStatusSuccess: "#A6E3A1", // green
		TokenStatusError:   "#F38BA8", // red

		TokenFormBorder:      "#6C7086",
		TokenFormBorderFocus: "#89B4FA", // blue
		TokenFormLabel:       "#6C7086",
		TokenFormLabelFocus:  "#CDD6F4",

		TokenMarkdownBadge:   "#1E1E2E", // base
		TokenMarkdownBadgeBg: "#6C7086",

		TokenOverlayTitle: "#CDD6F4",
	},
}

// DraculaPreset is the Dracula palette.
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#F8F8F2", // foreground
		TokenTextMuted:       "#6272A4", // comment
		TokenTextDescription: "#F8F8F2",
		TokenTextPlaceholder: "#6272A4",

		TokenBorderDefault: "#6272A4",
		TokenBorderFocus:   "#F8F8F2",

		TokenStatusSuccess: "#50FA7B", // green
		TokenStatusError:   "#FF5555", // red

		TokenFormBorder:      "#6272A4",
		TokenFormBorderFocus: "#BD93F9", // purple
		TokenFormLabel:       "#6272A4",
		TokenFormLabelFocus:  "#F8F8F2",

		TokenMarkdownBadge:   "#282A36", // background
		TokenMarkdownBadgeBg: "#6272A4",

		TokenOverlayTitle: "#F8F8F2",
	},
}

// NordPreset is the Nord palette.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#ECEFF4", // snow storm 3
		TokenTextMuted:       "#4C566A", // polar night 4
		TokenTextDescription: "#D8DEE9", // snow storm 1
		TokenTextPlaceholder: "#4C566A",

		TokenBorderDefault: "#4C566A",
		TokenBorderFocus:   "#ECEFF4",

		TokenStatusSuccess: "#A3BE8C", // aurora green
		TokenStatusError:   "#BF616A", // aurora red

		TokenFormBorder:      "#4C566A",
		TokenFormBorderFocus: "#88C0D0", // frost 2
		TokenFormLabel:       "#4C566A",
		TokenFormLabelFocus:  "#ECEFF4",

		TokenMarkdownBadge:   "#2E3440", // polar night 1
		TokenMarkdownBadgeBg: "#4C566A",

		TokenOverlayTitle: "#ECEFF4",
	},
}

// HighContrastPreset maximises contrast for accessibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#FFFFFF",
		TokenTextMuted:       "#FFFFFF", // no muted colors in high contrast
		TokenTextDescription: "#FFFFFF",
		TokenTextPlaceholder: "#CCCCCC",

		TokenBorderDefault: "#FFFFFF",
		TokenBorderFocus:   "#FFFF00", // bright yellow for focus

		TokenStatusSuccess: "#00FF00",
		TokenStatusError:   "#FF0000",

		TokenFormBorder:      "#FFFFFF",
		TokenFormBorderFocus: "#FFFF00",
		TokenFormLabel:       "#FFFFFF",
		TokenFormLabelFocus:  "#FFFF00",

		TokenMarkdownBadge:   "#000000",
		TokenMarkdownBadgeBg: "#FFFFFF",

		TokenOverlayTitle: "#FFFFFF",
	},
}
