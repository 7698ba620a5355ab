package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func resetTheme(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { _ = ApplyTheme(ThemeConfig{}) })
}

func TestApplyTheme_Default(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, DefaultPreset.Colors[TokenTextPrimary], TextPrimaryColor.Dark)
	require.Equal(t, DefaultPreset.Colors[TokenStatusError], StatusErrorColor.Dark)
}

func TestApplyTheme_Preset(t *testing.T) {
	resetTheme(t)
	Presets["test"] = Preset{
		Name: "test",
		Colors: map[ColorToken]string{
			TokenStatusError: "#FF0000",
		},
	}
	defer delete(Presets, "test")

	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "test"}))
	require.Equal(t, "#FF0000", StatusErrorColor.Dark)
	// Tokens the preset leaves out keep their default value
	require.Equal(t, DefaultPreset.Colors[TokenStatusSuccess], StatusSuccessColor.Dark)
}

func TestApplyTheme_ColorOverride(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{
		Preset: "nord",
		Colors: map[string]string{"form.label.focus": "#00FF00"},
	}))
	require.Equal(t, "#00FF00", FormTextInputFocusedLabelColor.Dark)
	require.Equal(t, NordPreset.Colors[TokenStatusError], StatusErrorColor.Dark)
}

func TestApplyTheme_FormBorderFocusWins(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{
		Colors: map[string]string{
			"border.focus":      "#111111",
			"form.border.focus": "#222222",
		},
	}))
	require.Equal(t, "#222222", FormTextInputFocusedBorderColor.Dark)
}

func TestApplyTheme_Errors(t *testing.T) {
	resetTheme(t)

	err := ApplyTheme(ThemeConfig{Preset: "nope"})
	require.ErrorContains(t, err, "unknown theme preset: nope")

	err = ApplyTheme(ThemeConfig{Colors: map[string]string{"bogus.token": "#FFFFFF"}})
	require.ErrorContains(t, err, "unknown color token: bogus.token")

	err = ApplyTheme(ThemeConfig{Colors: map[string]string{"status.error": "red"}})
	require.ErrorContains(t, err, "invalid hex color for status.error: red")
}

func TestApplyTheme_RebuildsStyles(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{Colors: map[string]string{"overlay.title": "#ABCDEF"}}))
	require.Equal(t, OverlayTitleColor, TitleStyle.GetForeground())
}

func TestIsValidHexColor(t *testing.T) {
	for _, s := range []string{"#FFF", "#ffffff", "#123abc"} {
		require.True(t, IsValidHexColor(s), s)
	}
	for _, s := range []string{"FFF", "#FFFF", "#GGGGGG", ""} {
		require.False(t, IsValidHexColor(s), s)
	}
}

func TestPresets_CoverAllTokens(t *testing.T) {
	for name, preset := range Presets {
		for _, token := range AllTokens() {
			_, ok := preset.Colors[token]
			require.True(t, ok, "preset %s missing token %s", name, token)
		}
	}
}

func TestPresetNames_Sorted(t *testing.T) {
	require.Equal(t, []string{"catppuccin-mocha", "default", "dracula", "high-contrast", "nord"}, PresetNames())
}
