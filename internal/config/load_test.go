package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_ThemeWithDottedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
theme:
  preset: catppuccin-mocha
  colors:
    "status.error": "#FF0000"
    form:
      border:
        focus: "#00FF00"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "catppuccin-mocha", cfg.Theme.Preset)
	require.Equal(t, map[string]string{
		"status.error":      "#FF0000",
		"form.border.focus": "#00FF00",
	}, cfg.Theme.FlattenedColors())
}

func TestLoad_FieldsAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
fields:
  - name: summary
    label: Summary
    default: "**hello**"
    margin: dense
    full_width: true
    empty_helper: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "dark", cfg.UI.MarkdownStyle, "missing keys use defaults")
	require.Equal(t, 60, cfg.UI.Width)
	require.Equal(t, []FieldConfig{{
		Name:        "summary",
		Label:       "Summary",
		Default:     "**hello**",
		Margin:      "dense",
		FullWidth:   true,
		EmptyHelper: true,
	}}, cfg.Fields)
}

func TestLoad_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
fields:
  - label: no name
`)

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid config")
	require.Contains(t, err.Error(), "name is required")
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "fields: [\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestResolve_Explicit(t *testing.T) {
	path, created, err := Resolve("/some/file.yaml", t.TempDir(), t.TempDir())
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, "/some/file.yaml", path)
}

func TestResolve_PrefersLocal(t *testing.T) {
	work, home := t.TempDir(), t.TempDir()
	local := filepath.Join(work, LocalConfigPath)
	user := filepath.Join(home, ".config", "mdinput", "config.yaml")
	writeFile(t, local, "title: local\n")
	writeFile(t, user, "title: user\n")

	path, created, err := Resolve("", work, home)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, local, path)
}

func TestResolve_UserConfig(t *testing.T) {
	work, home := t.TempDir(), t.TempDir()
	user := filepath.Join(home, ".config", "mdinput", "config.yaml")
	writeFile(t, user, "title: user\n")

	path, created, err := Resolve("", work, home)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, user, path)
}

func TestResolve_WritesDefault(t *testing.T) {
	work := t.TempDir()

	path, created, err := Resolve("", work, "")
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, filepath.Join(work, LocalConfigPath), path)
	require.FileExists(t, path)
}
