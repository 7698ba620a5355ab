package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/mdinput/internal/config"
	"github.com/zjrosen/mdinput/internal/ui/styles"
)

// resetFlags restores package flag state after a test that changed it.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		cfgFile, debug, styleFlag, saveFlag, watchFlag = "", false, "", false, true
		renderWidth = 60
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		_ = styles.ApplyTheme(styles.ThemeConfig{})
	})
}

func TestWriteValues_SortedYAML(t *testing.T) {
	var buf bytes.Buffer
	err := writeValues(&buf, map[string]string{
		"title":       "Hello",
		"description": "line one\nline two",
	})
	require.NoError(t, err)

	out := buf.String()
	require.Less(t, bytes.Index(buf.Bytes(), []byte("description")), bytes.Index(buf.Bytes(), []byte("title")))
	require.Contains(t, out, "description: |-\n  line one\n  line two\n")

	var back map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	require.Equal(t, "line one\nline two", back["description"])
	require.Equal(t, "Hello", back["title"])
}

func TestWriteValues_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeValues(&buf, map[string]string{}))
	require.Equal(t, "{}\n", buf.String())
}

func TestLoadConfig_ExplicitFileAndStyleOverride(t *testing.T) {
	resetFlags(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Notes\ntheme:\n  preset: dracula\n"), 0o600))

	cfgFile = path
	styleFlag = "ascii"

	cfg, got, err := loadConfig()
	require.NoError(t, err)
	require.Equal(t, path, got)
	require.Equal(t, "Notes", cfg.Title)
	require.Equal(t, "ascii", cfg.UI.MarkdownStyle)
	require.Equal(t, styles.DraculaPreset.Colors[styles.TokenStatusError], styles.StatusErrorColor.Dark)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	resetFlags(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  id_mode: random\n"), 0o600))
	cfgFile = path

	_, _, err := loadConfig()
	require.ErrorContains(t, err, "id_mode")
}

func TestInitLogging_DisabledByDefault(t *testing.T) {
	resetFlags(t)
	t.Setenv("MDINPUT_DEBUG", "")

	cleanup, err := initLogging()
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	cleanup()

	_, statErr := os.Stat(debugLogPath)
	require.True(t, os.IsNotExist(statErr))
}

func TestRootCmd_Flags(t *testing.T) {
	for _, name := range []string{"config", "debug", "style"} {
		require.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	require.Equal(t, "c", rootCmd.PersistentFlags().Lookup("config").Shorthand)
	require.Equal(t, "d", rootCmd.PersistentFlags().Lookup("debug").Shorthand)
	require.Equal(t, "true", rootCmd.Flags().Lookup("watch").DefValue)
	require.Equal(t, "false", rootCmd.Flags().Lookup("save").DefValue)
}

func TestSetVersion(t *testing.T) {
	old := rootCmd.Version
	t.Cleanup(func() { SetVersion(old) })

	SetVersion("1.2.3")
	require.Equal(t, "1.2.3", rootCmd.Version)
	require.Equal(t, "1.2.3", version)
}

func TestDefaultTemplateLoadsThroughCommand(t *testing.T) {
	resetFlags(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))
	cfgFile = path

	cfg, _, err := loadConfig()
	require.NoError(t, err)
	require.Equal(t, config.Defaults().Title, cfg.Title)
	require.Len(t, cfg.GetFields(), 2)
}
