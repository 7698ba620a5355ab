package cmd

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/mdinput/internal/app"
	"github.com/zjrosen/mdinput/internal/config"
	"github.com/zjrosen/mdinput/internal/log"
	"github.com/zjrosen/mdinput/internal/ui/styles"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, otherwise
	// the OSC 11 reply can leak into the focused editor.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const debugLogPath = "debug.log"

var (
	version = "dev"

	cfgFile   string
	debug     bool
	styleFlag string
	saveFlag  bool
	watchFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "mdinput",
	Short: "Markdown input fields in the terminal",
	Long: `A terminal form of markdown fields. Each field edits raw markdown while
focused and shows the rendered preview once you move away. Submitted values
are printed as YAML.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .mdinput/config.yaml, then ~/.config/mdinput/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false,
		"write debug logs to "+debugLogPath)
	rootCmd.PersistentFlags().StringVar(&styleFlag, "style", "",
		"glamour style for previews, overrides ui.markdown_style")
	rootCmd.Flags().BoolVar(&saveFlag, "save", false,
		"store submitted values as the field defaults in the config file")
	rootCmd.Flags().BoolVar(&watchFlag, "watch", true,
		"reload the theme when the config file changes")
}

// initLogging enables the debug log when --debug or MDINPUT_DEBUG is set.
func initLogging() (func(), error) {
	if !debug && os.Getenv("MDINPUT_DEBUG") == "" {
		return func() {}, nil
	}
	cleanup, err := log.InitWithTeaLog(debugLogPath, "mdinput")
	if err != nil {
		return nil, fmt.Errorf("initializing debug log: %w", err)
	}
	log.Info(log.CatConfig, "mdinput starting", "version", version)
	return cleanup, nil
}

// loadConfig resolves, loads and applies the config, honouring --style.
func loadConfig() (config.Config, string, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return config.Config{}, "", fmt.Errorf("getting current directory: %w", err)
	}
	home, _ := os.UserHomeDir()

	path, created, err := config.Resolve(cfgFile, workDir, home)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("resolving config: %w", err)
	}
	if created {
		log.Info(log.CatConfig, "No config found, wrote default", "path", path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", err
	}
	if styleFlag != "" {
		cfg.UI.MarkdownStyle = styleFlag
	}
	if err := styles.ApplyTheme(cfg.Theme.StyleConfig()); err != nil {
		return config.Config{}, "", fmt.Errorf("applying theme: %w", err)
	}
	return cfg, path, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	cleanup, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	zone.NewGlobal()

	model := app.New(app.Options{
		Config:     cfg,
		ConfigPath: path,
		Watch:      watchFlag,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	result := final.(app.Model).Result()
	if !result.Submitted {
		return nil
	}
	if err := writeValues(cmd.OutOrStdout(), result.Values); err != nil {
		return err
	}
	if saveFlag {
		if err := config.SaveFieldDefaults(path, result.Values); err != nil {
			return fmt.Errorf("saving defaults: %w", err)
		}
		log.Info(log.CatConfig, "Saved field defaults", "path", path)
	}
	return nil
}

// writeValues prints values as a YAML mapping in field-name order.
func writeValues(w io.Writer, values map[string]string) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range slices.Sorted(maps.Keys(values)) {
		value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: values[name]}
		if slices.Contains([]byte(values[name]), '\n') {
			value.Style = yaml.LiteralStyle
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name}, value)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing values: %w", err)
	}
	return enc.Close()
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
