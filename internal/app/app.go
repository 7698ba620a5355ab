// Package app contains the root application model.
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/mdinput/internal/config"
	"github.com/zjrosen/mdinput/internal/log"
	"github.com/zjrosen/mdinput/internal/ui/form"
	"github.com/zjrosen/mdinput/internal/ui/shared/markdown"
	"github.com/zjrosen/mdinput/internal/ui/shared/mdinput"
	"github.com/zjrosen/mdinput/internal/ui/styles"
	"github.com/zjrosen/mdinput/internal/ui/toaster"
	"github.com/zjrosen/mdinput/internal/watcher"
)

// ConfigChangedMsg is sent when the watched config file settles after a
// change.
type ConfigChangedMsg struct{}

// Result is what the user did with the form.
type Result struct {
	Submitted bool
	Values    map[string]string
}

// Options configures the application.
type Options struct {
	Config     config.Config
	ConfigPath string
	Watch      bool // reload the theme when the config file changes
	Renderer   *markdown.Cache
}

// Model is the root application state.
type Model struct {
	form     form.Model
	toaster  toaster.Model
	renderer *markdown.Cache

	configPath string
	watcher    *watcher.Watcher
	changes    <-chan struct{}

	result Result
}

// New creates the application model. Watcher start failures are logged and
// leave live reload off.
func New(opts Options) Model {
	renderer := opts.Renderer
	if renderer == nil {
		renderer = markdown.NewCache(opts.Config.UI.MarkdownStyle)
	}

	m := Model{
		form: form.New(form.Config{
			Title:      opts.Config.Title,
			Fields:     FieldsFromConfig(opts.Config.GetFields()),
			FieldWidth: opts.Config.UI.Width,
			IDs:        NewIDGenerator(opts.Config.UI.IDMode),
			Renderer:   renderer,
		}),
		toaster:    toaster.New(),
		renderer:   renderer,
		configPath: opts.ConfigPath,
	}

	if opts.Watch && opts.ConfigPath != "" {
		w, err := watcher.New(watcher.DefaultConfig(opts.ConfigPath))
		if err == nil {
			changes, startErr := w.Start()
			if startErr == nil {
				m.watcher = w
				m.changes = changes
			} else {
				log.Warn(log.CatWatcher, "Config watcher failed to start", "error", startErr)
				_ = w.Stop()
			}
		} else {
			log.Warn(log.CatWatcher, "Config watcher unavailable", "error", err)
		}
	}

	return m
}

// NewIDGenerator returns the generator for an id mode.
func NewIDGenerator(mode string) mdinput.IDGenerator {
	if mode == config.IDModeUUID {
		return mdinput.NewUUIDIDs()
	}
	return mdinput.NewCounterIDs()
}

// FieldsFromConfig converts configured fields to form fields. Empty default
// and value strings are left unset.
func FieldsFromConfig(fields []config.FieldConfig) []form.Field {
	out := make([]form.Field, 0, len(fields))
	for _, f := range fields {
		props := mdinput.Props{
			ID:          f.ID,
			Name:        f.Name,
			Label:       f.Label,
			HelperText:  f.Helper,
			Margin:      styles.Margin(f.Margin),
			Multiline:   f.Multiline,
			FullWidth:   f.FullWidth,
			EmptyHelper: f.EmptyHelper,
			ClassName:   f.Class,
		}
		if f.Default != "" {
			props.DefaultValue = mdinput.String(f.Default)
		}
		if f.Value != "" {
			props.Value = mdinput.String(f.Value)
		}
		out = append(out, form.Field{Props: props, Required: f.Required})
	}
	return out
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), listen(m.changes))
}

// listen waits for the next config change.
func listen(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return ConfigChangedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case form.SubmitMsg:
		m.result = Result{Submitted: true, Values: msg.Values}
		return m, tea.Quit

	case form.CancelMsg:
		log.Info(log.CatUI, "form cancelled")
		return m, tea.Quit

	case ConfigChangedMsg:
		var cmd tea.Cmd
		m, cmd = m.reloadConfig()
		return m, tea.Batch(cmd, listen(m.changes))

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// reloadConfig reapplies the theme and markdown style. Fields keep their
// text; structural changes need a restart.
func (m Model) reloadConfig() (Model, tea.Cmd) {
	var cmd tea.Cmd

	cfg, err := config.Load(m.configPath)
	if err != nil {
		log.ErrorErr(log.CatConfig, "Config reload failed", err, "path", m.configPath)
		m.toaster, cmd = m.toaster.Show("Config reload failed", toaster.StyleError, toaster.DefaultDuration)
		return m, cmd
	}

	if err := styles.ApplyTheme(cfg.Theme.StyleConfig()); err != nil {
		log.ErrorErr(log.CatConfig, "Theme reload failed", err)
		m.toaster, cmd = m.toaster.Show("Theme reload failed", toaster.StyleError, toaster.DefaultDuration)
		return m, cmd
	}
	m.renderer.SetStyle(cfg.UI.MarkdownStyle)

	log.Info(log.CatConfig, "Config reloaded", "path", m.configPath, "preset", cfg.Theme.Preset)
	m.toaster, cmd = m.toaster.Show("Theme reloaded", toaster.StyleInfo, toaster.DefaultDuration)
	return m, cmd
}

// View implements tea.Model. Zone markers are resolved here, once per frame.
func (m Model) View() string {
	view := m.form.View()
	if t := m.toaster.View(); t != "" {
		view += "\n" + t
	}
	return zone.Scan(view)
}

// Form returns the hosted form.
func (m Model) Form() form.Model {
	return m.form
}

// Result returns the outcome once the program has quit.
func (m Model) Result() Result {
	return m.result
}

// Toast returns the current toast line, "" when hidden.
func (m Model) Toast() string {
	return m.toaster.View()
}

// Close releases the config watcher.
func (m Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Stop()
}
