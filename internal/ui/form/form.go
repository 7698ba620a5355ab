// Package form hosts an ordered list of markdown input fields.
//
// The form owns focus: Tab and Shift+Tab move it between fields, Esc drops
// it so every filled field shows its preview, and mouse clicks focus the
// field under the pointer. Ctrl+S submits.
//
// Message Flow:
//
// When the form is submitted and every required field holds text, the form
// sends a SubmitMsg with the values keyed by field name. Ctrl+C sends a
// CancelMsg. The host decides what either means.
package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/mdinput/internal/keys"
	"github.com/zjrosen/mdinput/internal/log"
	"github.com/zjrosen/mdinput/internal/ui/shared/markdown"
	"github.com/zjrosen/mdinput/internal/ui/shared/mdinput"
	"github.com/zjrosen/mdinput/internal/ui/styles"
)

// RequiredHelper is shown under a required field submitted empty, unless
// the field has helper text of its own.
const RequiredHelper = "Required"

// SubmitMsg is sent when the form is submitted successfully.
type SubmitMsg struct {
	Values map[string]string // Field values keyed by field name
}

// CancelMsg is sent when the user quits the form.
type CancelMsg struct{}

// Field is one entry of the form.
type Field struct {
	Props    mdinput.Props
	Required bool
}

// Config configures a form.
type Config struct {
	Title      string
	Fields     []Field
	FieldWidth int // width of fields that are not FullWidth
	IDs        mdinput.IDGenerator
	Renderer   *markdown.Cache
}

// reserver is implemented by generators that can skip explicit ids.
type reserver interface {
	Reserve(ids ...string)
}

// Model is the form state.
type Model struct {
	title    string
	fields   []mdinput.Model
	required []bool
	flagged  []bool // required fields submitted empty
	focused  int    // index into fields, -1 = none

	fieldWidth int
	width      int

	keys     keys.FormKeyMap
	help     help.Model
	focusCmd tea.Cmd
}

// New creates a form. The first field starts focused.
func New(cfg Config) Model {
	if cfg.FieldWidth <= 0 {
		cfg.FieldWidth = mdinput.DefaultWidth
	}
	if cfg.Renderer == nil {
		cfg.Renderer = markdown.NewCache(markdown.DefaultStyle)
	}
	if cfg.IDs == nil {
		cfg.IDs = mdinput.NewCounterIDs()
	}
	if r, ok := cfg.IDs.(reserver); ok {
		for _, f := range cfg.Fields {
			if f.Props.ID != "" {
				r.Reserve(f.Props.ID)
			}
		}
	}

	h := help.New()
	h.Styles.ShortKey = styles.HelpStyle.Bold(true)
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.FullKey = styles.HelpStyle.Bold(true)
	h.Styles.FullDesc = styles.HelpStyle

	m := Model{
		title:      cfg.Title,
		fields:     make([]mdinput.Model, len(cfg.Fields)),
		required:   make([]bool, len(cfg.Fields)),
		flagged:    make([]bool, len(cfg.Fields)),
		focused:    -1,
		fieldWidth: cfg.FieldWidth,
		width:      cfg.FieldWidth,
		keys:       keys.Form,
		help:       h,
	}
	for i, f := range cfg.Fields {
		props := f.Props
		if props.OnChange == nil {
			props.OnChange = logChange
		}
		m.fields[i] = mdinput.New(cfg.IDs, props,
			mdinput.WithRenderer(cfg.Renderer),
			mdinput.WithWidth(m.widthFor(props)),
		)
		m.required[i] = f.Required
	}

	if len(m.fields) > 0 {
		var cmd tea.Cmd
		m, cmd = m.focusField(0)
		m.focusCmd = cmd
	}
	return m
}

func logChange(ev mdinput.ChangeEvent, _ ...any) {
	log.Debug(log.CatUI, "field changed", "id", ev.ID, "name", ev.Name, "len", len(ev.Value))
}

// Init starts the cursor of the initially focused field.
func (m Model) Init() tea.Cmd {
	return m.focusCmd
}

// Update handles form keys and routes everything else to the fields.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetWidth(msg.Width), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case mdinput.ChangedMsg:
		return m.handleChanged(msg), nil
	}

	// Cursor blinks and other editor messages go to the focused field
	if m.focused >= 0 {
		var cmd tea.Cmd
		m.fields[m.focused], cmd = m.fields[m.focused].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, func() tea.Msg { return CancelMsg{} }
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1)
	case key.Matches(msg, m.keys.Blur):
		return m.blurAll(), nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.focused < 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.focused], cmd = m.fields[m.focused].Update(msg)
	return m, cmd
}

// handleMouse lets every field hit-test the click, then records which one
// ended up focused.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	for i := range m.fields {
		var cmd tea.Cmd
		m.fields[i], cmd = m.fields[i].Update(msg)
		cmds = append(cmds, cmd)
	}

	m.focused = -1
	for i, f := range m.fields {
		if f.Focused() {
			m.focused = i
			break
		}
	}
	return m, tea.Batch(cmds...)
}

// handleChanged clears the required marker once the field holds text.
func (m Model) handleChanged(msg mdinput.ChangedMsg) Model {
	i := m.indexOf(msg.Event.ID)
	if i < 0 || !m.flagged[i] || msg.Event.Value == "" {
		return m
	}
	m.flagged[i] = false
	props := m.fields[i].Props()
	props.Error = false
	props.Success = true
	if props.HelperText == RequiredHelper {
		props.HelperText = ""
	}
	m.fields[i], _ = m.fields[i].SetProps(props)
	return m
}

func (m Model) moveFocus(delta int) (Model, tea.Cmd) {
	n := len(m.fields)
	if n == 0 {
		return m, nil
	}

	next := 0
	switch {
	case m.focused >= 0:
		next = ((m.focused+delta)%n + n) % n
	case delta < 0:
		next = n - 1
	}
	return m.focusField(next)
}

// focusField blurs the current field towards field i, then focuses i.
func (m Model) focusField(i int) (Model, tea.Cmd) {
	target := m.fields[i].SubID(styles.PartInput)
	if m.focused >= 0 && m.focused != i {
		cur := m.fields[m.focused]
		m.fields[m.focused], _ = cur.Update(mdinput.BlurMsg{Target: cur.SubID(styles.PartInput), Related: target})
	}

	var cmd tea.Cmd
	m.fields[i], cmd = m.fields[i].Update(mdinput.FocusMsg{Target: target})
	m.focused = i
	return m, cmd
}

func (m Model) blurAll() Model {
	if m.focused < 0 {
		return m
	}
	cur := m.fields[m.focused]
	m.fields[m.focused], _ = cur.Update(mdinput.BlurMsg{Target: cur.SubID(styles.PartInput)})
	m.focused = -1
	return m
}

// submit flags empty required fields, or sends SubmitMsg when none are.
func (m Model) submit() (Model, tea.Cmd) {
	first := -1
	for i := range m.fields {
		if !m.required[i] || m.fields[i].HasValue() {
			continue
		}
		if first < 0 {
			first = i
		}
		m.flagged[i] = true
		props := m.fields[i].Props()
		props.Error = true
		props.Success = false
		if props.HelperText == "" {
			props.HelperText = RequiredHelper
		}
		m.fields[i], _ = m.fields[i].SetProps(props)
	}

	if first >= 0 {
		log.Info(log.CatUI, "submit blocked by empty required field", "name", m.fields[first].Name())
		return m.focusField(first)
	}

	values := m.Values()
	log.Info(log.CatUI, "form submitted", "fields", len(values))
	return m, func() tea.Msg { return SubmitMsg{Values: values} }
}

// Values returns the current text of every field keyed by name.
func (m Model) Values() map[string]string {
	values := make(map[string]string, len(m.fields))
	for _, f := range m.fields {
		values[f.Name()] = f.Value()
	}
	return values
}

// Fields returns the form's fields in order.
func (m Model) Fields() []mdinput.Model {
	return m.fields
}

// Field returns the field with the given name.
func (m Model) Field(name string) (mdinput.Model, bool) {
	for _, f := range m.fields {
		if f.Name() == name {
			return f, true
		}
	}
	return mdinput.Model{}, false
}

// FocusedIndex returns the index of the focused field, or -1.
func (m Model) FocusedIndex() int {
	return m.focused
}

func (m Model) indexOf(id string) int {
	for i, f := range m.fields {
		if f.ID() == id {
			return i
		}
	}
	return -1
}

// SetWidth resizes the form; FullWidth fields span it.
func (m Model) SetWidth(w int) Model {
	m.width = w
	m.help.Width = w
	for i, f := range m.fields {
		m.fields[i] = f.SetWidth(m.widthFor(f.Props()))
	}
	return m
}

func (m Model) widthFor(p mdinput.Props) int {
	if p.FullWidth {
		return m.width
	}
	return min(m.fieldWidth, m.width)
}

// View renders the title, the fields and the help footer.
func (m Model) View() string {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(styles.TitleStyle.Render(m.title))
		b.WriteString("\n")
	}
	for _, f := range m.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
