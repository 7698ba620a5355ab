// Package mdinput provides a markdown input field: a raw-text editor while
// focused or empty, rendered markdown while unfocused and non-empty.
package mdinput

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/mdinput/internal/log"
	"github.com/zjrosen/mdinput/internal/ui/shared/markdown"
	"github.com/zjrosen/mdinput/internal/ui/styles"
)

const (
	// subtreeSep separates a field id from the ids of its parts.
	subtreeSep = "/"

	DefaultWidth = 60
	minWidth     = 10
	areaHeight   = 5
)

// FocusMsg moves focus to Target. Fields focus when Target is the field or
// one of its parts.
type FocusMsg struct {
	Target string
}

// BlurMsg reports that Target lost focus to Related, which is empty when
// focus left every field. A field blurs only when Target is inside it and
// Related is not.
type BlurMsg struct {
	Target  string
	Related string
}

// ChangedMsg is emitted after every edit, once OnChange has run.
type ChangedMsg struct {
	Event ChangeEvent
}

// Option configures a Model at construction.
type Option func(*Model)

// WithRenderer shares a preview cache between fields.
func WithRenderer(c *markdown.Cache) Option {
	return func(m *Model) {
		m.preview = c
	}
}

// WithWidth sets the initial field width in columns.
func WithWidth(w int) Option {
	return func(m *Model) {
		m.width = max(w, minWidth)
	}
}

// Model is a markdown input field. It shows a raw-text editor while focused
// or empty and the rendered markdown otherwise.
type Model struct {
	props  Props
	ids    IDGenerator
	idFrom string // props.ID the current id was computed from
	id     string

	state   fieldState
	input   textinput.Model
	area    textarea.Model
	preview *markdown.Cache
	width   int
}

// New creates a field. ids issues the field id when props.ID is empty.
func New(ids IDGenerator, props Props, opts ...Option) Model {
	m := Model{
		ids:   ids,
		width: DefaultWidth,
		input: newInput(),
		area:  newArea(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.preview == nil {
		m.preview = markdown.NewCache(markdown.DefaultStyle)
	}

	m.props = props
	m.assignID()
	m.state.sync(props.Value, props.DefaultValue)
	m.syncEditor()
	m.applyWidth()
	m.validate()
	m.refreshRef()

	log.Debug(log.CatField, "field created", "id", m.id, "name", props.Name, "state", m.state.init)
	return m
}

func newInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = ""
	ti.CharLimit = 0
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	return ti
}

func newArea() textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.Placeholder = ""
	ta.CharLimit = 0
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.SetHeight(areaHeight)
	return ta
}

// assignID recomputes the id only when props.ID changed.
func (m *Model) assignID() {
	if m.id != "" && m.props.ID == m.idFrom {
		return
	}
	m.idFrom = m.props.ID
	switch {
	case m.props.ID != "":
		m.id = m.props.ID
	case m.ids != nil:
		m.id = m.ids.Next(DefaultIDPrefix)
	default:
		m.id = DefaultIDPrefix + uuid.NewString()
		log.Warn(log.CatField, "no id generator, using random id", "id", m.id)
	}
}

func (m Model) validate() {
	for _, err := range m.props.Validate() {
		log.Warn(log.CatField, "invalid prop", "id", m.id, "error", err)
	}
}

// SetProps replaces the field's props. Value rules run only when Value or
// DefaultValue changed.
func (m Model) SetProps(p Props) (Model, tea.Cmd) {
	prev := m.props
	m.props = p
	m.assignID()

	if !sameString(prev.Value, p.Value) || !sameString(prev.DefaultValue, p.DefaultValue) {
		m.state.sync(p.Value, p.DefaultValue)
		m.syncEditor()
	}

	var cmd tea.Cmd
	if prev.Multiline != p.Multiline {
		m.setEditorValue(m.state.text())
		if m.state.focused {
			m.input.Blur()
			m.area.Blur()
			cmd = m.focusEditor()
		}
	}

	m.validate()
	m.refreshRef()
	return m, cmd
}

// SetWidth sets the field width in columns.
func (m Model) SetWidth(w int) Model {
	m.width = max(w, minWidth)
	m.applyWidth()
	return m
}

func (m *Model) applyWidth() {
	// textinput draws the cursor one cell past Width
	m.input.Width = max(m.width-1, 1)
	m.area.SetWidth(m.width)
}

// Update handles focus, blur, mouse and editor input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case FocusMsg:
		if m.Contains(msg.Target) {
			m, cmd = m.focus()
		}
	case BlurMsg:
		if m.Contains(msg.Target) && !m.Contains(msg.Related) {
			m = m.blur()
		}
	case tea.MouseMsg:
		m, cmd = m.handleMouse(msg)
	default:
		m, cmd = m.updateEditor(msg)
	}
	m.refreshRef()
	return m, cmd
}

func (m Model) focus() (Model, tea.Cmd) {
	if m.state.focused {
		return m, nil
	}
	m.state.focused = true
	log.Debug(log.CatField, "focus", "id", m.id)
	return m, m.focusEditor()
}

func (m *Model) focusEditor() tea.Cmd {
	if m.props.Multiline {
		return m.area.Focus()
	}
	return m.input.Focus()
}

func (m Model) blur() Model {
	if !m.state.focused {
		return m
	}
	m.state.focused = false
	m.input.Blur()
	m.area.Blur()
	log.Debug(log.CatField, "blur", "id", m.id, "hasValue", m.state.hasValue())
	return m
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}
	if target := m.hitTest(msg); target != "" {
		return m.focus()
	}
	return m.blur(), nil
}

// hitTest returns the id of the part under msg, or "".
func (m Model) hitTest(msg tea.MouseMsg) string {
	for _, part := range parts {
		id := m.SubID(part)
		if z := zone.Get(id); z != nil && z.InBounds(msg) {
			return id
		}
	}
	return ""
}

// updateEditor forwards msg to the editor while focused and reports edits.
func (m Model) updateEditor(msg tea.Msg) (Model, tea.Cmd) {
	if !m.state.focused {
		return m, nil
	}

	before := m.editorValue()
	var cmd tea.Cmd
	if m.props.Multiline {
		m.area, cmd = m.area.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}

	after := m.editorValue()
	if after == before {
		return m, cmd
	}
	var changed tea.Cmd
	m, changed = m.HandleChange(msg, after)
	return m, tea.Batch(cmd, changed)
}

// HandleChange adopts text as the field's value, then calls OnChange with
// the event and extra, then emits a ChangedMsg. The value is adopted before
// OnChange runs, so the callback observes the new state.
func (m Model) HandleChange(msg tea.Msg, text string, extra ...any) (Model, tea.Cmd) {
	m.state.value = String(text)
	if m.editorValue() != text {
		m.setEditorValue(text)
	}
	m.refreshRef()

	ev := ChangeEvent{ID: m.id, Name: m.props.Name, Value: text, Msg: msg}
	if m.props.OnChange != nil {
		m.props.OnChange(ev, extra...)
	}
	return m, func() tea.Msg { return ChangedMsg{Event: ev} }
}

func (m Model) editorValue() string {
	if m.props.Multiline {
		return m.area.Value()
	}
	return m.input.Value()
}

func (m *Model) setEditorValue(s string) {
	m.input.SetValue(s)
	m.area.SetValue(s)
}

// syncEditor loads the adopted value into the editors when they differ.
func (m *Model) syncEditor() {
	if m.editorValue() != m.state.text() {
		m.setEditorValue(m.state.text())
	}
}

func (m Model) refreshRef() {
	if m.props.InputRef == nil {
		return
	}
	*m.props.InputRef = InputRef{
		ID:        m.id,
		Name:      m.props.Name,
		Value:     m.editorValue(),
		Focused:   m.state.focused,
		Multiline: m.props.Multiline,
	}
}

// ID returns the field id, explicit or generated.
func (m Model) ID() string { return m.id }

// SubID returns the id of one of the field's parts.
func (m Model) SubID(part string) string { return m.id + subtreeSep + part }

// Contains reports whether target is the field or one of its parts.
func (m Model) Contains(target string) bool {
	if target == "" {
		return false
	}
	return target == m.id || strings.HasPrefix(target, m.id+subtreeSep)
}

// Name returns the form name of the field.
func (m Model) Name() string { return m.props.Name }

// Value returns the adopted text.
func (m Model) Value() string { return m.state.text() }

// HasValue reports whether the adopted text is non-empty.
func (m Model) HasValue() bool { return m.state.hasValue() }

// Focused reports whether the field holds focus.
func (m Model) Focused() bool { return m.state.focused }

// Initialized reports whether the default value has been adopted.
func (m Model) Initialized() bool { return m.state.init == initialized }

// ShowsEditor reports whether View renders the raw-text editor.
func (m Model) ShowsEditor() bool { return m.state.showEditor() }

// ShowsPreview reports whether View renders the markdown preview.
func (m Model) ShowsPreview() bool { return m.state.showPreview() }

// Props returns the field's current props.
func (m Model) Props() Props { return m.props }

// Width returns the field width in columns.
func (m Model) Width() int { return m.width }

// Classes returns the style classes of every part for the current state.
func (m Model) Classes() styles.FieldClasses {
	return styles.FieldVariant{
		Focused:     m.state.focused,
		Active:      m.state.active(),
		HasLabel:    m.props.Label != "",
		HasHelper:   m.props.helperText() != "",
		Error:       m.props.Error,
		Success:     m.props.Success,
		EmptyHelper: m.props.EmptyHelper,
		Margin:      m.props.Margin,
		Extra:       styles.Class(m.props.ClassName),
	}.Classes()
}
