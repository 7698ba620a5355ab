package mdinput

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/mdinput/internal/ui/shared/markdown"
	"github.com/zjrosen/mdinput/internal/ui/styles"
)

func newField(t *testing.T, props Props) Model {
	t.Helper()
	return New(NewCounterIDs(), props, WithRenderer(markdown.NewCache("dark")), WithWidth(40))
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func plain(m Model) string {
	return ansi.Strip(zone.Scan(m.View()))
}

func TestNew_ValueShowsPreview(t *testing.T) {
	m := newField(t, Props{ID: "notes", Value: String("hello")})

	require.True(t, m.ShowsPreview())
	require.False(t, m.ShowsEditor())
	require.Equal(t, "hello", m.Value())
	require.Contains(t, plain(m), "hello")
}

func TestNew_EmptyShowsEditor(t *testing.T) {
	m := newField(t, Props{ID: "notes", Label: "Notes"})

	require.True(t, m.ShowsEditor())
	require.False(t, m.ShowsPreview())
	require.False(t, m.HasValue())
	require.Contains(t, plain(m), "Notes")
}

func TestNew_DefaultValueAdoptedOnce(t *testing.T) {
	m := newField(t, Props{DefaultValue: String("hello")})
	require.Equal(t, "hello", m.Value())
	require.True(t, m.Initialized())

	m, _ = m.SetProps(Props{DefaultValue: String("replaced")})
	require.Equal(t, "hello", m.Value(), "default must not be re-applied")
}

func TestNew_ValueWinsOverDefault(t *testing.T) {
	m := newField(t, Props{Value: String("v"), DefaultValue: String("d")})
	require.Equal(t, "v", m.Value())
	require.True(t, m.Initialized())
}

func TestSetProps_ValueTracking(t *testing.T) {
	m := newField(t, Props{Value: String("a")})

	m, _ = m.SetProps(Props{Value: String("b")})
	require.Equal(t, "b", m.Value())

	m, _ = m.SetProps(Props{Value: String("")})
	require.Equal(t, "b", m.Value(), "an empty value is not adopted")

	m, _ = m.SetProps(Props{})
	require.Equal(t, "b", m.Value())
}

func TestSetProps_UnchangedValueKeepsEdits(t *testing.T) {
	props := Props{ID: "f", Value: String("a")}
	m := newField(t, props)
	m, _ = m.Update(FocusMsg{Target: "f"})
	m = typeText(m, "b")
	require.Equal(t, "ab", m.Value())

	m, _ = m.SetProps(props)
	require.Equal(t, "ab", m.Value(), "sync only runs when value or default changed")
}

func TestID_ExplicitAndGenerated(t *testing.T) {
	ids := NewCounterIDs()

	a := New(ids, Props{})
	b := New(ids, Props{})
	c := New(ids, Props{ID: "explicit"})

	require.Equal(t, "markdown-input-1", a.ID())
	require.Equal(t, "markdown-input-2", b.ID())
	require.Equal(t, "explicit", c.ID())
	require.Equal(t, "explicit/input", c.SubID(styles.PartInput))
}

func TestID_StableAcrossSetProps(t *testing.T) {
	m := New(NewCounterIDs(), Props{})
	id := m.ID()

	m, _ = m.SetProps(Props{Label: "changed"})
	require.Equal(t, id, m.ID())

	m, _ = m.SetProps(Props{ID: "named"})
	require.Equal(t, "named", m.ID())
}

func TestID_NilGenerator(t *testing.T) {
	a := New(nil, Props{})
	b := New(nil, Props{})

	require.True(t, strings.HasPrefix(a.ID(), DefaultIDPrefix))
	require.NotEqual(t, a.ID(), b.ID())
}

func TestContains(t *testing.T) {
	m := newField(t, Props{ID: "f"})

	require.True(t, m.Contains("f"))
	require.True(t, m.Contains("f/input"))
	require.False(t, m.Contains("f2"))
	require.False(t, m.Contains("other/input"))
	require.False(t, m.Contains(""))
}

func TestFocusAndTypeThenBlurRendersMarkdown(t *testing.T) {
	var events []ChangeEvent
	m := newField(t, Props{
		ID:   "body",
		Name: "body",
		OnChange: func(ev ChangeEvent, _ ...any) {
			events = append(events, ev)
		},
	})

	m, cmd := m.Update(FocusMsg{Target: "body/input"})
	require.NotNil(t, cmd, "focusing the editor starts the cursor")
	require.True(t, m.Focused())
	require.True(t, m.ShowsEditor())

	m = typeText(m, "# Title")
	require.Len(t, events, len("# Title"), "one change per keystroke")
	require.Equal(t, "# Title", events[len(events)-1].Value)
	require.Equal(t, "body", events[0].Name)
	require.Equal(t, "# Title", m.Value())
	require.True(t, m.ShowsEditor(), "focused fields keep the editor")

	m, _ = m.Update(BlurMsg{Target: "body/input"})
	require.False(t, m.Focused())
	require.True(t, m.ShowsPreview())

	out := plain(m)
	require.Contains(t, out, "Title")
	require.NotContains(t, out, "# Title")
}

func TestBlur_RelatedInsideKeepsFocus(t *testing.T) {
	m := newField(t, Props{ID: "f"})
	m, _ = m.Update(FocusMsg{Target: "f"})

	m, _ = m.Update(BlurMsg{Target: "f/input", Related: "f/label"})
	require.True(t, m.Focused())

	m, _ = m.Update(BlurMsg{Target: "other/input"})
	require.True(t, m.Focused(), "blur of another field is ignored")

	m, _ = m.Update(BlurMsg{Target: "f/input", Related: "g/input"})
	require.False(t, m.Focused())
}

func TestFocus_OtherTargetIgnored(t *testing.T) {
	m := newField(t, Props{ID: "f"})
	m, cmd := m.Update(FocusMsg{Target: "g"})
	require.Nil(t, cmd)
	require.False(t, m.Focused())
}

func TestUnfocusedIgnoresKeys(t *testing.T) {
	called := false
	m := newField(t, Props{OnChange: func(ChangeEvent, ...any) { called = true }})

	m = typeText(m, "abc")
	require.False(t, called)
	require.Empty(t, m.Value())
}

func TestHandleChange_StateBeforeCallback(t *testing.T) {
	ref := &InputRef{}
	var seen InputRef
	var gotExtra []any
	m := newField(t, Props{
		ID:       "f",
		Name:     "notes",
		InputRef: ref,
		OnChange: func(ev ChangeEvent, extra ...any) {
			seen = *ref
			gotExtra = extra
		},
	})

	m, cmd := m.HandleChange(nil, "new text", "source", 42)
	require.Equal(t, "new text", seen.Value, "the callback sees the adopted value")
	require.Equal(t, []any{"source", 42}, gotExtra)
	require.Equal(t, "new text", m.Value())

	require.NotNil(t, cmd)
	msg, ok := cmd().(ChangedMsg)
	require.True(t, ok)
	require.Equal(t, ChangeEvent{ID: "f", Name: "notes", Value: "new text"}, msg.Event)
}

func TestInputRef_TracksFocus(t *testing.T) {
	ref := &InputRef{}
	m := newField(t, Props{ID: "f", Name: "n", Value: String("v"), InputRef: ref})
	require.Equal(t, InputRef{ID: "f", Name: "n", Value: "v"}, *ref)

	m, _ = m.Update(FocusMsg{Target: "f"})
	require.True(t, ref.Focused)

	m.Update(BlurMsg{Target: "f"})
	require.False(t, ref.Focused)
}

func TestMultiline(t *testing.T) {
	m := newField(t, Props{ID: "f", Multiline: true})
	m, _ = m.Update(FocusMsg{Target: "f"})

	m = typeText(m, "one")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(m, "two")

	require.Equal(t, "one\ntwo", m.Value())
}

func TestSetProps_SwitchMultilineKeepsText(t *testing.T) {
	m := newField(t, Props{ID: "f", Value: String("text")})
	m, _ = m.Update(FocusMsg{Target: "f"})

	m, cmd := m.SetProps(Props{ID: "f", Value: String("text"), Multiline: true})
	require.NotNil(t, cmd, "the new editor takes focus")
	require.Equal(t, "text", m.Value())

	m = typeText(m, "!")
	require.Equal(t, "text!", m.Value())
}

func TestClasses_ErrorWinsOverSuccess(t *testing.T) {
	m := newField(t, Props{Label: "L", Error: true, Success: true, HelperText: "h"})
	c := m.Classes()

	require.True(t, c.Underline.Has(styles.ClassUnderlineError))
	require.False(t, c.Underline.Has(styles.ClassUnderlineSuccess))
	require.True(t, c.Label.Has(styles.ClassLabelError))
	require.False(t, c.Label.Has(styles.ClassLabelSuccess))
	require.False(t, c.Preview.Has(styles.ClassMarkdownError))
}

func TestClasses_HostClassName(t *testing.T) {
	m := newField(t, Props{ClassName: "wide"})
	require.True(t, m.Classes().Container.Has(styles.Class("wide")))
}

func TestView_EmptyHelperReservesRow(t *testing.T) {
	m := newField(t, Props{EmptyHelper: true})
	require.Contains(t, m.View(), emptyHelperText)

	m = newField(t, Props{})
	require.NotContains(t, m.View(), emptyHelperText)
}

func TestView_HelperText(t *testing.T) {
	m := newField(t, Props{HelperText: "supports markdown", EmptyHelper: true})
	require.Contains(t, plain(m), "supports markdown")
}

func TestProps_Validate(t *testing.T) {
	require.Empty(t, Props{Margin: styles.MarginDense}.Validate())
	require.Len(t, Props{Margin: "huge"}.Validate(), 1)
	require.Len(t, Props{ID: "a/b"}.Validate(), 1)
	require.Len(t, Props{ClassName: "two classes"}.Validate(), 1)
}

func TestMouse_ClickFocusesAndOutsideBlurs(t *testing.T) {
	m := newField(t, Props{ID: "mouse-field", Label: "Clickable"})
	zone.Scan(m.View())

	labelID := m.SubID(styles.PartLabel)
	require.Eventually(t, func() bool {
		z := zone.Get(labelID)
		return z != nil && !z.IsZero()
	}, time.Second, 10*time.Millisecond)

	z := zone.Get(labelID)
	click := tea.MouseMsg{X: z.StartX, Y: z.StartY, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}

	m, _ = m.Update(tea.MouseMsg{X: z.StartX, Y: z.StartY, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	require.False(t, m.Focused(), "only release counts as a click")

	m, _ = m.Update(click)
	require.True(t, m.Focused())

	m, _ = m.Update(tea.MouseMsg{X: 500, Y: 500, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	require.False(t, m.Focused())
}

// Whatever happens to a field, it draws exactly one of editor and preview.
func TestModel_ExactlyOneView(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := New(NewCounterIDs(), Props{ID: "prop", Value: String(rapid.StringMatching(`[a-z ]{0,5}`).Draw(rt, "initial"))})

		steps := rapid.IntRange(1, 20).Draw(rt, "steps")
		for i := range steps {
			switch rapid.IntRange(0, 4).Draw(rt, fmt.Sprintf("op%d", i)) {
			case 0:
				m, _ = m.Update(FocusMsg{Target: "prop"})
			case 1:
				m, _ = m.Update(BlurMsg{Target: "prop"})
			case 2:
				r := rapid.RuneFrom([]rune("abc #")).Draw(rt, fmt.Sprintf("rune%d", i))
				m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
			case 3:
				m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
			case 4:
				v := rapid.StringMatching(`[a-z]{0,3}`).Draw(rt, fmt.Sprintf("value%d", i))
				m, _ = m.SetProps(Props{ID: "prop", Value: String(v)})
			}

			if m.ShowsEditor() == m.ShowsPreview() {
				rt.Fatalf("editor=%v preview=%v", m.ShowsEditor(), m.ShowsPreview())
			}
			if m.ShowsPreview() != (!m.Focused() && m.HasValue()) {
				rt.Fatalf("preview=%v focused=%v value=%q", m.ShowsPreview(), m.Focused(), m.Value())
			}
		}
	})
}
