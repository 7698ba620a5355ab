package mdinput

import (
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/mdinput/internal/ui/styles"
)

// parts lists every zone a field marks, in hit-test order.
var parts = []string{
	styles.PartInput,
	styles.PartPreview,
	styles.PartLabel,
	styles.PartHelper,
	styles.PartBadge,
}

// View renders the field. Exactly one of the editor and the preview is
// drawn. Parts are wrapped in bubblezone marks; the host calls zone.Scan.
func (m Model) View() string {
	preview := m.state.showPreview()

	var body string
	switch {
	case preview:
		body = m.preview.Render(m.state.text(), m.width)
	case m.props.Multiline:
		body = m.area.View()
	default:
		body = m.input.View()
	}

	return styles.RenderField(styles.FieldChromeConfig{
		Classes: m.Classes(),
		Focused: m.state.focused,
		Active:  m.state.active(),
		Label:   m.props.Label,
		Body:    body,
		Preview: preview,
		Helper:  m.props.helperText(),
		Width:   m.width,
		Mark:    m.mark,
	})
}

func (m Model) mark(part, s string) string {
	return zone.Mark(m.SubID(part), s)
}
