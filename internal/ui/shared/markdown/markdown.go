// Package markdown provides styled markdown rendering for the field preview.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultStyle is used when no style name is configured.
const DefaultStyle = "dark"

// minWidth keeps glamour from wrapping every word onto its own line.
const minWidth = 8

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with mdinput-specific configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// New creates a markdown renderer with the given width and style.
// style is a glamour standard style name ("dark", "light", "notty", ...).
// Defaults to "dark" if empty.
// Use a fixed style instead of WithAutoStyle() to avoid terminal OSC queries.
// WithAutoStyle() creates a new lipgloss renderer that detects light/dark
// background by querying the terminal, which causes escape sequence responses
// to leak into the input stream.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = DefaultStyle
	}
	width = max(width, minWidth)

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width, style: style}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Style returns the glamour style name.
func (r *Renderer) Style() string {
	return r.style
}

// Render transforms markdown to styled terminal output with surrounding
// blank lines trimmed.
func (r *Renderer) Render(markdown string) (string, error) {
	out, err := r.renderer.Render(markdown)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
