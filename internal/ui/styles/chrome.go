package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Field part names passed to FieldChromeConfig.Mark.
const (
	PartLabel   = "label"
	PartBadge   = "badge"
	PartInput   = "input"
	PartPreview = "preview"
	PartHelper  = "helper"
)

const (
	underlineThin  = "─"
	underlineThick = "━"
	badgeGlyph     = "m"
	labelEllipsis  = "…"
)

// FieldChromeConfig describes one form field render.
type FieldChromeConfig struct {
	Classes FieldClasses
	Focused bool
	Active  bool
	Label   string
	Body    string // rendered editor or preview
	Preview bool   // Body is the markdown preview
	Helper  string
	Width   int

	// Mark wraps a rendered part, typically with a bubblezone zone.
	// Nil leaves parts untouched.
	Mark func(part, s string) string
}

// RenderField draws a material-style field:
//
//	Label                       m
//	body
//	────────────────────────────
//	helper text
//
// Every decision about colour and spacing comes from the class sets.
func RenderField(cfg FieldChromeConfig) string {
	mark := cfg.Mark
	if mark == nil {
		mark = func(_ string, s string) string { return s }
	}
	width := max(cfg.Width, 4)
	container := cfg.Classes.Container

	var lines []string

	// Dense fields sit directly under the previous one.
	if !container.Has(ClassMarginDense) {
		lines = append(lines, "")
	}

	badge := ""
	if container.Has(ClassMarkdownBadge) {
		badge = mark(PartBadge, lipgloss.NewStyle().
			Foreground(MarkdownBadgeColor).
			Background(MarkdownBadgeBgColor).
			Render(badgeGlyph))
	}

	if !container.Has(ClassDenseNoTopPadding) {
		lines = append(lines, labelLine(cfg, badge, width, mark))
		badge = ""
	}

	lines = append(lines, mark(bodyPart(cfg.Preview), cfg.Body))
	lines = append(lines, underlineRow(cfg, width-lipgloss.Width(badge))+badge)

	if cfg.Helper != "" {
		lines = append(lines, mark(PartHelper, helperStyle(cfg.Classes.Helper).Render(cfg.Helper)))
	}

	if !container.Has(ClassNoBottomMargin) {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func bodyPart(preview bool) string {
	if preview {
		return PartPreview
	}
	return PartInput
}

func labelLine(cfg FieldChromeConfig, badge string, width int, mark func(part, s string) string) string {
	badgeWidth := lipgloss.Width(badge)
	avail := max(width-badgeWidth-1, 1)

	label := ""
	if cfg.Label != "" {
		text := truncate.StringWithTail(cfg.Label, uint(avail), labelEllipsis) //nolint:gosec // avail >= 1
		label = mark(PartLabel, labelStyle(cfg).Render(text))
	}

	gap := max(width-lipgloss.Width(label)-badgeWidth, 0)
	return label + strings.Repeat(" ", gap) + badge
}

func labelStyle(cfg FieldChromeConfig) lipgloss.Style {
	classes := cfg.Classes.Label
	style := lipgloss.NewStyle().Foreground(FormTextInputLabelColor)
	switch {
	case classes.Has(ClassLabelError):
		style = style.Foreground(StatusErrorColor)
	case classes.Has(ClassLabelSuccess):
		style = style.Foreground(StatusSuccessColor)
	case cfg.Active:
		style = style.Foreground(FormTextInputFocusedLabelColor)
	}
	if cfg.Active {
		style = style.Bold(true)
	}
	return style
}

func underlineRow(cfg FieldChromeConfig, width int) string {
	width = max(width, 1)
	if cfg.Preview {
		classes := cfg.Classes.Preview
		if classes.Has(ClassMarkdownError) {
			return lipgloss.NewStyle().Foreground(StatusErrorColor).Render(strings.Repeat(underlineThick, width))
		}
		return lipgloss.NewStyle().Foreground(BorderDefaultColor).Render(strings.Repeat(underlineThin, width))
	}

	classes := cfg.Classes.Underline
	glyph := underlineThin
	if cfg.Focused {
		glyph = underlineThick
	}
	var color lipgloss.TerminalColor = FormTextInputBorderColor
	switch {
	case classes.Has(ClassUnderlineError):
		color = StatusErrorColor
	case classes.Has(ClassUnderlineSuccess):
		color = StatusSuccessColor
	case cfg.Focused:
		color = FormTextInputFocusedBorderColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(glyph, width))
}

func helperStyle(classes ClassSet) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(TextDescriptionColor)
	switch {
	case classes.Has(ClassLabelError):
		style = style.Foreground(StatusErrorColor)
	case classes.Has(ClassLabelSuccess):
		style = style.Foreground(StatusSuccessColor)
	}
	return style
}
