package mdinput

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/mdinput/internal/ui/styles"
)

// emptyHelperText reserves the helper row when EmptyHelper is set.
const emptyHelperText = " "

// ChangeEvent describes one edit of a field's text.
type ChangeEvent struct {
	ID    string
	Name  string
	Value string
	Msg   tea.Msg // message that caused the edit, nil for programmatic changes
}

// ChangeFunc is notified after the field has adopted the new text.
type ChangeFunc func(ev ChangeEvent, extra ...any)

// InputRef is refreshed after every update with the state of the
// underlying editor, so the host can reach it without owning it.
type InputRef struct {
	ID        string
	Name      string
	Value     string
	Focused   bool
	Multiline bool
}

// Props configures a field. The field never mutates them.
type Props struct {
	ID           string
	Name         string
	Value        *string
	DefaultValue *string
	Label        string
	Error        bool
	Success      bool
	Margin       styles.Margin
	Multiline    bool
	EmptyHelper  bool
	HelperText   string
	ClassName    string
	FullWidth    bool
	OnChange     ChangeFunc
	InputRef     *InputRef
}

// String returns a pointer to s, for Props.Value and Props.DefaultValue.
func String(s string) *string {
	return &s
}

// Validate reports props that do not match their declared shape. The
// result is advisory: fields render regardless.
func (p Props) Validate() []error {
	var errs []error
	if !p.Margin.Valid() {
		errs = append(errs, fmt.Errorf("margin %q is not one of dense, none, normal", p.Margin))
	}
	if strings.Contains(p.ID, subtreeSep) {
		errs = append(errs, fmt.Errorf("id %q must not contain %q", p.ID, subtreeSep))
	}
	if strings.ContainsAny(p.ClassName, " \t\n") {
		errs = append(errs, fmt.Errorf("className %q must be a single class", p.ClassName))
	}
	return errs
}

func (p Props) helperText() string {
	if p.EmptyHelper && p.HelperText == "" {
		return emptyHelperText
	}
	return p.HelperText
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
