package styles

import (
	"slices"
	"strings"
)

// Class names one style fragment applied to a part of a form field.
// Classes are resolved into lipgloss styles by RenderField.
type Class string

const (
	// Container
	ClassFormControl       Class = "form-control"
	ClassMarkdownBadge     Class = "markdown-badge"
	ClassNoBottomMargin    Class = "no-bottom-margin"
	ClassMarginDense       Class = "margin-dense"
	ClassDenseNoTopPadding Class = "dense-no-top-padding"

	// Label and helper text
	ClassLabelRoot    Class = "label-root"
	ClassLabelError   Class = "label-error"
	ClassLabelSuccess Class = "label-success"

	// Input decoration
	ClassUnderline        Class = "underline"
	ClassUnderlineError   Class = "underline-error"
	ClassUnderlineSuccess Class = "underline-success"

	// Markdown preview container
	ClassMarkdownRoot  Class = "markdown-root"
	ClassMarkdownError Class = "markdown-error"
)

// ClassSet is a small set of classes. The zero value is empty.
type ClassSet []Class

func newClassSet(classes ...Class) ClassSet {
	set := make(ClassSet, 0, len(classes))
	for _, c := range classes {
		if c == "" || slices.Contains(set, c) {
			continue
		}
		set = append(set, c)
	}
	return set
}

// Has reports whether c is in the set.
func (s ClassSet) Has(c Class) bool {
	return slices.Contains(s, c)
}

// String joins the set with spaces, in insertion order.
func (s ClassSet) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = string(c)
	}
	return strings.Join(parts, " ")
}

// Margin controls the vertical density of a field.
type Margin string

const (
	MarginUnset  Margin = ""
	MarginDense  Margin = "dense"
	MarginNone   Margin = "none"
	MarginNormal Margin = "normal"
)

// Valid reports whether m is unset or one of dense, none, normal.
func (m Margin) Valid() bool {
	switch m {
	case MarginUnset, MarginDense, MarginNone, MarginNormal:
		return true
	}
	return false
}

// FieldVariant is the complete set of flags that decide how a field looks.
type FieldVariant struct {
	Focused     bool
	Active      bool // focused or holding a value; drives the raised label
	HasLabel    bool
	HasHelper   bool
	Error       bool
	Success     bool
	EmptyHelper bool
	Margin      Margin
	Extra       Class // host supplied container class
}

// FieldClasses holds the resolved class sets handed to each part of a field.
type FieldClasses struct {
	Container ClassSet
	Label     ClassSet
	Underline ClassSet
	Helper    ClassSet
	Preview   ClassSet
}

// Classes resolves the variant into class sets. Error takes precedence over
// success everywhere both could apply.
func (v FieldVariant) Classes() FieldClasses {
	success := v.Success && !v.Error

	var fc FieldClasses

	container := []Class{ClassFormControl, ClassMarkdownBadge}
	if v.EmptyHelper {
		container = append(container, ClassNoBottomMargin)
	}
	if v.Margin == MarginDense {
		container = append(container, ClassMarginDense)
		if !v.HasLabel {
			container = append(container, ClassDenseNoTopPadding)
		}
	}
	container = append(container, v.Extra)
	fc.Container = newClassSet(container...)

	if v.HasLabel {
		label := []Class{ClassLabelRoot}
		if v.Error {
			label = append(label, ClassLabelError)
		}
		if success {
			label = append(label, ClassLabelSuccess)
		}
		fc.Label = newClassSet(label...)
	}

	underline := []Class{ClassUnderline}
	if v.Error {
		underline = append(underline, ClassUnderlineError)
	}
	if success {
		underline = append(underline, ClassUnderlineSuccess)
	}
	fc.Underline = newClassSet(underline...)

	if v.HasHelper {
		var helper []Class
		if v.Error {
			helper = append(helper, ClassLabelError)
		}
		if success {
			helper = append(helper, ClassLabelSuccess)
		}
		fc.Helper = newClassSet(helper...)
	}

	preview := []Class{ClassMarkdownRoot}
	// The preview only shows the error rule when success is not also asserted.
	if v.Error && !v.Success {
		preview = append(preview, ClassMarkdownError)
	}
	fc.Preview = newClassSet(preview...)

	return fc
}
