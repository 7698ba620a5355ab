package mdinput

// initState tracks whether the default value has been adopted.
type initState int

const (
	uninitialized initState = iota
	initialized
)

func (s initState) String() string {
	if s == initialized {
		return "initialized"
	}
	return "uninitialized"
}

// fieldState is the component-local state of one field.
type fieldState struct {
	value   *string // nil until something is adopted
	focused bool
	init    initState
}

func (s fieldState) text() string {
	return deref(s.value)
}

func (s fieldState) hasValue() bool {
	return s.text() != ""
}

// showEditor and showPreview are complements: exactly one is true.
func (s fieldState) showEditor() bool {
	return s.focused || !s.hasValue()
}

func (s fieldState) showPreview() bool {
	return !s.focused && s.hasValue()
}

// active raises the label: the field is focused or holds text.
func (s fieldState) active() bool {
	return s.focused || s.hasValue()
}

// syncStep applies the value rules once:
//  1. a default, with nothing adopted yet and no prior init, is adopted
//     and ends the step
//  2. otherwise a non-empty value is adopted
//  3. otherwise nothing changes
//
// It reports whether the init flag flipped.
func (s *fieldState) syncStep(value, defaultValue *string) bool {
	if deref(defaultValue) != "" && !s.hasValue() && s.init == uninitialized {
		s.value = String(*defaultValue)
		s.init = initialized
		return true
	}
	if deref(value) != "" {
		s.value = String(*value)
	}
	return false
}

// sync runs the rules until they settle. A flip of the init flag is itself
// a change that triggers one more step, in which a supplied value wins.
func (s *fieldState) sync(value, defaultValue *string) {
	if s.syncStep(value, defaultValue) {
		s.syncStep(value, defaultValue)
	}
}
