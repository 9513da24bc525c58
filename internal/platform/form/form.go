// Package form declares editable entity attributes as field descriptors and
// compiles descriptor sets into structural validators shared by the create
// and edit flows.
package form

import "regexp"

// Kind is the explicit discriminant of a field descriptor. Validation
// dispatches on it; no runtime type inspection is involved.
type Kind string

const (
	Text     Kind = "text"
	Number   Kind = "number"
	Email    Kind = "email"
	Password Kind = "password"
	Select   Kind = "select"
	Image    Kind = "image"
)

// Patterns shared by the clinic's descriptor sets.
var (
	// PINPattern matches the 12-digit personal identification number.
	PINPattern = regexp.MustCompile(`^[0-9]{12}$`)
	// PhonePattern matches phone numbers like "+7 (900) 123-4567".
	PhonePattern = regexp.MustCompile(`^(\+\d{1}\s)?\(?\d{3}\)?[\s.-]\d{3}[\s.-]\d{4}$`)
	// DatePattern matches calendar dates like "2024-05-01".
	DatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	emailPattern   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	numberPattern  = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	dataURLPattern = regexp.MustCompile(`^data:[A-Za-z-+/]+;base64,.+$`)
)

// Values maps field names to submitted values.
type Values map[string]string

// Errors maps field names to human-readable validation messages. Valid
// fields have no entry.
type Errors map[string]string

// Option is one selectable value of a select field.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Rule is the structural validation rule attached to a field. The zero
// value accepts any non-empty input; Required controls whether empty input
// is accepted at all.
type Rule struct {
	Required bool
	MinLen   int
	MaxLen   int
	Pattern  *regexp.Regexp
	// Message overrides the generic pattern-mismatch message.
	Message string
}

// Field describes one editable attribute of an entity.
type Field struct {
	Name  string
	Label string
	Kind  Kind
	Rule  Rule

	// Options holds the static value options of a select field. OptionsFn,
	// when set, derives them from the in-progress form values instead (the
	// service options of a doctor depend on the chosen department). It must
	// be a pure function.
	Options   []Option
	OptionsFn func(Values) []Option

	// NotEditable excludes the field from the edit validator. The create
	// validator still includes it.
	NotEditable bool
}

// ResolveOptions returns the field's options for the given in-progress
// values.
func (f Field) ResolveOptions(values Values) []Option {
	if f.OptionsFn != nil {
		return f.OptionsFn(values)
	}
	return f.Options
}
