package form

import (
	"fmt"
	"strings"
)

// Validator checks a payload against a compiled descriptor set. It is
// stateless: compiling the same descriptors always yields a validator with
// identical behavior, and Validate never mutates the validator.
type Validator struct {
	fields []Field
}

// Compile translates an ordered descriptor set into the creation validator.
// Every field participates, each per its own rule.
func Compile(fields []Field) *Validator {
	out := make([]Field, len(fields))
	copy(out, fields)
	return &Validator{fields: out}
}

// CompileEdit translates a descriptor set into the edit validator: fields
// marked not-editable are dropped, and password fields are always dropped —
// credentials are never re-editable through the admin path.
func CompileEdit(fields []Field) *Validator {
	var out []Field
	for _, f := range fields {
		if f.NotEditable || f.Kind == Password {
			continue
		}
		out = append(out, f)
	}
	return &Validator{fields: out}
}

// Fields returns the compiled descriptor set in order.
func (v *Validator) Fields() []Field {
	out := make([]Field, len(v.fields))
	copy(out, v.fields)
	return out
}

// Has reports whether the validator covers the named field.
func (v *Validator) Has(name string) bool {
	for _, f := range v.fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Validate checks the payload and returns either a clean value mapping or a
// field-to-message mapping. Exactly one of the results is meaningful: when
// errs is non-empty, clean is nil. Unknown payload keys are dropped; they
// are not errors.
func (v *Validator) Validate(payload Values) (clean Values, errs Errors) {
	errs = make(Errors)
	clean = make(Values, len(v.fields))

	for _, f := range v.fields {
		raw := strings.TrimSpace(payload[f.Name])

		if raw == "" {
			if f.Rule.Required {
				errs[f.Name] = fmt.Sprintf("%s is required", f.Label)
			}
			continue
		}

		if msg := checkField(f, raw, payload); msg != "" {
			errs[f.Name] = msg
			continue
		}

		clean[f.Name] = raw
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return clean, errs
}

// checkField dispatches on the field kind, then applies the structural rule.
// It returns an empty string for valid input.
func checkField(f Field, raw string, payload Values) string {
	switch f.Kind {
	case Number:
		if !numberPattern.MatchString(raw) {
			return fmt.Sprintf("%s must be a number", f.Label)
		}
	case Email:
		if !emailPattern.MatchString(raw) {
			return fmt.Sprintf("%s must be a valid email address", f.Label)
		}
	case Select:
		options := f.ResolveOptions(payload)
		if len(options) > 0 && !optionAllowed(options, raw) {
			return fmt.Sprintf("%s has an unknown value", f.Label)
		}
	case Image:
		if !dataURLPattern.MatchString(raw) {
			return fmt.Sprintf("%s must be an uploaded image", f.Label)
		}
	}

	rule := f.Rule
	if rule.MinLen > 0 && len(raw) < rule.MinLen {
		return fmt.Sprintf("%s must be at least %d characters", f.Label, rule.MinLen)
	}
	if rule.MaxLen > 0 && len(raw) > rule.MaxLen {
		return fmt.Sprintf("%s must be at most %d characters", f.Label, rule.MaxLen)
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(raw) {
		if rule.Message != "" {
			return rule.Message
		}
		return fmt.Sprintf("%s has an invalid format", f.Label)
	}

	return ""
}

func optionAllowed(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
