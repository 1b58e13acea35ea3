// Package fields describes how a single item field is labelled, rendered and
// decoded from submitted form values.
package fields

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrAbsent is returned by the decoder of an optional field that was not
// submitted. The field is then left out of the assembled object.
var ErrAbsent = errors.New("fields: value absent")

// Kind describes the JSON shape a field holds.
type Kind string

const (
	KindText     Kind = "text"
	KindBoolean  Kind = "boolean"
	KindNumber   Kind = "number"
	KindMarkdown Kind = "markdown"
	KindSelect   Kind = "select"
)

// RenderFunc turns the JSON value stored under a field into display text.
type RenderFunc func(value any) (string, error)

// ValidateFunc checks a decoded value.
type ValidateFunc func(value any) ValidationResult

// DecodeFunc converts the raw form value of a field into a JSON value. raw is
// nil when the field was not submitted.
type DecodeFunc func(raw *string) (any, error)

// ValidationResult is the outcome of a ValidateFunc.
type ValidationResult struct {
	Valid  bool
	Reason string
}

// Valid reports a passing validation.
func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid reports a failed validation with reason.
func Invalid(reason string) ValidationResult {
	return ValidationResult{Valid: false, Reason: reason}
}

// CreateConfig is present on fields that accept input on create.
type CreateConfig struct {
	Validate      ValidateFunc
	FromFormValue DecodeFunc
}

// Decode runs FromFormValue. A config without a decoder passes the raw string
// through, and nil when absent.
func (c *CreateConfig) Decode(raw *string) (any, error) {
	if c == nil || c.FromFormValue == nil {
		if raw == nil {
			return nil, nil
		}
		return *raw, nil
	}
	return c.FromFormValue(raw)
}

// Check runs Validate. A missing validator accepts everything.
func (c *CreateConfig) Check(value any) ValidationResult {
	if c == nil || c.Validate == nil {
		return Valid()
	}
	return c.Validate(value)
}

// Choice is one entry of a select field.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldConfig describes one field of a resource item.
type FieldConfig struct {
	FieldID     string
	DisplayName string
	Description string
	HelpText    string
	Kind        Kind
	Optional    bool
	Render      RenderFunc
	Create      *CreateConfig
	Choices     []Choice
}

// ReadOnly reports whether the field is excluded from create.
func (f FieldConfig) ReadOnly() bool {
	return f.Create == nil
}

// Label returns DisplayName, deriving it from FieldID when empty.
func (f FieldConfig) Label() string {
	if strings.TrimSpace(f.DisplayName) != "" {
		return f.DisplayName
	}
	return DisplayName(f.FieldID)
}

// RenderValue renders value with the field renderer, falling back to the
// default renderer of the field kind.
func (f FieldConfig) RenderValue(value any) (string, error) {
	if f.Render != nil {
		return f.Render(value)
	}
	return defaultRenderer(f.Kind, f.Optional, f.Choices)(value)
}

// Clone returns a copy that shares no slices with f.
func (f FieldConfig) Clone() FieldConfig {
	out := f
	if f.Choices != nil {
		out.Choices = append([]Choice(nil), f.Choices...)
	}
	if f.Create != nil {
		create := *f.Create
		out.Create = &create
	}
	return out
}

// DisplayName derives a label from a field id: underscores become spaces and
// the first letter is upper cased ("is_adult" becomes "Is adult").
func DisplayName(fieldID string) string {
	name := strings.TrimSpace(strings.ReplaceAll(fieldID, "_", " "))
	if name == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
