package fields

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-admin/pkg/adminerrors"
)

// Option customises a field built by one of the constructors.
type Option func(*builder)

type builder struct {
	cfg   FieldConfig
	rules []validation.Rule
}

// Optional lets the field be left out of a submitted form. Absent values are
// not written to the assembled object and renderers accept null.
func Optional() Option {
	return func(b *builder) {
		b.cfg.Optional = true
	}
}

// WithDescription sets the field description.
func WithDescription(description string) Option {
	return func(b *builder) {
		b.cfg.Description = strings.TrimSpace(description)
	}
}

// WithHelpText sets the hint shown next to form inputs.
func WithHelpText(help string) Option {
	return func(b *builder) {
		b.cfg.HelpText = strings.TrimSpace(help)
	}
}

// WithRender replaces the default renderer.
func WithRender(render RenderFunc) Option {
	return func(b *builder) {
		if render != nil {
			b.cfg.Render = render
		}
	}
}

// WithRules adds ozzo-validation rules checked against decoded values.
// Number values are checked as int64 when integral and float64 otherwise.
func WithRules(rules ...validation.Rule) Option {
	return func(b *builder) {
		b.rules = append(b.rules, rules...)
	}
}

// Text builds a plain string field.
func Text(id, name string, readOnly bool, opts ...Option) FieldConfig {
	return build(KindText, id, name, readOnly, nil, opts)
}

// Markdown builds a string field rendered as sanitised HTML.
func Markdown(id, name string, readOnly bool, opts ...Option) FieldConfig {
	return build(KindMarkdown, id, name, readOnly, nil, opts)
}

// Boolean builds a checkbox field. Any submitted value means true and an
// absent value means false.
func Boolean(id, name string, readOnly bool, opts ...Option) FieldConfig {
	return build(KindBoolean, id, name, readOnly, nil, opts)
}

// Number builds a numeric field holding a json.Number.
func Number(id, name string, readOnly bool, opts ...Option) FieldConfig {
	return build(KindNumber, id, name, readOnly, nil, opts)
}

// Select builds a string field restricted to choices.
func Select(id, name string, readOnly bool, choices []Choice, opts ...Option) FieldConfig {
	return build(KindSelect, id, name, readOnly, choices, opts)
}

func build(kind Kind, id, name string, readOnly bool, choices []Choice, opts []Option) FieldConfig {
	b := &builder{
		cfg: FieldConfig{
			FieldID:     strings.TrimSpace(id),
			DisplayName: strings.TrimSpace(name),
			Kind:        kind,
			Choices:     append([]Choice(nil), choices...),
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if b.cfg.DisplayName == "" {
		b.cfg.DisplayName = DisplayName(b.cfg.FieldID)
	}
	if b.cfg.Render == nil {
		b.cfg.Render = defaultRenderer(kind, b.cfg.Optional, b.cfg.Choices)
	}
	if readOnly {
		return b.cfg
	}

	rules := b.rules
	if kind == KindSelect && len(b.cfg.Choices) > 0 {
		allowed := make([]any, 0, len(b.cfg.Choices))
		for _, choice := range b.cfg.Choices {
			allowed = append(allowed, choice.Value)
		}
		rules = append([]validation.Rule{validation.In(allowed...).Error("must be one of the listed options")}, rules...)
	}

	b.cfg.Create = &CreateConfig{
		Validate:      rulesValidator(rules),
		FromFormValue: decoderFor(kind, b.cfg.FieldID, b.cfg.Optional),
	}
	return b.cfg
}

func decoderFor(kind Kind, fieldID string, optional bool) DecodeFunc {
	switch kind {
	case KindBoolean:
		return func(raw *string) (any, error) {
			return raw != nil, nil
		}
	case KindNumber:
		return func(raw *string) (any, error) {
			if raw == nil {
				return absent(fieldID, optional)
			}
			number, err := ParseNumber(*raw)
			if err != nil {
				return nil, adminerrors.Internal(err, fmt.Sprintf("field %q: %q is not a number", fieldID, *raw)).
					WithTextCode(adminerrors.TextCodeFieldDecodeFailed).
					WithMetadata(map[string]any{"field": fieldID})
			}
			return number, nil
		}
	default:
		return func(raw *string) (any, error) {
			if raw == nil {
				return absent(fieldID, optional)
			}
			return *raw, nil
		}
	}
}

func absent(fieldID string, optional bool) (any, error) {
	if optional {
		return nil, ErrAbsent
	}
	return nil, adminerrors.Internalf(adminerrors.TextCodeFieldRequired, "field %q is required", fieldID).
		WithMetadata(map[string]any{"field": fieldID})
}

// ParseNumber parses raw as a JSON number in canonical form: integers keep no
// exponent or fraction, decimals use the shortest representation.
func ParseNumber(raw string) (json.Number, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("fields: empty number")
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return json.Number(strconv.FormatInt(n, 10)), nil
	}
	if n, err := strconv.ParseUint(trimmed, 10, 64); err == nil {
		return json.Number(strconv.FormatUint(n, 10)), nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return "", fmt.Errorf("fields: parse number: %w", err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("fields: number %q is not finite", trimmed)
	}
	return json.Number(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

func rulesValidator(rules []validation.Rule) ValidateFunc {
	if len(rules) == 0 {
		return func(any) ValidationResult { return Valid() }
	}
	return func(value any) ValidationResult {
		if err := validation.Validate(numericValue(value), rules...); err != nil {
			return Invalid(err.Error())
		}
		return Valid()
	}
}

func numericValue(value any) any {
	number, ok := value.(json.Number)
	if !ok {
		return value
	}
	if n, err := number.Int64(); err == nil {
		return n
	}
	if f, err := number.Float64(); err == nil {
		return f
	}
	return value
}
