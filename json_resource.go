package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-admin/fields"
	"github.com/goliatone/go-admin/internal/formdecode"
	"github.com/goliatone/go-admin/internal/idparse"
	"github.com/goliatone/go-admin/internal/logging"
	"github.com/goliatone/go-admin/internal/validation"
	"github.com/goliatone/go-admin/pkg/adminerrors"
	"github.com/goliatone/go-admin/pkg/interfaces"
)

// JSONResource is the erased form of a Resource. Every operation accepts and
// returns JSON objects or strings, so a generic transport can drive any
// registered resource. A JSONResource is immutable and safe for concurrent
// use.
type JSONResource[C any] struct {
	name         string
	path         string
	idFieldID    string
	fieldConfigs []fields.FieldConfig
	schema       *validation.Schema
	logger       interfaces.Logger

	list   func(ctx context.Context, c C) ([]Object, error)
	get    func(ctx context.Context, c C, id string) (Object, error)
	create func(ctx context.Context, c C, obj Object) (Object, error)
}

// Name returns the human name of the resource.
func (r *JSONResource[C]) Name() string { return r.name }

// Path returns the URL segment identifying the resource.
func (r *JSONResource[C]) Path() string { return r.path }

// IDFieldID returns the field holding the item identifier.
func (r *JSONResource[C]) IDFieldID() string { return r.idFieldID }

// FieldConfigs returns a copy of the field configs in declared order.
func (r *JSONResource[C]) FieldConfigs() []fields.FieldConfig {
	out := make([]fields.FieldConfig, len(r.fieldConfigs))
	for i, cfg := range r.fieldConfigs {
		out[i] = cfg.Clone()
	}
	return out
}

// CreateFieldConfigs returns the writable fields in declared order.
func (r *JSONResource[C]) CreateFieldConfigs() []fields.FieldConfig {
	out := make([]fields.FieldConfig, 0, len(r.fieldConfigs))
	for _, cfg := range r.fieldConfigs {
		if cfg.ReadOnly() {
			continue
		}
		out = append(out, cfg.Clone())
	}
	return out
}

// FieldConfig looks up a single field by id.
func (r *JSONResource[C]) FieldConfig(fieldID string) (fields.FieldConfig, bool) {
	for _, cfg := range r.fieldConfigs {
		if cfg.FieldID == fieldID {
			return cfg.Clone(), true
		}
	}
	return fields.FieldConfig{}, false
}

// CreateSchema returns the JSON schema a create object must satisfy: the
// configured schema when present, otherwise one derived from the fields.
func (r *JSONResource[C]) CreateSchema() map[string]any {
	if source := r.schema.Source(); source != nil {
		return source
	}
	return validation.FieldsSchema(r.fieldConfigs)
}

// List returns every item as an object, in the order the collaborator
// returned them.
func (r *JSONResource[C]) List(ctx context.Context, c C) ([]Object, error) {
	logger := r.operationLogger(ctx, "list")
	items, err := r.list(ctx, c)
	if err != nil {
		logFailure(logger, "resource.list", err)
		return nil, err
	}
	logger.Debug("resource.list", "count", len(items))
	return items, nil
}

// Get parses id and returns the matching item. An unparsable id is an
// Internal error; a parsable id with no item is NotFound.
func (r *JSONResource[C]) Get(ctx context.Context, c C, id string) (Object, error) {
	logger := r.operationLogger(ctx, "get")
	item, err := r.get(ctx, c, id)
	if err != nil {
		logFailure(logger, "resource.get", err, "id", id)
		return nil, err
	}
	logger.Debug("resource.get", "id", id)
	return item, nil
}

// Create assembles the form into an object, decodes it into the typed input
// and hands it to the collaborator. It returns the created item.
func (r *JSONResource[C]) Create(ctx context.Context, c C, form []byte) (Object, error) {
	logger := r.operationLogger(ctx, "create")

	obj, written, err := r.Assemble(form)
	if err != nil {
		logFailure(logger, "resource.create", err)
		return nil, err
	}
	created, err := r.createObject(ctx, c, obj)
	if err != nil {
		logFailure(logger, "resource.create", err, "fields", written)
		return nil, err
	}
	logger.Debug("resource.create", "fields", written)
	return created, nil
}

// createObject runs the create path for an already assembled object: schema
// check, decode into the typed input, collaborator call.
func (r *JSONResource[C]) createObject(ctx context.Context, c C, obj Object) (Object, error) {
	if err := r.schema.Validate(obj); err != nil {
		return nil, adminerrors.Internal(err, fmt.Sprintf("%s: create object rejected by schema", r.path)).
			WithTextCode(adminerrors.TextCodeInputSchemaInvalid).
			WithMetadata(map[string]any{"resource": r.path, "issues": issueStrings(err)})
	}
	return r.create(ctx, c, obj)
}

// Assemble decodes an application/x-www-form-urlencoded body and folds it
// over the writable fields in declared order. Read-only fields and form keys
// with no field are ignored. The returned slice lists the keys written.
func (r *JSONResource[C]) Assemble(form []byte) (Object, []string, error) {
	values, err := formdecode.Parse(form)
	if err != nil {
		return nil, nil, adminerrors.Internal(err, fmt.Sprintf("%s: cannot decode form", r.path)).
			WithTextCode(adminerrors.TextCodeFormDecodeFailed).
			WithMetadata(map[string]any{"resource": r.path})
	}

	obj := Object{}
	written := make([]string, 0, len(r.fieldConfigs))
	for _, cfg := range r.fieldConfigs {
		if cfg.Create == nil {
			continue
		}

		value, err := cfg.Create.Decode(values.Lookup(cfg.FieldID))
		if errors.Is(err, fields.ErrAbsent) {
			continue
		}
		if err != nil {
			return nil, nil, r.fieldDecodeError(cfg.FieldID, err)
		}

		if result := cfg.Create.Check(value); !result.Valid {
			return nil, nil, adminerrors.Internalf(adminerrors.TextCodeFieldInvalid,
				"%s: field %q is invalid: %s", r.path, cfg.FieldID, result.Reason).
				WithMetadata(map[string]any{"resource": r.path, "field": cfg.FieldID, "reason": result.Reason})
		}

		obj[cfg.FieldID] = value
		written = append(written, cfg.FieldID)
	}
	return obj, written, nil
}

// Render renders every field of obj in declared order. A missing key is an
// Internal error unless the field is optional, in which case it renders as
// null would.
func (r *JSONResource[C]) Render(obj Object) ([]RenderedField, error) {
	out := make([]RenderedField, 0, len(r.fieldConfigs))
	for _, cfg := range r.fieldConfigs {
		text, err := r.renderField(cfg, obj)
		if err != nil {
			return nil, err
		}
		out = append(out, RenderedField{
			FieldID:     cfg.FieldID,
			DisplayName: cfg.Label(),
			Value:       text,
		})
	}
	return out, nil
}

// RenderField renders a single field of obj.
func (r *JSONResource[C]) RenderField(fieldID string, obj Object) (string, error) {
	for _, cfg := range r.fieldConfigs {
		if cfg.FieldID == fieldID {
			return r.renderField(cfg, obj)
		}
	}
	return "", adminerrors.Internalf(adminerrors.TextCodeFieldMissing,
		"%s: unknown field %q", r.path, fieldID).
		WithMetadata(map[string]any{"resource": r.path, "field": fieldID})
}

// ItemID returns the string form of the identifier field of obj.
func (r *JSONResource[C]) ItemID(obj Object) (string, error) {
	value, ok := obj[r.idFieldID]
	if !ok || value == nil {
		return "", adminerrors.Internalf(adminerrors.TextCodeFieldMissing,
			"%s: item has no %q", r.path, r.idFieldID).
			WithMetadata(map[string]any{"resource": r.path, "field": r.idFieldID})
	}
	return idparse.Format(value), nil
}

func (r *JSONResource[C]) renderField(cfg fields.FieldConfig, obj Object) (string, error) {
	value, ok := obj[cfg.FieldID]
	if !ok && !cfg.Optional {
		return "", adminerrors.Internalf(adminerrors.TextCodeFieldMissing,
			"%s: item has no %q", r.path, cfg.FieldID).
			WithMetadata(map[string]any{"resource": r.path, "field": cfg.FieldID})
	}
	text, err := cfg.RenderValue(value)
	if err == nil {
		return text, nil
	}
	if adminerrors.IsInternal(err) {
		return "", err
	}
	return "", adminerrors.Internal(err, fmt.Sprintf("%s: cannot render %q", r.path, cfg.FieldID)).
		WithTextCode(adminerrors.TextCodeFieldRenderFailed).
		WithMetadata(map[string]any{"resource": r.path, "field": cfg.FieldID})
}

func (r *JSONResource[C]) fieldDecodeError(fieldID string, err error) error {
	if adminerrors.IsInternal(err) && adminerrors.TextCode(err) != "" {
		return err
	}
	return adminerrors.Internal(err, fmt.Sprintf("%s: cannot decode field %q", r.path, fieldID)).
		WithTextCode(adminerrors.TextCodeFieldDecodeFailed).
		WithMetadata(map[string]any{"resource": r.path, "field": fieldID})
}

func (r *JSONResource[C]) operationLogger(ctx context.Context, action string) interfaces.Logger {
	return logging.WithResourceContext(logging.FromContext(ctx, r.logger), r.path, action)
}

func (r *JSONResource[C]) withLogger(logger interfaces.Logger) {
	if logger == nil {
		logger = logging.NoOp()
	}
	r.logger = logger
}

func logFailure(logger interfaces.Logger, event string, err error, args ...any) {
	args = append(args, "error", err, "kind", adminerrors.Kind(err), "text_code", adminerrors.TextCode(err))
	if adminerrors.IsNotFound(err) {
		logger.Debug(event, args...)
		return
	}
	logger.Error(event, args...)
}

func issueStrings(err error) []string {
	issues := validation.Issues(err)
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, fmt.Sprintf("%s: %s", issue.Location, issue.Message))
	}
	return out
}
