package admin

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-admin/fields"
	"github.com/goliatone/go-admin/internal/idparse"
	"github.com/goliatone/go-admin/internal/jsonutil"
	"github.com/goliatone/go-admin/internal/logging"
	adminvalidation "github.com/goliatone/go-admin/internal/validation"
	"github.com/goliatone/go-admin/pkg/adminerrors"
)

// Resource is a strongly typed CRUD resource. C is the application context
// shared by every resource of an Admin, ID the identifier type, Item the
// stored item and Input the creation payload.
//
// Item must encode to a JSON object whose keys match the FieldIDs of
// FieldConfigs. Input is decoded from the object assembled from the form.
type Resource[C, ID, Item, Input any] struct {
	Name      string
	Path      string
	IDFieldID string

	List   func(ctx context.Context, c C) ([]Item, error)
	Get    func(ctx context.Context, c C, id ID) (Item, error)
	Create func(ctx context.Context, c C, input Input) (Item, error)

	FieldConfigs []fields.FieldConfig

	// ParseID overrides the default identifier parser.
	ParseID func(raw string) (ID, error)
	// Schema is an optional JSON schema checked against the assembled create
	// object before it is decoded into Input.
	Schema map[string]any
}

// Erasable is implemented by every Resource instantiation sharing the
// context type C.
type Erasable[C any] interface {
	Erase() (*JSONResource[C], error)
}

var _ Erasable[struct{}] = Resource[struct{}, int, struct{}, struct{}]{}

// ResolvedPath returns Path, or the slug of Name when Path is empty.
func (r Resource[C, ID, Item, Input]) ResolvedPath() (string, error) {
	if path := strings.TrimSpace(r.Path); path != "" {
		if !slug.IsValid(path) {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
		return path, nil
	}
	path, err := slug.Normalize(r.Name)
	if err != nil || path == "" {
		return "", fmt.Errorf("%w: cannot derive path from name %q", ErrInvalidPath, r.Name)
	}
	return path, nil
}

func (r Resource[C, ID, Item, Input]) validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.IDFieldID, validation.Required),
		validation.Field(&r.FieldConfigs, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResource, err)
	}

	switch {
	case r.List == nil:
		return fmt.Errorf("%w: list", ErrMissingOperation)
	case r.Get == nil:
		return fmt.Errorf("%w: get", ErrMissingOperation)
	case r.Create == nil:
		return fmt.Errorf("%w: create", ErrMissingOperation)
	}

	seen := make(map[string]struct{}, len(r.FieldConfigs))
	for i, cfg := range r.FieldConfigs {
		id := strings.TrimSpace(cfg.FieldID)
		if id == "" {
			return fmt.Errorf("%w: field #%d", ErrEmptyFieldID, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateFieldID, id)
		}
		seen[id] = struct{}{}
	}
	if _, ok := seen[strings.TrimSpace(r.IDFieldID)]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownIDField, r.IDFieldID)
	}
	return nil
}

// Erase validates the definition and converts it into a JSONResource whose
// operations work on JSON objects and strings only.
func (r Resource[C, ID, Item, Input]) Erase() (*JSONResource[C], error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	path, err := r.ResolvedPath()
	if err != nil {
		return nil, err
	}

	parseID := r.ParseID
	if parseID == nil {
		fallback, ok := idparse.For[ID]()
		if !ok {
			var zero ID
			return nil, fmt.Errorf("%w: %T", ErrMissingIDParser, zero)
		}
		parseID = fallback
	}

	schema, err := adminvalidation.Compile(r.Schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	configs := make([]fields.FieldConfig, len(r.FieldConfigs))
	for i, cfg := range r.FieldConfigs {
		configs[i] = cfg.Clone()
		configs[i].FieldID = strings.TrimSpace(cfg.FieldID)
	}

	list, get, create := r.List, r.Get, r.Create

	return &JSONResource[C]{
		name:         strings.TrimSpace(r.Name),
		path:         path,
		idFieldID:    strings.TrimSpace(r.IDFieldID),
		fieldConfigs: configs,
		schema:       schema,
		logger:       logging.NoOp(),
		list: func(ctx context.Context, c C) ([]Object, error) {
			items, err := list(ctx, c)
			if err != nil {
				return nil, adminerrors.FromCollaborator(err, path, "list")
			}
			out := make([]Object, 0, len(items))
			for _, item := range items {
				obj, err := encodeItem(path, item)
				if err != nil {
					return nil, err
				}
				out = append(out, obj)
			}
			return out, nil
		},
		get: func(ctx context.Context, c C, raw string) (Object, error) {
			id, err := parseID(raw)
			if err != nil {
				return nil, adminerrors.Internal(err, fmt.Sprintf("%s: cannot parse id %q", path, raw)).
					WithTextCode(adminerrors.TextCodeIDParseFailed).
					WithMetadata(map[string]any{"resource": path, "id": raw})
			}
			item, err := get(ctx, c, id)
			if err != nil {
				return nil, adminerrors.FromCollaborator(err, path, "get")
			}
			return encodeItem(path, item)
		},
		create: func(ctx context.Context, c C, obj Object) (Object, error) {
			var input Input
			if err := jsonutil.Convert(obj, &input); err != nil {
				return nil, adminerrors.Internal(err, fmt.Sprintf("%s: cannot decode create input", path)).
					WithTextCode(adminerrors.TextCodeInputDecodeFailed).
					WithMetadata(map[string]any{"resource": path})
			}
			item, err := create(ctx, c, input)
			if err != nil {
				return nil, adminerrors.FromCollaborator(err, path, "create")
			}
			return encodeItem(path, item)
		},
	}, nil
}

// MustErase is Erase that panics on error.
func (r Resource[C, ID, Item, Input]) MustErase() *JSONResource[C] {
	jr, err := r.Erase()
	if err != nil {
		panic(err)
	}
	return jr
}

func encodeItem(path string, item any) (Object, error) {
	obj, ok, err := jsonutil.ToObject(item)
	if err != nil {
		return nil, adminerrors.Internal(err, fmt.Sprintf("%s: cannot encode item", path)).
			WithTextCode(adminerrors.TextCodeItemEncodeFailed).
			WithMetadata(map[string]any{"resource": path})
	}
	if !ok {
		return nil, adminerrors.Internalf(adminerrors.TextCodeItemNotObject,
			"%s: item %T does not encode to a JSON object", path, item).
			WithMetadata(map[string]any{"resource": path})
	}
	return obj, nil
}
