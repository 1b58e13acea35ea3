package admin_test

import (
	"context"
	"errors"
	"testing"

	admin "github.com/goliatone/go-admin"
	"github.com/goliatone/go-admin/fields"
)

func TestEraseRejectsInvalidDefinitions(t *testing.T) {
	p := newPeople()

	cases := []struct {
		name   string
		mutate func(r *admin.Resource[appContext, uint32, person, newPerson])
		want   error
	}{
		{
			name:   "missing name",
			mutate: func(r *admin.Resource[appContext, uint32, person, newPerson]) { r.Name = "" },
			want:   admin.ErrInvalidResource,
		},
		{
			name:   "missing list",
			mutate: func(r *admin.Resource[appContext, uint32, person, newPerson]) { r.List = nil },
			want:   admin.ErrMissingOperation,
		},
		{
			name:   "missing create",
			mutate: func(r *admin.Resource[appContext, uint32, person, newPerson]) { r.Create = nil },
			want:   admin.ErrMissingOperation,
		},
		{
			name: "empty field id",
			mutate: func(r *admin.Resource[appContext, uint32, person, newPerson]) {
				r.FieldConfigs = append(r.FieldConfigs, fields.Text(" ", "Blank", false))
			},
			want: admin.ErrEmptyFieldID,
		},
		{
			name: "duplicate field id",
			mutate: func(r *admin.Resource[appContext, uint32, person, newPerson]) {
				r.FieldConfigs = append(r.FieldConfigs, fields.Text("name", "Again", false))
			},
			want: admin.ErrDuplicateFieldID,
		},
		{
			name:   "unknown id field",
			mutate: func(r *admin.Resource[appContext, uint32, person, newPerson]) { r.IDFieldID = "uuid" },
			want:   admin.ErrUnknownIDField,
		},
		{
			name:   "invalid path",
			mutate: func(r *admin.Resource[appContext, uint32, person, newPerson]) { r.Path = "Not A Slug" },
			want:   admin.ErrInvalidPath,
		},
		{
			name: "invalid schema",
			mutate: func(r *admin.Resource[appContext, uint32, person, newPerson]) {
				r.Schema = map[string]any{"type": 12}
			},
			want: admin.ErrInvalidSchema,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := peopleResource(p)
			tc.mutate(&r)
			if _, err := r.Erase(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestEraseRequiresParserForUnknownIDTypes(t *testing.T) {
	type compositeID struct{ A, B int }

	r := admin.Resource[appContext, compositeID, person, newPerson]{
		Name:      "Composite",
		IDFieldID: "id",
		List:      func(context.Context, appContext) ([]person, error) { return nil, nil },
		Get: func(context.Context, appContext, compositeID) (person, error) {
			return person{}, nil
		},
		Create:       func(context.Context, appContext, newPerson) (person, error) { return person{}, nil },
		FieldConfigs: personFields(),
	}
	if _, err := r.Erase(); !errors.Is(err, admin.ErrMissingIDParser) {
		t.Fatalf("expected ErrMissingIDParser, got %v", err)
	}

	r.ParseID = func(string) (compositeID, error) { return compositeID{A: 1, B: 2}, nil }
	if _, err := r.Erase(); err != nil {
		t.Fatalf("expected custom parser to satisfy erase, got %v", err)
	}
}

func TestResolvedPathDerivesSlugFromName(t *testing.T) {
	r := peopleResource(newPeople())
	r.Name = "Team Members"

	path, err := r.ResolvedPath()
	if err != nil {
		t.Fatalf("resolved path: %v", err)
	}
	if path != "team-members" {
		t.Fatalf("expected team-members, got %q", path)
	}

	r.Path = "staff"
	if path, _ := r.ResolvedPath(); path != "staff" {
		t.Fatalf("expected explicit path, got %q", path)
	}
}

func TestEraseCopiesFieldConfigs(t *testing.T) {
	r := peopleResource(newPeople())
	jr := r.MustErase()

	r.FieldConfigs[1].DisplayName = "Changed"
	cfg, ok := jr.FieldConfig("name")
	if !ok {
		t.Fatalf("expected name field")
	}
	if cfg.DisplayName != "Name" {
		t.Fatalf("expected erased configs to be isolated, got %q", cfg.DisplayName)
	}

	configs := jr.FieldConfigs()
	configs[0].FieldID = "mutated"
	if jr.FieldConfigs()[0].FieldID != "id" {
		t.Fatalf("expected FieldConfigs to return a copy")
	}
}

func TestMustErasePanicsOnInvalidDefinition(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	r := peopleResource(newPeople())
	r.Get = nil
	r.MustErase()
}
