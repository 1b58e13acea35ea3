package adminerrors_test

import (
	"errors"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-admin/pkg/adminerrors"
)

func TestNotFoundCarriesCategoryAndTextCode(t *testing.T) {
	err := adminerrors.NotFound("posts", "42")

	if !adminerrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if adminerrors.IsInternal(err) {
		t.Fatalf("expected not found error to not be internal")
	}
	if got := adminerrors.TextCode(err); got != adminerrors.TextCodeItemNotFound {
		t.Fatalf("expected %s, got %s", adminerrors.TextCodeItemNotFound, got)
	}
	if got := adminerrors.StatusCode(err); got != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", got)
	}
	meta := adminerrors.Metadata(err)
	if meta["resource"] != "posts" || meta["key"] != "42" {
		t.Fatalf("unexpected metadata %v", meta)
	}
}

func TestNotFoundWithoutKeyTargetsResource(t *testing.T) {
	err := adminerrors.NotFound("ghosts", "")
	if got := adminerrors.TextCode(err); got != adminerrors.TextCodeResourceNotFound {
		t.Fatalf("expected %s, got %s", adminerrors.TextCodeResourceNotFound, got)
	}
}

func TestInternalKeepsSourceAndForcesCategory(t *testing.T) {
	source := goerrors.New("bad input", goerrors.CategoryValidation)
	err := adminerrors.Internal(source, "create failed")

	if !adminerrors.IsInternal(err) {
		t.Fatalf("expected internal category, got %s", err.Category)
	}
	if !errors.Is(err, source) {
		t.Fatal("expected source to be reachable with errors.Is")
	}
	if got := adminerrors.StatusCode(err); got != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", got)
	}
}

func TestFromCollaboratorClassification(t *testing.T) {
	if adminerrors.FromCollaborator(nil, "posts", "list") != nil {
		t.Fatal("expected nil passthrough")
	}

	missing := adminerrors.NotFound("posts", "7")
	if got := adminerrors.FromCollaborator(missing, "posts", "get"); got != missing {
		t.Fatalf("expected not found to pass through, got %v", got)
	}

	plain := errors.New("database unavailable")
	wrapped := adminerrors.FromCollaborator(plain, "posts", "list")
	if adminerrors.Kind(wrapped) != adminerrors.KindInternal {
		t.Fatalf("expected internal kind, got %s", adminerrors.Kind(wrapped))
	}
	if adminerrors.TextCode(wrapped) != adminerrors.TextCodeCollaboratorFailed {
		t.Fatalf("expected collaborator text code, got %s", adminerrors.TextCode(wrapped))
	}
	if !errors.Is(wrapped, plain) {
		t.Fatal("expected original error as source")
	}

	validation := goerrors.New("name is required", goerrors.CategoryValidation)
	if adminerrors.Kind(adminerrors.FromCollaborator(validation, "posts", "create")) != adminerrors.KindInternal {
		t.Fatal("expected validation failures to surface as internal")
	}
}

func TestKindOfForeignErrorIsInternal(t *testing.T) {
	if adminerrors.Kind(errors.New("boom")) != adminerrors.KindInternal {
		t.Fatal("expected plain errors to classify as internal")
	}
	if adminerrors.TextCode(errors.New("boom")) != "" {
		t.Fatal("expected empty text code for plain errors")
	}
}

func TestInternalfFormatsMessage(t *testing.T) {
	err := adminerrors.Internalf(adminerrors.TextCodeFieldMissing, "field %q missing", "name")
	if err.Message != `field "name" missing` {
		t.Fatalf("unexpected message %q", err.Message)
	}
	if err.TextCode != adminerrors.TextCodeFieldMissing {
		t.Fatalf("unexpected text code %q", err.TextCode)
	}
}
