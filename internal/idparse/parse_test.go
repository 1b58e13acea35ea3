package idparse

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type postID int64

func TestForIntegers(t *testing.T) {
	parse, ok := For[int]()
	if !ok {
		t.Fatal("expected int parser")
	}
	id, err := parse(" 42 ")
	if err != nil || id != 42 {
		t.Fatalf("expected 42, got %d (%v)", id, err)
	}
	if _, err := parse("abc"); err == nil {
		t.Fatal("expected error for non numeric id")
	}
}

func TestForNamedIntegerAndOverflow(t *testing.T) {
	parse, ok := For[postID]()
	if !ok {
		t.Fatal("expected parser for named int type")
	}
	id, err := parse("7")
	if err != nil || id != postID(7) {
		t.Fatalf("expected 7, got %d (%v)", id, err)
	}

	small, _ := For[uint8]()
	if _, err := small("256"); err == nil {
		t.Fatal("expected overflow error for uint8")
	}
	if _, err := small("-1"); err == nil {
		t.Fatal("expected error for negative unsigned id")
	}
}

func TestForString(t *testing.T) {
	parse, ok := For[string]()
	if !ok {
		t.Fatal("expected string parser")
	}
	id, err := parse("susan")
	if err != nil || id != "susan" {
		t.Fatalf("expected susan, got %q (%v)", id, err)
	}
	if _, err := parse("  "); !errors.Is(err, ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
}

func TestForUUIDAndULID(t *testing.T) {
	parseUUID, ok := For[uuid.UUID]()
	if !ok {
		t.Fatal("expected uuid parser")
	}
	want := uuid.MustParse("8f14e45f-ceea-467f-a8e7-7e9a1d2b3c4d")
	got, err := parseUUID(want.String())
	if err != nil || got != want {
		t.Fatalf("expected %s, got %s (%v)", want, got, err)
	}
	if _, err := parseUUID("not-a-uuid"); err == nil {
		t.Fatal("expected uuid parse error")
	}

	parseULID, ok := For[ulid.ULID]()
	if !ok {
		t.Fatal("expected ulid parser")
	}
	wantULID := ulid.MustParse("01ARZ3NDEKTSV4RRFFQ69G5FAV")
	gotULID, err := parseULID("01ARZ3NDEKTSV4RRFFQ69G5FAV")
	if err != nil || gotULID != wantULID {
		t.Fatalf("expected %s, got %s (%v)", wantULID, gotULID, err)
	}
}

func TestForUnsupportedType(t *testing.T) {
	if _, ok := For[struct{ A int }](); ok {
		t.Fatal("expected no default parser for struct identifiers")
	}
	if _, ok := For[float64](); ok {
		t.Fatal("expected no default parser for float identifiers")
	}
}

func TestFormat(t *testing.T) {
	id := uuid.MustParse("8f14e45f-ceea-467f-a8e7-7e9a1d2b3c4d")
	if got := Format(id); got != id.String() {
		t.Fatalf("expected %s, got %s", id, got)
	}
	if got := Format(12); got != "12" {
		t.Fatalf("expected 12, got %s", got)
	}
	if got := Format(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
