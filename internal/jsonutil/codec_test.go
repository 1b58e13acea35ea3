package jsonutil

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type sample struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	IsAdult bool   `json:"is_adult"`
}

func TestToObjectKeepsNumbersAsJSONNumber(t *testing.T) {
	obj, ok, err := ToObject(sample{ID: 9007199254740993, Name: "Susan", IsAdult: true})
	if err != nil {
		t.Fatalf("ToObject: %v", err)
	}
	if !ok {
		t.Fatal("expected struct to encode as object")
	}

	want := map[string]any{
		"id":       json.Number("9007199254740993"),
		"name":     "Susan",
		"is_adult": true,
	}
	if diff := cmp.Diff(want, obj); diff != "" {
		t.Fatalf("object mismatch (-want +got):\n%s", diff)
	}
}

func TestToObjectRejectsNonObjects(t *testing.T) {
	for _, value := range []any{nil, "text", 12, []int{1, 2}} {
		_, ok, err := ToObject(value)
		if err != nil {
			t.Fatalf("ToObject(%v): unexpected error %v", value, err)
		}
		if ok {
			t.Fatalf("ToObject(%v): expected non-object", value)
		}
	}
}

type failingMarshaler struct{}

func (failingMarshaler) MarshalJSON() ([]byte, error) {
	return nil, errors.New("cannot encode")
}

func TestToObjectSurfacesEncodeErrors(t *testing.T) {
	if _, _, err := ToObject(failingMarshaler{}); err == nil {
		t.Fatal("expected encode error")
	}
}

func TestConvertDecodesIntoStruct(t *testing.T) {
	var got sample
	err := Convert(map[string]any{
		"id":       json.Number("7"),
		"name":     "Ana",
		"is_adult": false,
		"extra":    "ignored",
	}, &got)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if diff := cmp.Diff(sample{ID: 7, Name: "Ana"}, got); diff != "" {
		t.Fatalf("struct mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertReportsTypeMismatch(t *testing.T) {
	var got sample
	if err := Convert(map[string]any{"name": true}, &got); err == nil {
		t.Fatal("expected type mismatch error")
	}
}

func TestNumber(t *testing.T) {
	cases := []struct {
		in   any
		want json.Number
		ok   bool
	}{
		{in: 42, want: "42", ok: true},
		{in: uint8(7), want: "7", ok: true},
		{in: 2.5, want: "2.5", ok: true},
		{in: json.Number("10"), want: "10", ok: true},
		{in: "10", ok: false},
	}
	for _, tc := range cases {
		got, ok := Number(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Number(%v): expected (%q,%v), got (%q,%v)", tc.in, tc.want, tc.ok, got, ok)
		}
	}
}
