package theming

import (
	"errors"
	"testing"

	gotheme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"
)

func TestResolveDefaults(t *testing.T) {
	theme, err := Resolve(Config{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if theme.Name != DefaultName {
		t.Fatalf("expected %s, got %s", DefaultName, theme.Name)
	}
	if theme.Primary() != "#3b82f6" || theme.Secondary() != "#6b7280" || theme.Background() != "#f3f4f6" {
		t.Fatalf("unexpected default tokens %v", theme.Tokens)
	}
}

func TestResolveVariantAndOverrides(t *testing.T) {
	theme, err := Resolve(Config{
		Variant: VariantDark,
		Tokens:  map[string]string{TokenPrimary: "#ff0000", "accent": " "},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := map[string]string{
		TokenPrimary:    "#ff0000",
		TokenSecondary:  "#6b7280",
		TokenBackground: "#111827",
		TokenText:       "#f9fafb",
	}
	if diff := cmp.Diff(want, theme.Tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{TokenBackground, TokenPrimary, TokenSecondary, TokenText}, theme.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveCustomManifest(t *testing.T) {
	custom := &gotheme.Manifest{
		Name:    "acme",
		Version: "2.0.0",
		Tokens:  map[string]string{TokenPrimary: "#123456"},
	}
	theme, err := Resolve(Config{Name: "acme"}, custom)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if theme.Primary() != "#123456" {
		t.Fatalf("expected custom primary, got %q", theme.Primary())
	}
}

func TestResolveUnknown(t *testing.T) {
	if _, err := Resolve(Config{Name: "missing"}); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
	if _, err := Resolve(Config{Variant: "neon"}); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}
