// Package theming resolves the admin theme tokens through go-theme.
package theming

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

const (
	DefaultName    = "admin"
	DefaultVersion = "1.0.0"
	VariantDark    = "dark"

	TokenPrimary    = "primary"
	TokenSecondary  = "secondary"
	TokenBackground = "background"
	TokenText       = "text"
)

var (
	ErrUnknownTheme   = errors.New("theming: unknown theme")
	ErrUnknownVariant = errors.New("theming: unknown theme variant")
)

// Config selects a theme and overrides individual tokens.
type Config struct {
	Name    string
	Variant string
	Tokens  map[string]string
}

// Theme is the resolved set of tokens handed to templates.
type Theme struct {
	Name    string            `json:"name"`
	Variant string            `json:"variant,omitempty"`
	Tokens  map[string]string `json:"tokens"`
}

// Token returns the value of key, or "" when unset.
func (t Theme) Token(key string) string {
	return t.Tokens[key]
}

// Primary returns the primary colour.
func (t Theme) Primary() string { return t.Token(TokenPrimary) }

// Secondary returns the secondary colour.
func (t Theme) Secondary() string { return t.Token(TokenSecondary) }

// Background returns the page background colour.
func (t Theme) Background() string { return t.Token(TokenBackground) }

// Keys returns the token names in sorted order.
func (t Theme) Keys() []string {
	keys := make([]string, 0, len(t.Tokens))
	for key := range t.Tokens {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// DefaultManifest describes the built in admin theme.
func DefaultManifest() *gotheme.Manifest {
	return &gotheme.Manifest{
		Name:    DefaultName,
		Version: DefaultVersion,
		Tokens: map[string]string{
			TokenPrimary:    "#3b82f6",
			TokenSecondary:  "#6b7280",
			TokenBackground: "#f3f4f6",
			TokenText:       "#111827",
		},
		Variants: map[string]gotheme.Variant{
			VariantDark: {
				Tokens: map[string]string{
					TokenBackground: "#111827",
					TokenText:       "#f9fafb",
				},
			},
		},
	}
}

// Resolve selects cfg.Name (default "admin") among the built in manifest and
// extra, applies the variant tokens and then the cfg.Tokens overrides.
func Resolve(cfg Config, extra ...*gotheme.Manifest) (Theme, error) {
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = DefaultName
	}
	variant := strings.TrimSpace(cfg.Variant)

	manifests := map[string]*gotheme.Manifest{DefaultName: DefaultManifest()}
	for _, manifest := range extra {
		if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
			continue
		}
		manifests[strings.TrimSpace(manifest.Name)] = manifest
	}

	manifest, ok := manifests[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return Theme{}, fmt.Errorf("%w: %s/%s", ErrUnknownVariant, name, variant)
		}
	}

	registry := gotheme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return Theme{}, fmt.Errorf("theming: register %s: %w", name, err)
	}
	selector := gotheme.Selector{
		Registry:       registry,
		DefaultTheme:   DefaultName,
		DefaultVariant: variant,
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return Theme{}, fmt.Errorf("theming: select %s: %w", name, err)
	}

	selected := manifest
	if selection != nil && selection.Manifest != nil {
		selected = selection.Manifest
	}

	tokens := map[string]string{}
	maps.Copy(tokens, selected.Tokens)
	if variant != "" {
		maps.Copy(tokens, selected.Variants[variant].Tokens)
	}
	for key, value := range cfg.Tokens {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			tokens[strings.TrimSpace(key)] = trimmed
		}
	}

	return Theme{Name: name, Variant: variant, Tokens: tokens}, nil
}
