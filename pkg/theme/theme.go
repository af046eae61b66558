// Package theme resolves the light and dark terminal themes through go-theme
// manifests and turns their tokens into lipgloss styles.
package theme

import (
	"errors"
	"fmt"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

const (
	// Name is the manifest name of the built-in theme.
	Name = "firform"

	Light = "light"
	Dark  = "dark"
)

// ErrUnknownVariant is returned for variants other than light and dark.
var ErrUnknownVariant = errors.New("theme: unknown variant")

// Token keys understood by NewStyles.
const (
	TokenText      = "text"
	TokenMuted     = "muted"
	TokenAccent    = "accent"
	TokenError     = "error"
	TokenSuccess   = "success"
	TokenInfo      = "info"
	TokenHeaderFG  = "header.fg"
	TokenHeaderBG  = "header.bg"
	TokenRowAltBG  = "row.alt.bg"
	TokenBorder    = "border"
	TokenValid     = "valid"
	TokenHighlight = "highlight"
)

// Manifest returns the built-in manifest. Base tokens describe the light
// variant; the dark variant overrides them.
func Manifest() *gotheme.Manifest {
	return &gotheme.Manifest{
		Name:    Name,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenText:      "#1f2937",
			TokenMuted:     "#6b7280",
			TokenAccent:    "#2563eb",
			TokenError:     "#dc2626",
			TokenSuccess:   "#16a34a",
			TokenInfo:      "#0891b2",
			TokenHeaderFG:  "#ffffff",
			TokenHeaderBG:  "#2980b9",
			TokenRowAltBG:  "#f0f0f0",
			TokenBorder:    "#d1d5db",
			TokenValid:     "#16a34a",
			TokenHighlight: "#1d4ed8",
		},
		Templates: map[string]string{
			"views.fir":       "fir_detail.tpl",
			"views.dashboard": "dashboard.tpl",
			"views.profile":   "profile.tpl",
		},
		Variants: map[string]gotheme.Variant{
			Light: {Tokens: map[string]string{}},
			Dark: {
				Tokens: map[string]string{
					TokenText:      "#f3f4f6",
					TokenMuted:     "#9ca3af",
					TokenAccent:    "#60a5fa",
					TokenError:     "#f87171",
					TokenSuccess:   "#4ade80",
					TokenInfo:      "#22d3ee",
					TokenHeaderBG:  "#1e3a8a",
					TokenRowAltBG:  "#374151",
					TokenBorder:    "#4b5563",
					TokenValid:     "#4ade80",
					TokenHighlight: "#93c5fd",
				},
			},
		},
	}
}

// Selector is go-theme's selector over a memory registry. It also rejects
// variants the selected manifest does not declare.
type Selector struct {
	gotheme.Selector
}

var _ gotheme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests (the built-in one when none are given) with
// a go-theme registry. The first manifest is the default theme.
func NewSelector(defaultVariant string, manifests ...*gotheme.Manifest) (*Selector, error) {
	if len(manifests) == 0 {
		manifests = []*gotheme.Manifest{Manifest()}
	}
	registry := gotheme.NewRegistry()
	for _, manifest := range manifests {
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("theme: register %s: %w", manifest.Name, err)
		}
	}
	return &Selector{Selector: gotheme.Selector{
		Registry:       registry,
		DefaultTheme:   manifests[0].Name,
		DefaultVariant: Normalize(defaultVariant),
	}}, nil
}

// Select resolves a manifest and variant. Empty arguments use the defaults and
// unknown theme names fall back to the default theme.
func (s *Selector) Select(name, variant string, opts ...gotheme.QueryOption) (*gotheme.Selection, error) {
	selection, err := s.Selector.Select(name, variant, opts...)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	if _, ok := selection.Manifest.Variants[selection.Variant]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, selection.Variant)
	}
	return selection, nil
}

// Normalize maps user input onto a known variant, defaulting to light.
func Normalize(variant string) string {
	switch strings.ToLower(strings.TrimSpace(variant)) {
	case Dark:
		return Dark
	default:
		return Light
	}
}

// Parse validates a user supplied variant.
func Parse(variant string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(variant)); v {
	case Light, Dark:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
}
