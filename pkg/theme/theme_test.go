package theme_test

import (
	"errors"
	"testing"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-firform/pkg/theme"
)

func TestSelector_MergesVariantTokens(t *testing.T) {
	selector, err := theme.NewSelector(theme.Light)
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	light, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select default: %v", err)
	}
	if light.Theme != theme.Name || light.Variant != theme.Light {
		t.Fatalf("unexpected default selection: %#v", light)
	}

	dark, err := selector.Select(theme.Name, theme.Dark)
	if err != nil {
		t.Fatalf("select dark: %v", err)
	}
	lightTokens := light.Tokens()
	darkTokens := dark.Tokens()
	if lightTokens[theme.TokenText] == darkTokens[theme.TokenText] {
		t.Fatalf("dark variant should override text colour")
	}
	if darkTokens[theme.TokenHeaderFG] != lightTokens[theme.TokenHeaderFG] {
		t.Fatalf("tokens without override should inherit the base value")
	}

	if _, err := selector.Select(theme.Name, "sepia"); !errors.Is(err, theme.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	fallback, err := selector.Select("missing", "")
	if err != nil {
		t.Fatalf("select unknown theme: %v", err)
	}
	if fallback.Manifest.Name != theme.Name {
		t.Fatalf("unknown theme should fall back to %s, got %s", theme.Name, fallback.Manifest.Name)
	}
}

func TestNewSelector_CustomManifest(t *testing.T) {
	manifest := &gotheme.Manifest{
		Name:    "station",
		Version: "0.1.0",
		Tokens:  map[string]string{theme.TokenAccent: "#123456"},
		Variants: map[string]gotheme.Variant{
			theme.Light: {Tokens: map[string]string{}},
		},
	}
	selector, err := theme.NewSelector("", manifest)
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := selection.Tokens()[theme.TokenAccent]; got != "#123456" {
		t.Fatalf("accent mismatch: %s", got)
	}
}

func TestParseAndNormalize(t *testing.T) {
	if v, err := theme.Parse(" DARK "); err != nil || v != theme.Dark {
		t.Fatalf("parse dark: %q %v", v, err)
	}
	if _, err := theme.Parse("blue"); !errors.Is(err, theme.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	if theme.Normalize("whatever") != theme.Light {
		t.Fatalf("normalize should default to light")
	}
}

func TestLoad(t *testing.T) {
	styles, err := theme.Load(theme.Dark)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if styles.Variant != theme.Dark {
		t.Fatalf("variant mismatch: %s", styles.Variant)
	}
	if got := styles.Title.Render("FIR"); got == "" {
		t.Fatalf("expected rendered title")
	}
}

func TestNewSelector_RejectsInvalidManifest(t *testing.T) {
	manifest := &gotheme.Manifest{Name: "broken"}
	if _, err := theme.NewSelector("", manifest); err == nil {
		t.Fatalf("expected registry to reject a manifest without version")
	}
}
