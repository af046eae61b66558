package i18n_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-firform/pkg/i18n"
)

func TestDefaultCatalog_Translate(t *testing.T) {
	cat, err := i18n.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	cases := []struct {
		locale string
		key    string
		args   []any
		want   string
	}{
		{"en-US", "form.invalid", nil, "Please fix the errors in the form"},
		{"", "fir.updated", nil, "FIR updated successfully"},
		{"en-US", "theme.changed", []any{"dark"}, "Theme set to dark"},
		{"hi-IN", "login.success", nil, "सफलतापूर्वक लॉग इन किया गया"},
		{"hi-IN", "report.pdfEmpty", nil, "No data available to export to PDF"},
		{"fr-FR", "session.loggedOut", nil, "Logged out successfully"},
	}
	for _, tc := range cases {
		got, err := cat.Translate(tc.locale, tc.key, tc.args...)
		if err != nil {
			t.Fatalf("translate %s/%s: %v", tc.locale, tc.key, err)
		}
		if got != tc.want {
			t.Fatalf("translate %s/%s: want %q got %q", tc.locale, tc.key, tc.want, got)
		}
	}

	if _, err := cat.Translate("en-US", "does.not.exist"); !errors.Is(err, i18n.ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
}

func TestResolve_Fallbacks(t *testing.T) {
	if got := i18n.Resolve(nil, "en-US", "login.success", nil); got != "login.success" {
		t.Fatalf("nil translator should return key, got %q", got)
	}

	custom := func(_ string, key string, _ []any, err error) string {
		if !errors.Is(err, i18n.ErrMissingTranslator) {
			t.Fatalf("expected ErrMissingTranslator, got %v", err)
		}
		return "[" + key + "]"
	}
	if got := i18n.Resolve(nil, "en-US", "x", custom); got != "[x]" {
		t.Fatalf("custom handler not used, got %q", got)
	}

	cat, err := i18n.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	translate := i18n.Func(cat, "en-US")
	if got := translate("views.report.page", 2, 5); got != "Page 2 of 5" {
		t.Fatalf("template func mismatch: %q", got)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"no files": {},
		"locale mismatch": {
			"locales/en-US/a.yaml": {Data: []byte("locale: hi-IN\nnamespace: a\nmessages:\n  k: v\n")},
		},
		"missing base": {
			"locales/hi-IN/a.yaml": {Data: []byte("locale: hi-IN\nnamespace: a\nmessages:\n  k: v\n")},
		},
		"duplicate key": {
			"locales/en-US/a.yaml": {Data: []byte("locale: en-US\nnamespace: a\nmessages:\n  k: v\n")},
			"locales/en-US/b.yaml": {Data: []byte("locale: en-US\nnamespace: b\nmessages:\n  k: w\n")},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := i18n.LoadFS(fsys); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
