package template_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-firform/pkg/i18n"
	"github.com/goliatone/go-firform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-firform/pkg/testsupport"
)

func templatesFS() fstest.MapFS {
	return fstest.MapFS{
		"hello.tpl":      {Data: []byte("Hello {{ name }}")},
		"use-global.tpl": {Data: []byte("env={{ settings.env }}")},
		"use-filter.tpl": {Data: []byte("{{ name|shout }}")},
		"record.tpl":     {Data: []byte("{{ suspect|na }} / {{ sections|commalist }} / [{{ pad|trim }}]")},
		"translate.tpl":  {Data: []byte(`{{ translate("session.loggedOut") }}`)},
	}
}

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Asha"}, w)
	})

	const want = "Hello Asha"
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_RenderDetectsInlineContent(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.Render("FIR {{ number }}", struct {
		Number string `json:"number"`
	}{Number: "FIR-001"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "FIR FIR-001" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})
	if result != "env=staging" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter to be rejected")
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "asha"}, w)
	})
	if result != "ASHA!" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_DefaultFilters(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("record", map[string]any{
		"suspect":  "",
		"sections": []string{"420", "302"},
		"pad":      "  x  ",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "N/A / 420, 302 / [x]"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestGoTemplateEngine_PlainTextByDefault(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderString("{{ name }} | {{ list|commalist }}", map[string]any{
		"name": "Asha D'Souza <B> & Co",
		"list": []any{"a&b", 7},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "Asha D'Souza <B> & Co | a&b, 7"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestGoTemplateEngine_WithAutoescape(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS()), gotemplate.WithAutoescape(true))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(func() { newEngine(t) })

	got, err := engine.RenderString("{{ name }}", map[string]any{"name": "<b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "&lt;b&gt;" {
		t.Fatalf("expected escaped output, got %q", got)
	}
}

func TestGoTemplateEngine_Translate(t *testing.T) {
	catalog, err := i18n.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS()),
		gotemplate.WithTranslator(catalog, "en-US"),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("translate", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Logged out successfully" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGoTemplateEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("nope", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
