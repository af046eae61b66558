// Package views renders the read-only terminal screens (FIR detail,
// dashboard, profile) from embedded pongo2 templates.
package views

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/goliatone/go-firform/internal/backend"
	"github.com/goliatone/go-firform/pkg/fir"
	"github.com/goliatone/go-firform/pkg/i18n"
	"github.com/goliatone/go-firform/pkg/render/template"
	"github.com/goliatone/go-firform/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var embedded embed.FS

const (
	tplFIR       = "fir_detail"
	tplDashboard = "dashboard"
	tplProfile   = "profile"
)

// StationCount is the number of FIRs filed at one police station.
type StationCount struct {
	Station string `json:"station"`
	Count   int    `json:"count"`
}

// Dashboard is the data behind the dashboard screen.
type Dashboard struct {
	User     backend.User
	Total    int
	Stations []StationCount
	Actions  []string
}

// Views renders screens through a template renderer.
type Views struct {
	renderer template.TemplateRenderer
	loc      *time.Location
}

// New loads the embedded templates. Timestamps render in loc, or UTC when nil.
func New(t i18n.Translator, locale string, loc *time.Location) (*Views, error) {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, fmt.Errorf("views: templates: %w", err)
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(sub),
		gotemplate.WithTranslator(t, locale),
	)
	if err != nil {
		return nil, fmt.Errorf("views: %w", err)
	}
	return NewWithRenderer(engine, loc), nil
}

// NewWithRenderer wraps an existing renderer.
func NewWithRenderer(r template.TemplateRenderer, loc *time.Location) *Views {
	if loc == nil {
		loc = time.UTC
	}
	return &Views{renderer: r, loc: loc}
}

// FIR renders every column of one record.
func (v *Views) FIR(r fir.Record, out ...io.Writer) (string, error) {
	row := r.Row(v.loc)
	fields := make([]map[string]any, 0, len(fir.Columns)+1)
	if r.ID != "" {
		fields = append(fields, map[string]any{"label": "ID", "value": string(r.ID)})
	}
	for i, col := range fir.Columns {
		var value any = row[i]
		if col.Key == "ipcSections" {
			value = r.IPCSections
		}
		fields = append(fields, map[string]any{"label": col.Header, "value": value})
	}
	return v.render(tplFIR, map[string]any{"fields": fields}, out...)
}

// Dashboard renders the dashboard.
func (v *Views) Dashboard(d Dashboard, out ...io.Writer) (string, error) {
	return v.render(tplDashboard, map[string]any{
		"user":     userData(d.User),
		"total":    d.Total,
		"stations": d.Stations,
		"actions":  d.Actions,
	}, out...)
}

// Profile renders the account details.
func (v *Views) Profile(u backend.User, out ...io.Writer) (string, error) {
	return v.render(tplProfile, map[string]any{"user": userData(u)}, out...)
}

func (v *Views) render(name string, data map[string]any, out ...io.Writer) (string, error) {
	s, err := v.renderer.RenderTemplate(name, data, out...)
	if err != nil {
		return "", fmt.Errorf("views: render %s: %w", name, err)
	}
	return s, nil
}

func userData(u backend.User) map[string]any {
	return map[string]any{
		"name":         u.FullName(),
		"email":        u.Email,
		"mobileNumber": u.MobileNumber,
		"photo":        u.Photo,
	}
}
