// Package template defines the template rendering contract used by the
// terminal views (FIR detail, dashboard, profile) and its pongo2 adapter.
package template
