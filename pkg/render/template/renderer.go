package template

import "io"

// TemplateRenderer renders named templates, or inline template text, with
// data. Output is returned and also copied into every writer in out.
type TemplateRenderer interface {
	Render(nameOrContent string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(content string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
