package template

import "io"

// TemplateRenderer expands template source with a data context. Output is
// returned and, when writers are supplied, also written to each of them.
type TemplateRenderer interface {
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
