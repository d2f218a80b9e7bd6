package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-fieldsync/pkg/page"
	"github.com/goliatone/go-fieldsync/pkg/render"
	rendertemplate "github.com/goliatone/go-fieldsync/pkg/render/template"
	gotemplate "github.com/goliatone/go-fieldsync/pkg/render/template/gotemplate"
	"github.com/goliatone/go-fieldsync/pkg/renderers/vanilla/components"
)

type Option func(*config)

type config struct {
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	rowTemplate      string
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default widget renderers. The renderer
// keeps a copy, so later changes to registry do not affect it.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry.Clone()
		}
	}
}

// WithRowTemplate sets the pongo2 source used for extra-field rows in place
// of the page's own row template. The source must emit the row's ids, names
// and options itself, as DefaultRowTemplate does.
func WithRowTemplate(source string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(source) != "" {
			cfg.rowTemplate = source
		}
	}
}

// Renderer projects a page into HTML markup.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	registry    *components.Registry
	rowTemplate string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithName("vanilla"))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	registry := cfg.registry
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}

	return &Renderer{templates: renderer, registry: registry, rowTemplate: cfg.rowTemplate}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the page markup. It reads the page under its event lock, so
// it must not be called from inside a page event handler.
func (r *Renderer) Render(_ context.Context, p *page.Page, options render.RenderOptions) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("vanilla renderer: page is nil")
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	var (
		buf bytes.Buffer
		err error
	)
	p.Do(func() {
		err = r.render(&buf, p, options)
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) render(buf *bytes.Buffer, p *page.Page, options render.RenderOptions) error {
	widgets := p.Widgets()
	names := make([]string, 0, len(widgets))
	for _, widget := range widgets {
		names = append(names, widget.WidgetName())
	}
	for _, href := range r.registry.Stylesheets(names) {
		fmt.Fprintf(buf, `<link rel="stylesheet" href="%s">`+"\n", components.Attr(href))
	}

	action := strings.TrimSpace(options.Action)
	if action != "" {
		method := strings.ToLower(strings.TrimSpace(options.Method))
		if method == "" {
			method = "post"
		}
		fmt.Fprintf(buf, `<form action="%s" method="%s">`+"\n", components.Attr(action), components.Attr(method))
	}

	for _, in := range p.Inputs() {
		fmt.Fprintf(buf, `<input type="text" id="%s"`, components.Attr(in.ID))
		if in.Name != "" {
			fmt.Fprintf(buf, ` name="%s"`, components.Attr(in.Name))
		}
		fmt.Fprintf(buf, ` value="%s">`+"\n", components.Attr(in.Value))
	}

	data := components.ComponentData{Page: p, Template: r.templates, RowTemplate: r.rowTemplate}
	for _, widget := range widgets {
		descriptor, ok := r.registry.Descriptor(widget.WidgetName())
		if !ok {
			return fmt.Errorf("vanilla renderer: component %q not registered", widget.WidgetName())
		}
		if err := descriptor.Renderer(buf, widget, data); err != nil {
			return fmt.Errorf("vanilla renderer: render %q: %w", widget.WidgetName(), err)
		}
	}

	for _, field := range options.Hidden {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		fmt.Fprintf(buf, `<input type="hidden" name="%s" value="%s">`+"\n", components.Attr(name), components.Attr(field.Value))
	}
	if action != "" {
		buf.WriteString("</form>\n")
	}
	return nil
}
