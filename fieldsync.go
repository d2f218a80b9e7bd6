package fieldsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/goliatone/go-fieldsync/internal/logging"
	"github.com/goliatone/go-fieldsync/pkg/autofill"
	"github.com/goliatone/go-fieldsync/pkg/chips"
	"github.com/goliatone/go-fieldsync/pkg/config"
	"github.com/goliatone/go-fieldsync/pkg/extrafields"
	"github.com/goliatone/go-fieldsync/pkg/page"
	"github.com/goliatone/go-fieldsync/pkg/render"
	"github.com/goliatone/go-fieldsync/pkg/renderers/snapshot"
	"github.com/goliatone/go-fieldsync/pkg/renderers/vanilla"
)

const defaultRendererName = "vanilla"

// RenderOptions aliases render.RenderOptions for callers of Form.Render.
type RenderOptions = render.RenderOptions

// Option configures Build.
type Option func(*builder)

type builder struct {
	logger          *slog.Logger
	lookup          autofill.Lookup
	client          *http.Client
	registry        *render.Registry
	defaultRenderer string
	rowIDs          func() string
}

// WithLogger sets the logger handed to every widget.
func WithLogger(logger *slog.Logger) Option {
	return func(b *builder) {
		b.logger = logger
	}
}

// WithLookup replaces the HTTP lookup used by the autofill bridge.
func WithLookup(lookup autofill.Lookup) Option {
	return func(b *builder) {
		b.lookup = lookup
	}
}

// WithHTTPClient sets the client used by the default autofill lookup.
func WithHTTPClient(client *http.Client) Option {
	return func(b *builder) {
		b.client = client
	}
}

// WithRegistry replaces the renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(b *builder) {
		if registry != nil {
			b.registry = registry
		}
	}
}

// WithDefaultRenderer names the renderer used when Render gets no name.
func WithDefaultRenderer(name string) Option {
	return func(b *builder) {
		if name != "" {
			b.defaultRenderer = name
		}
	}
}

// WithRowIDGenerator overrides how extra-field row ids are minted.
func WithRowIDGenerator(fn func() string) Option {
	return func(b *builder) {
		b.rowIDs = fn
	}
}

// Form is a page with its mounted widgets. Widgets that could not be bound
// to the page are left out: Chips holds only enabled selectors, Fields and
// Autofill are nil when disabled.
type Form struct {
	Page     *page.Page
	Chips    []*chips.Selector
	Fields   *extrafields.Manager
	Autofill *autofill.Bridge

	registry        *render.Registry
	defaultRenderer string
	logger          *slog.Logger
}

// Load reads a page document and builds it.
func Load(path string, options ...Option) (*Form, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return Build(cfg, options...)
}

// Build creates the page described by cfg and mounts its widgets. Each widget
// is mounted on its own: one whose elements are missing is logged and
// skipped, the others still work. Only problems with the page itself (such
// as duplicate input ids) fail the build.
func Build(cfg *config.Page, options ...Option) (*Form, error) {
	if cfg == nil {
		return nil, errors.New("fieldsync: config is required")
	}
	b := builder{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt != nil {
			opt(&b)
		}
	}
	if b.registry == nil {
		registry, err := defaultRegistry()
		if err != nil {
			return nil, err
		}
		b.registry = registry
	}
	if !b.registry.Has(b.defaultRenderer) {
		return nil, fmt.Errorf("fieldsync: default renderer %q: %w", b.defaultRenderer, render.ErrRendererNotFound)
	}
	logger := logging.NewComponentLogger(b.logger, "fieldsync")

	p := page.New(page.WithLogger(b.logger))
	p.Declare(cfg.Elements...)
	for id, markup := range cfg.Templates {
		p.AddTemplate(id, markup)
	}
	for _, in := range cfg.Inputs {
		if err := p.AddInput(page.Input{ID: in.ID, Name: in.Name, Value: in.Value}); err != nil {
			return nil, fmt.Errorf("fieldsync: %w", err)
		}
	}

	form := &Form{
		Page:            p,
		registry:        b.registry,
		defaultRenderer: b.defaultRenderer,
		logger:          logger,
	}

	for idx, chipCfg := range cfg.Chips {
		selector := chips.New(p, chipCfg, chips.WithLogger(b.logger))
		if !selector.Enabled() {
			logger.Warn("chip selector not mounted", slog.Int("index", idx), slog.String("select", chipCfg.SelectID))
			continue
		}
		form.Chips = append(form.Chips, selector)
	}

	var fields autofill.FieldSetter
	if cfg.ExtraFields != nil {
		opts := []extrafields.Option{extrafields.WithLogger(b.logger)}
		if b.rowIDs != nil {
			opts = append(opts, extrafields.WithIDGenerator(b.rowIDs))
		}
		manager := extrafields.New(p, *cfg.ExtraFields, opts...)
		if manager.Enabled() {
			form.Fields = manager
			fields = manager
		} else {
			logger.Warn("extra fields not mounted", slog.String("container", manager.Config().ContainerID))
		}
	}

	if cfg.Autofill != nil {
		opts, err := cfg.Autofill.Options()
		if err != nil {
			logger.Warn("autofill not mounted", logging.Error(err))
		} else {
			opts = append(opts, autofill.WithLogger(b.logger))
			if b.lookup != nil {
				opts = append(opts, autofill.WithLookup(b.lookup))
			}
			if b.client != nil {
				opts = append(opts, autofill.WithHTTPClient(b.client))
			}
			bridge := autofill.New(p, fields, opts...)
			if bridge.Enabled() {
				form.Autofill = bridge
			} else {
				logger.Warn("autofill not mounted", slog.String("button", bridge.Options().ButtonID))
			}
		}
	}
	return form, nil
}

func defaultRegistry() (*render.Registry, error) {
	html, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("fieldsync: %w", err)
	}
	return render.NewRegistry(html, snapshot.New()), nil
}

// Render projects the page through the named renderer, or the default one
// when name is empty. It must not be called from inside a page event handler.
func (f *Form) Render(ctx context.Context, name string, options RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("fieldsync: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		name = f.defaultRenderer
	}
	renderer, err := f.registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("fieldsync: renderer %q: %w", name, err)
	}
	out, err := renderer.Render(ctx, f.Page, options)
	if err != nil {
		return nil, fmt.Errorf("fieldsync: render output: %w", err)
	}
	return out, nil
}

// Renderers lists the registered renderer names.
func (f *Form) Renderers() []string {
	return f.registry.List()
}

// Submission returns the values the page would submit.
func (f *Form) Submission(hidden ...render.HiddenField) url.Values {
	var values url.Values
	f.Page.Do(func() {
		values = render.Submission(f.Page, hidden...)
	})
	return values
}

// Validate checks the invariants of every mounted widget.
func (f *Form) Validate() error {
	var errs []error
	f.Page.Do(func() {
		for _, selector := range f.Chips {
			if err := selector.Validate(); err != nil {
				errs = append(errs, err)
			}
		}
		if f.Fields != nil {
			if err := f.Fields.Validate(); err != nil {
				errs = append(errs, err)
			}
		}
	})
	return errors.Join(errs...)
}

// Wait blocks until in-flight autofill lookups have been applied.
func (f *Form) Wait() {
	if f.Autofill != nil {
		f.Autofill.Wait()
	}
}
