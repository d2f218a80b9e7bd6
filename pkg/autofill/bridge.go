package autofill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-fieldsync/internal/idgen"
	"github.com/goliatone/go-fieldsync/internal/logging"
	"github.com/goliatone/go-fieldsync/pkg/model"
	"github.com/goliatone/go-fieldsync/pkg/page"
)

// WidgetName identifies the bridge among a page's mounted widgets.
const WidgetName = "autofill"

// Document is the subset of page behaviour the bridge depends on.
type Document interface {
	MissingElements(ids ...string) []string
	InputByID(id string) (page.Input, bool)
	HasInput(name string) bool
	SetInput(name, value string) bool
	SetText(id, content, color string) bool
	Text(id string) (page.Text, bool)
	OnClick(id string, fn page.ClickHandler)
	Mount(w page.Widget)
	Do(fn func())
}

// FieldSetter receives fields that have no static input on the page. The
// extra-fields manager implements it.
type FieldSetter interface {
	SetField(name, value string) (model.RowID, error)
}

// Bridge connects the fetch button to a Lookup and applies its results.
type Bridge struct {
	opts    Options
	doc     Document
	fields  FieldSetter
	lookup  Lookup
	logger  *slog.Logger
	enabled bool

	inflight sync.WaitGroup
}

// New mounts a bridge on doc. fields may be nil, in which case fields without
// a static input cannot be placed: they are logged and the status reports
// the load as incomplete. A bridge whose identifier input,
// button or status element is missing is disabled.
func New(doc Document, fields FieldSetter, fns ...OptionFn) *Bridge {
	opts := NewOptions(fns...)
	b := &Bridge{
		opts:   opts,
		doc:    doc,
		fields: fields,
		lookup: opts.Lookup,
		logger: logging.NewComponentLogger(opts.Logger, WidgetName),
	}
	if b.lookup == nil {
		b.lookup = NewHTTPLookup(opts)
	}

	if doc == nil {
		b.logger.Debug("autofill disabled: no document")
		return b
	}
	if missing := doc.MissingElements(opts.InputID, opts.ButtonID, opts.StatusID); len(missing) > 0 {
		b.logger.Debug("autofill disabled: missing elements", slog.Any("missing", missing))
		return b
	}
	if _, ok := doc.InputByID(opts.InputID); !ok {
		b.logger.Debug("autofill disabled: identifier element is not an input", slog.String("input", opts.InputID))
		return b
	}

	b.enabled = true
	doc.OnClick(opts.ButtonID, b.trigger)
	doc.Mount(b)
	return b
}

// WidgetName implements page.Widget.
func (b *Bridge) WidgetName() string { return WidgetName }

// Enabled reports whether the bridge is bound to the page.
func (b *Bridge) Enabled() bool {
	return b != nil && b.enabled
}

// Options returns the resolved configuration.
func (b *Bridge) Options() Options {
	if b == nil {
		return DefaultOptions()
	}
	return b.opts
}

// Status returns the text currently shown on the status element.
func (b *Bridge) Status() page.Text {
	if !b.Enabled() {
		return page.Text{}
	}
	text, _ := b.doc.Text(b.opts.StatusID)
	return text
}

// Wait blocks until every lookup started by a button click has been applied.
func (b *Bridge) Wait() {
	if b == nil {
		return
	}
	b.inflight.Wait()
}

// trigger is the button's click handler. It runs under the page event lock,
// so the lookup itself happens on its own goroutine and its completion is
// queued back through Do. Two quick clicks start two independent lookups.
func (b *Bridge) trigger() {
	identifier := b.identifier()
	if identifier == "" {
		b.show(Status{Tone: ToneError, Text: MessageEmptyIdentifier})
		return
	}
	b.show(Status{Tone: ToneInfo, Text: MessageFetching})

	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), b.opts.Timeout)
		defer cancel()
		fields, err := b.resolve(ctx, identifier)
		b.doc.Do(func() {
			// Apply already logged every unplaced field; the status carries the outcome.
			_ = b.complete(fields, err)
		})
	}()
}

// Fetch runs a lookup for the identifier currently in the input and applies
// the result, reporting progress on the status element. It must not be
// called from inside a page event handler.
func (b *Bridge) Fetch(ctx context.Context) error {
	if !b.Enabled() {
		return errors.New("autofill: bridge disabled")
	}
	var identifier string
	b.doc.Do(func() {
		identifier = b.identifier()
		if identifier == "" {
			b.show(Status{Tone: ToneError, Text: MessageEmptyIdentifier})
			return
		}
		b.show(Status{Tone: ToneInfo, Text: MessageFetching})
	})
	if identifier == "" {
		return ErrEmptyIdentifier
	}

	fields, err := b.resolve(ctx, identifier)
	var applyErr error
	b.doc.Do(func() { applyErr = b.complete(fields, err) })
	if err != nil {
		return err
	}
	return applyErr
}

// Apply assigns fields to the page: static inputs by name, everything else
// through the FieldSetter. Fields are applied in name order. Fields that
// could not be placed are logged and returned joined; the rest still apply.
// With an extra-fields manager as the FieldSetter, names it does not offer
// are adopted, so only a missing setter or a failing one loses a field.
func (b *Bridge) Apply(fields map[string]string) error {
	if !b.Enabled() {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		value := fields[name]
		if b.doc.HasInput(name) {
			b.doc.SetInput(name, value)
			continue
		}
		if b.fields == nil {
			b.logger.Warn("dropped field without input", slog.String("field", name))
			errs = append(errs, fmt.Errorf("autofill: no input for field %q", name))
			continue
		}
		if _, err := b.fields.SetField(name, value); err != nil {
			b.logger.Warn("dropped field", slog.String("field", name), logging.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Bridge) resolve(ctx context.Context, identifier string) (map[string]string, error) {
	requestID := idgen.RequestID()
	logger := b.logger.With(slog.String(logging.FieldRequestID, requestID))
	logger.Debug("lookup started", slog.String("identifier", identifier))

	fields, err := b.lookup.Lookup(ctx, identifier)
	if err != nil {
		logger.Warn("lookup failed", slog.String(logging.FieldEventType, "remote_failure"), logging.Error(err))
		return nil, err
	}
	logger.Debug("lookup finished", slog.Int("fields", len(fields)))
	return fields, nil
}

func (b *Bridge) complete(fields map[string]string, err error) error {
	if err != nil {
		b.show(failureStatus(err))
		return nil
	}
	if err := b.Apply(fields); err != nil {
		b.show(Status{Tone: ToneError, Text: MessageIncomplete})
		return err
	}
	b.show(Status{Tone: ToneSuccess, Text: MessageLoaded})
	return nil
}

func (b *Bridge) identifier() string {
	in, ok := b.doc.InputByID(b.opts.InputID)
	if !ok {
		return ""
	}
	return strings.TrimSpace(in.Value)
}

func (b *Bridge) show(status Status) {
	b.doc.SetText(b.opts.StatusID, status.Text, status.Tone.Color())
}
