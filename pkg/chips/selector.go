package chips

import (
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"

	"github.com/goliatone/go-fieldsync/internal/logging"
	"github.com/goliatone/go-fieldsync/pkg/model"
	"github.com/goliatone/go-fieldsync/pkg/page"
)

// Document is the subset of page behaviour a Selector depends on.
type Document interface {
	MissingElements(ids ...string) []string
	OnChange(id string, fn page.ChangeHandler)
	OnClick(id string, fn page.ClickHandler)
	Off(id string)
	Mount(w page.Widget)
}

// Option configures a Selector.
type Option func(*Selector)

// WithLogger sets the operator logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Selector) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Selector is a mounted chip multi-select. A Selector whose required elements
// are missing is disabled: every operation is a no-op.
type Selector struct {
	cfg     Config
	doc     Document
	catalog model.Catalog
	logger  *slog.Logger

	enabled   bool
	available []model.Option
	order     []string
	chips     map[string]model.Chip
}

// New binds a Selector to doc. Missing elements or an empty input name
// disable the selector instead of failing.
func New(doc Document, cfg Config, opts ...Option) *Selector {
	s := &Selector{
		cfg:   normalizeConfig(cfg),
		doc:   doc,
		chips: make(map[string]model.Chip),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.logger = logging.NewComponentLogger(s.logger, WidgetName).With(slog.String("select", s.cfg.SelectID))

	if doc == nil {
		s.logger.Debug("chip selector disabled: no document")
		return s
	}
	if missing := doc.MissingElements(s.cfg.SelectID, s.cfg.ContainerID, s.cfg.HiddenInputsID); len(missing) > 0 {
		s.logger.Debug("chip selector disabled: missing elements", slog.Any("missing", missing))
		return s
	}
	if s.cfg.InputName == "" {
		s.logger.Debug("chip selector disabled: input name is empty")
		return s
	}

	s.catalog = model.NewCatalog(s.cfg.Options...)
	s.available = s.catalog.Options()
	s.enabled = true

	doc.OnChange(s.cfg.SelectID, func(value string) {
		s.Select(value)
	})
	doc.Mount(s)

	for _, value := range s.cfg.Selected {
		if !s.Select(strings.TrimSpace(value)) {
			s.logger.Debug("preselected value not available", slog.String("value", value))
		}
	}
	return s
}

// WidgetName implements page.Widget.
func (s *Selector) WidgetName() string { return WidgetName }

// Enabled reports whether the selector is bound to the page.
func (s *Selector) Enabled() bool {
	return s != nil && s.enabled
}

// Config returns the normalised configuration.
func (s *Selector) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.cfg
}

// Catalog returns the full source catalog.
func (s *Selector) Catalog() model.Catalog {
	if s == nil {
		return model.Catalog{}
	}
	return s.catalog
}

// Select promotes value into a chip. It returns false, changing nothing, when
// value is empty or not currently available.
func (s *Selector) Select(value string) bool {
	if !s.Enabled() || value == "" {
		return false
	}
	idx := slices.IndexFunc(s.available, func(o model.Option) bool { return o.Value == value })
	if idx < 0 {
		return false
	}
	option := s.available[idx]
	s.available = slices.Delete(s.available, idx, idx+1)

	s.chips[value] = model.Chip{Value: value, Label: option.DisplayLabel()}
	s.order = append(s.order, value)
	s.doc.OnClick(s.RemoveHandle(value), func() {
		s.Remove(value)
	})
	return true
}

// Remove demotes the chip holding value back into the source list. It returns
// false when no such chip exists. The Option is restored only when the source
// list does not already offer it.
func (s *Selector) Remove(value string) bool {
	if !s.Enabled() {
		return false
	}
	chip, ok := s.chips[value]
	if !ok {
		return false
	}
	delete(s.chips, value)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == value })
	s.doc.Off(s.RemoveHandle(value))

	if !s.offers(value) {
		option, known := s.catalog.Lookup(value)
		if !known {
			option = model.Option{Value: value, Label: chip.Label}
		}
		s.available = append(s.available, option)
	}
	return true
}

// RemoveHandle returns the element id of the remove control for value.
func (s *Selector) RemoveHandle(value string) string {
	return fmt.Sprintf("%s-%s-%s", s.cfg.ContainerID, s.cfg.RemoveClass, value)
}

// Chips returns the chips in selection order.
func (s *Selector) Chips() []model.Chip {
	if s == nil || len(s.order) == 0 {
		return nil
	}
	out := make([]model.Chip, 0, len(s.order))
	for _, value := range s.order {
		out = append(out, s.chips[value])
	}
	return out
}

// HiddenValues returns the hidden inputs mirroring the chips.
func (s *Selector) HiddenValues() []model.HiddenValue {
	if s == nil || len(s.order) == 0 {
		return nil
	}
	out := make([]model.HiddenValue, 0, len(s.order))
	for _, value := range s.order {
		out = append(out, model.HiddenValue{Name: s.cfg.InputName, Value: value})
	}
	return out
}

// Available returns the Options currently offered by the source control,
// excluding the placeholder.
func (s *Selector) Available() []model.Option {
	if s == nil || len(s.available) == 0 {
		return nil
	}
	return slices.Clone(s.available)
}

// Consumed returns the values currently held by chips, in selection order.
func (s *Selector) Consumed() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.order)
}

// Submit appends the hidden values to a form submission.
func (s *Selector) Submit(values url.Values) {
	for _, hidden := range s.HiddenValues() {
		values.Add(hidden.Name, hidden.Value)
	}
}

// Validate checks that chips, hidden values and consumed options agree and
// stay disjoint from the available options.
func (s *Selector) Validate() error {
	if !s.Enabled() {
		return nil
	}
	if len(s.order) != len(s.chips) {
		return fmt.Errorf("chips: %d ordered chips but %d indexed", len(s.order), len(s.chips))
	}
	offered := make(map[string]struct{}, len(s.available))
	for _, option := range s.available {
		if _, dup := offered[option.Value]; dup {
			return fmt.Errorf("chips: option %q offered twice", option.Value)
		}
		offered[option.Value] = struct{}{}
	}
	for _, hidden := range s.HiddenValues() {
		if _, ok := s.chips[hidden.Value]; !ok {
			return fmt.Errorf("chips: hidden value %q has no chip", hidden.Value)
		}
		if _, ok := offered[hidden.Value]; ok {
			return fmt.Errorf("chips: value %q is both consumed and available", hidden.Value)
		}
	}
	for _, value := range s.catalog.Values() {
		_, consumed := s.chips[value]
		_, open := offered[value]
		if consumed == open {
			return fmt.Errorf("chips: catalog value %q must be either consumed or available", value)
		}
	}
	return nil
}

func (s *Selector) offers(value string) bool {
	return slices.ContainsFunc(s.available, func(o model.Option) bool { return o.Value == value })
}
