package tui

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-fieldsync/internal/logging"
	"github.com/goliatone/go-fieldsync/pkg/autofill"
	"github.com/goliatone/go-fieldsync/pkg/chips"
	"github.com/goliatone/go-fieldsync/pkg/extrafields"
	"github.com/goliatone/go-fieldsync/pkg/model"
	"github.com/goliatone/go-fieldsync/pkg/page"
	"github.com/goliatone/go-fieldsync/pkg/render"
)

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session edits a page interactively. Every edit is dispatched as a page
// event on the element a browser user would have touched, so the widgets see
// exactly the changes and clicks they would in a document.
type Session struct {
	page   *page.Page
	driver PromptDriver
	logger *slog.Logger
}

// NewSession prepares a session for p.
func NewSession(p *page.Page, opts ...Option) (*Session, error) {
	if p == nil {
		return nil, ErrNoPage
	}
	s := &Session{page: p}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	s.logger = logging.NewComponentLogger(s.logger, "tui")
	return s, nil
}

type action struct {
	label string
	run   func(ctx context.Context) error
}

// Run shows the action menu until the user finishes and returns the values
// the page would submit.
func (s *Session) Run(ctx context.Context) (url.Values, error) {
	for {
		actions := s.actions()
		labels := make([]string, 0, len(actions))
		for _, a := range actions {
			labels = append(labels, a.label)
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: "What next?", Options: labels, PageSize: 12})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(actions) {
			return nil, fmt.Errorf("tui: invalid selection %d", idx)
		}
		chosen := actions[idx]
		if chosen.run == nil {
			return render.Submission(s.page), nil
		}
		if err := chosen.run(ctx); err != nil {
			return nil, err
		}
	}
}

func (s *Session) actions() []action {
	var out []action
	for _, in := range s.page.Inputs() {
		out = append(out, action{
			label: fmt.Sprintf("Edit %s (%s)", inputLabel(in), in.Value),
			run:   func(ctx context.Context) error { return s.editInput(ctx, in) },
		})
	}
	for _, widget := range s.page.Widgets() {
		switch w := widget.(type) {
		case *chips.Selector:
			out = append(out, s.chipActions(w)...)
		case *extrafields.Manager:
			out = append(out, s.rowActions(w)...)
		case *autofill.Bridge:
			out = append(out, action{
				label: "Fetch metadata",
				run:   func(ctx context.Context) error { return s.fetch(ctx, w) },
			})
		}
	}
	return append(out, action{label: "Finish"})
}

func (s *Session) editInput(ctx context.Context, in page.Input) error {
	value, err := s.driver.Input(ctx, InputConfig{Message: inputLabel(in), Default: in.Value})
	if err != nil {
		return err
	}
	s.page.Change(in.ID, value)
	return nil
}

func (s *Session) chipActions(sel *chips.Selector) []action {
	cfg := sel.Config()
	var out []action
	if available := sel.Available(); len(available) > 0 {
		out = append(out, action{
			label: "Add " + cfg.InputName,
			run: func(ctx context.Context) error {
				value, ok, err := s.pickOption(ctx, "Add "+cfg.InputName, available)
				if err != nil || !ok {
					return err
				}
				s.page.Change(cfg.SelectID, value)
				return nil
			},
		})
	}
	if current := sel.Chips(); len(current) > 0 {
		out = append(out, action{
			label: "Remove " + cfg.InputName,
			run: func(ctx context.Context) error {
				options := make([]model.Option, 0, len(current))
				for _, chip := range current {
					options = append(options, model.Option{Value: chip.Value, Label: chip.Label})
				}
				value, ok, err := s.pickOption(ctx, "Remove "+cfg.InputName, options)
				if err != nil || !ok {
					return err
				}
				s.page.Click(sel.RemoveHandle(value))
				return nil
			},
		})
	}
	return out
}

func (s *Session) rowActions(m *extrafields.Manager) []action {
	out := []action{{
		label: "Add extra field",
		run: func(context.Context) error {
			s.page.Click(m.Config().AddButtonID)
			return nil
		},
	}}
	if len(m.Rows()) == 0 {
		return out
	}
	return append(out,
		action{label: "Choose extra field name", run: func(ctx context.Context) error {
			row, ok, err := s.pickRow(ctx, m)
			if err != nil || !ok {
				return err
			}
			var selectable []model.Option
			for _, state := range m.Availability(row.ID) {
				if !state.Disabled {
					selectable = append(selectable, state.Option)
				}
			}
			selectable = append([]model.Option{{Value: "", Label: "(none)"}}, selectable...)
			name, ok, err := s.pickOption(ctx, "Field name", selectable)
			if err != nil || !ok {
				return err
			}
			s.page.Change(m.SelectHandle(row.ID), name)
			return nil
		}},
		action{label: "Edit extra field value", run: func(ctx context.Context) error {
			row, ok, err := s.pickRow(ctx, m)
			if err != nil || !ok {
				return err
			}
			value, err := s.driver.Input(ctx, InputConfig{Message: m.InputName(row), Default: row.Value})
			if err != nil {
				return err
			}
			s.page.Change(m.InputHandle(row.ID), value)
			return nil
		}},
		action{label: "Remove extra field", run: func(ctx context.Context) error {
			row, ok, err := s.pickRow(ctx, m)
			if err != nil || !ok {
				return err
			}
			s.page.Click(m.RemoveHandle(row.ID))
			return nil
		}},
	)
}

func (s *Session) fetch(ctx context.Context, b *autofill.Bridge) error {
	opts := b.Options()
	current, _ := s.page.InputByID(opts.InputID)
	identifier, err := s.driver.Input(ctx, InputConfig{Message: "DOI or DOI link", Default: current.Value})
	if err != nil {
		return err
	}
	s.page.Change(opts.InputID, identifier)
	s.page.Click(opts.ButtonID)
	b.Wait()

	status := b.Status()
	s.logger.Debug("autofill finished", slog.String("status", status.Content))
	return s.driver.Info(ctx, status.Content)
}

// pickOption returns false when there is nothing to choose from.
func (s *Session) pickOption(ctx context.Context, message string, options []model.Option) (string, bool, error) {
	if len(options) == 0 {
		return "", false, nil
	}
	labels := make([]string, 0, len(options))
	for _, opt := range options {
		labels = append(labels, opt.DisplayLabel())
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: labels})
	if err != nil {
		return "", false, err
	}
	if idx < 0 || idx >= len(options) {
		return "", false, fmt.Errorf("tui: invalid selection %d", idx)
	}
	return options[idx].Value, true, nil
}

func (s *Session) pickRow(ctx context.Context, m *extrafields.Manager) (model.Row, bool, error) {
	rows := m.Rows()
	if len(rows) == 0 {
		return model.Row{}, false, nil
	}
	labels := make([]string, 0, len(rows))
	for _, row := range rows {
		name := row.FieldName
		if name == "" {
			name = "(unnamed)"
		}
		labels = append(labels, fmt.Sprintf("%s = %q", name, row.Value))
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: "Row", Options: labels})
	if err != nil {
		return model.Row{}, false, err
	}
	if idx < 0 || idx >= len(rows) {
		return model.Row{}, false, fmt.Errorf("tui: invalid selection %d", idx)
	}
	return rows[idx], true, nil
}

func inputLabel(in page.Input) string {
	if in.Name != "" {
		return in.Name
	}
	return in.ID
}

// FormatSubmission renders values one "name=value" per line, sorted by name.
func FormatSubmission(values url.Values) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		for _, value := range values[name] {
			fmt.Fprintf(&b, "%s=%s\n", name, value)
		}
	}
	return b.String()
}
