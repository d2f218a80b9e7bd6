package extrafields_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fieldsync/pkg/extrafields"
	"github.com/goliatone/go-fieldsync/pkg/model"
	"github.com/goliatone/go-fieldsync/pkg/page"
)

const rowTemplate = `<div class="extra-row">
  <select class="extra-select"><option value="">Select field</option></select>
  <input class="extra-input" name="additional_field_value">
  <button type="button" class="remove-extra">Remove</button>
</div>`

func newPage(t *testing.T, markup string) *page.Page {
	t.Helper()
	p := page.New()
	p.Declare(extrafields.DefaultContainerID, extrafields.DefaultAddButtonID)
	p.AddTemplate(extrafields.DefaultTemplateID, markup)
	return p
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("row-%d", n)
	}
}

func catalog(values ...string) []model.Option {
	out := make([]model.Option, 0, len(values))
	for _, v := range values {
		out = append(out, model.Option{Value: v})
	}
	return out
}

func disabledNames(states []model.OptionState) []string {
	var out []string
	for _, state := range states {
		if state.Disabled {
			out = append(out, state.Value)
		}
	}
	return out
}

func TestManagerNameUniquenessScenario(t *testing.T) {
	p := newPage(t, rowTemplate)
	m := extrafields.New(p, extrafields.Config{Options: catalog("x", "y")}, extrafields.WithIDGenerator(sequentialIDs()))

	p.Click(extrafields.DefaultAddButtonID)
	p.Change(m.SelectHandle("row-1"), "x")
	p.Click(extrafields.DefaultAddButtonID)
	p.Change(m.SelectHandle("row-2"), "x")

	second, _ := m.Row("row-2")
	if second.Bound() {
		t.Fatalf("second row must not take a name held by the first: %#v", second)
	}
	if diff := cmp.Diff([]string{"x"}, disabledNames(m.Availability("row-2"))); diff != "" {
		t.Fatalf("second row availability mismatch (-want +got):\n%s", diff)
	}
	if got := disabledNames(m.Availability("row-1")); len(got) != 0 {
		t.Fatalf("holder must keep its own name enabled, disabled=%v", got)
	}

	p.Change(m.SelectHandle("row-2"), "y")
	p.Change(m.InputHandle("row-1"), "first")
	p.Change(m.InputHandle("row-2"), "second")

	want := []model.Row{
		{ID: "row-1", FieldName: "x", Value: "first"},
		{ID: "row-2", FieldName: "y", Value: "second"},
	}
	if diff := cmp.Diff(want, m.Rows()); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"y"}, disabledNames(m.Availability("row-1"))); diff != "" {
		t.Fatalf("first row availability mismatch (-want +got):\n%s", diff)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("invariant violated: %v", err)
	}
}

func TestManagerSetNameErrors(t *testing.T) {
	m := extrafields.New(newPage(t, rowTemplate), extrafields.Config{Options: catalog("x")}, extrafields.WithIDGenerator(sequentialIDs()))
	first := m.AddRow()
	second := m.AddRow()

	if err := m.SetName(first, "x"); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if err := m.SetName(second, "x"); !errors.Is(err, extrafields.ErrFieldUnavailable) {
		t.Fatalf("expected ErrFieldUnavailable, got %v", err)
	}
	if err := m.SetName(second, "nope"); !errors.Is(err, extrafields.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := m.SetName("ghost", "x"); !errors.Is(err, extrafields.ErrUnknownRow) {
		t.Fatalf("expected ErrUnknownRow, got %v", err)
	}
	if err := m.SetName(first, "x"); err != nil {
		t.Fatalf("re-selecting the held name must succeed: %v", err)
	}
}

func TestManagerRowStateMachine(t *testing.T) {
	p := newPage(t, rowTemplate)
	m := extrafields.New(p, extrafields.Config{Options: catalog("x", "y")}, extrafields.WithIDGenerator(sequentialIDs()))
	id := m.AddRow()
	other := m.AddRow()

	for _, name := range []string{"x", "", "y", "x"} {
		if err := m.SetName(id, name); err != nil {
			t.Fatalf("transition to %q: %v", name, err)
		}
		row, _ := m.Row(id)
		if row.FieldName != name {
			t.Fatalf("expected name %q, got %q", name, row.FieldName)
		}
		if got := m.InputName(row); name == "" && got != extrafields.PlaceholderInputName {
			t.Fatalf("unbound row must submit under the placeholder name, got %q", got)
		}
	}

	if !p.Click(m.RemoveHandle(id)) {
		t.Fatalf("expected remove control to be bound")
	}
	if _, ok := m.Row(id); ok {
		t.Fatalf("row should be removed")
	}
	if p.Bound(m.SelectHandle(id)) || p.Bound(m.InputHandle(id)) || p.Bound(m.RemoveHandle(id)) {
		t.Fatalf("removed row handles must be unbound")
	}
	if err := m.SetName(other, "x"); err != nil {
		t.Fatalf("removing the holder must release its name: %v", err)
	}
	if err := m.RemoveRow(id); !errors.Is(err, extrafields.ErrUnknownRow) {
		t.Fatalf("expected ErrUnknownRow on second remove, got %v", err)
	}
}

func TestSeedExistingSkipsDefaults(t *testing.T) {
	m := extrafields.New(newPage(t, rowTemplate), extrafields.Config{Options: catalog("note", "custom")}, extrafields.WithIDGenerator(sequentialIDs()))

	if err := m.SeedExisting(map[string]string{"note": "x"}, []string{"note"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if rows := m.Rows(); len(rows) != 0 {
		t.Fatalf("default field must not be seeded, got %v", rows)
	}

	if err := m.SeedExisting(map[string]string{"custom": "y"}, []string{"note"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	want := []model.Row{{ID: "row-1", FieldName: "custom", Value: "y"}}
	if diff := cmp.Diff(want, m.Rows()); diff != "" {
		t.Fatalf("seeded rows mismatch (-want +got):\n%s", diff)
	}
}

func TestSeedExistingSkipsStaticInputsAndHeldNames(t *testing.T) {
	p := newPage(t, rowTemplate)
	if err := p.AddInput(page.Input{Name: "title"}); err != nil {
		t.Fatalf("add input: %v", err)
	}
	m := extrafields.New(p, extrafields.Config{Options: catalog("title", "isbn", "pages")}, extrafields.WithIDGenerator(sequentialIDs()))
	if _, err := m.AddField("isbn", "old"); err != nil {
		t.Fatalf("add field: %v", err)
	}

	if err := m.SeedExisting(map[string]string{"title": "T", "isbn": "new", "pages": "12"}, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	want := []model.Row{
		{ID: "row-1", FieldName: "isbn", Value: "old"},
		{ID: "row-2", FieldName: "pages", Value: "12"},
	}
	if diff := cmp.Diff(want, m.Rows()); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSeedsExistingAndAutoAdds(t *testing.T) {
	cfg := extrafields.Config{
		Options:        catalog("doi", "volume", "note"),
		Existing:       map[string]string{"volume": "3"},
		ExistingJSON:   `{"doi": "10.1/abc", "note": null, "pages": 1234567, "authors": ["Ada", "Alan"]}`,
		DefaultFields:  []string{"note"},
		AutoAddIfEmpty: true,
	}
	m := extrafields.New(newPage(t, rowTemplate), cfg, extrafields.WithIDGenerator(sequentialIDs()))

	want := []model.Row{
		{ID: "row-1", FieldName: "authors", Value: `["Ada","Alan"]`},
		{ID: "row-2", FieldName: "doi", Value: "10.1/abc"},
		{ID: "row-3", FieldName: "pages", Value: "1234567"},
		{ID: "row-4", FieldName: "volume", Value: "3"},
	}
	if diff := cmp.Diff(want, m.Rows()); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}

	empty := extrafields.New(newPage(t, rowTemplate), extrafields.Config{Options: catalog("doi"), AutoAddIfEmpty: true}, extrafields.WithIDGenerator(sequentialIDs()))
	if diff := cmp.Diff([]model.Row{{ID: "row-1"}}, empty.Rows()); diff != "" {
		t.Fatalf("auto-added rows mismatch (-want +got):\n%s", diff)
	}
}

func TestAddFieldAdoptsNamesOutsideCatalog(t *testing.T) {
	p := newPage(t, rowTemplate)
	m := extrafields.New(p, extrafields.Config{Options: catalog("keywords")}, extrafields.WithIDGenerator(sequentialIDs()))

	id, err := m.AddField("publisher", "P")
	if err != nil {
		t.Fatalf("add field: %v", err)
	}
	if diff := cmp.Diff([]string{"keywords", "publisher"}, m.Catalog().Values()); diff != "" {
		t.Fatalf("catalog mismatch (-want +got):\n%s", diff)
	}
	if _, err := m.AddField("publisher", "again"); !errors.Is(err, extrafields.ErrFieldUnavailable) {
		t.Fatalf("expected ErrFieldUnavailable, got %v", err)
	}
	if _, err := m.AddField("  ", "x"); !errors.Is(err, extrafields.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField for blank name, got %v", err)
	}

	other := m.AddRow()
	if diff := cmp.Diff([]string{"publisher"}, disabledNames(m.Availability(other))); diff != "" {
		t.Fatalf("disabled options mismatch (-want +got):\n%s", diff)
	}
	if err := m.SetName(other, "publisher"); !errors.Is(err, extrafields.ErrFieldUnavailable) {
		t.Fatalf("expected ErrFieldUnavailable, got %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	values := url.Values{}
	m.Submit(values)
	if got := values.Get("publisher"); got != "P" {
		t.Fatalf("submitted publisher = %q", got)
	}
	if row, _ := m.Row(id); row.FieldName != "publisher" {
		t.Fatalf("row = %#v", row)
	}
}

func TestSeedFailureIsLoggedAndAffordancesKeepWorking(t *testing.T) {
	cases := map[string]struct {
		markup string
		cfg    extrafields.Config
		want   string
	}{
		"malformed existing": {
			markup: rowTemplate,
			cfg:    extrafields.Config{Options: catalog("x"), ExistingJSON: `{"x": `},
			want:   "decode existing values",
		},
		"incomplete template": {
			markup: `<div><select class="extra-select"></select></div>`,
			cfg:    extrafields.Config{Options: catalog("x"), Existing: map[string]string{"x": "1"}},
			want:   "row template incomplete",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			p := newPage(t, tc.markup)
			tc.cfg.AutoAddIfEmpty = true
			m := extrafields.New(p, tc.cfg, extrafields.WithLogger(logger), extrafields.WithIDGenerator(sequentialIDs()))

			if !strings.Contains(logs.String(), tc.want) || !strings.Contains(logs.String(), "level=ERROR") {
				t.Fatalf("expected seed failure in logs, got %q", logs.String())
			}
			if !m.Enabled() {
				t.Fatalf("seed failure must not disable the manager")
			}
			if len(m.Rows()) != 1 {
				t.Fatalf("auto add must still run after a seed failure, rows=%v", m.Rows())
			}
			p.Click(extrafields.DefaultAddButtonID)
			p.Click(m.RemoveHandle("row-1"))
			if diff := cmp.Diff([]model.Row{{ID: "row-2"}}, m.Rows()); diff != "" {
				t.Fatalf("add/remove after seed failure mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestManagerDisabledWhenElementMissing(t *testing.T) {
	p := page.New()
	p.Declare(extrafields.DefaultContainerID, extrafields.DefaultAddButtonID)
	m := extrafields.New(p, extrafields.Config{Options: catalog("x"), AutoAddIfEmpty: true})

	if m.Enabled() {
		t.Fatalf("manager should be disabled without its template")
	}
	if id := m.AddRow(); id != "" {
		t.Fatalf("disabled manager must not add rows, got %q", id)
	}
	if p.Click(extrafields.DefaultAddButtonID) {
		t.Fatalf("disabled manager must not bind the add control")
	}
	if _, err := m.SetField("x", "1"); err == nil {
		t.Fatalf("disabled manager must refuse programmatic rows")
	}
}

func TestSetFieldIsIdempotentPerName(t *testing.T) {
	m := extrafields.New(newPage(t, rowTemplate), extrafields.Config{Options: catalog("keywords")}, extrafields.WithIDGenerator(sequentialIDs()))

	first, err := m.SetField("keywords", "a")
	if err != nil {
		t.Fatalf("set field: %v", err)
	}
	second, err := m.SetField("keywords", "b")
	if err != nil {
		t.Fatalf("set field: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same row, got %q and %q", first, second)
	}
	if diff := cmp.Diff([]model.Row{{ID: "row-1", FieldName: "keywords", Value: "b"}}, m.Rows()); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestManagerSubmit(t *testing.T) {
	m := extrafields.New(newPage(t, rowTemplate), extrafields.Config{Options: catalog("doi")}, extrafields.WithIDGenerator(sequentialIDs()))
	if _, err := m.AddField("doi", "10.1/x"); err != nil {
		t.Fatalf("add field: %v", err)
	}
	id := m.AddRow()
	_ = m.SetValue(id, "loose")

	values := url.Values{}
	m.Submit(values)
	want := url.Values{"doi": {"10.1/x"}, extrafields.PlaceholderInputName: {"loose"}}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}
}

func TestManagerInvariantsHoldUnderRandomEdits(t *testing.T) {
	names := []string{"", "a", "b", "c"}
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 30; run++ {
		p := newPage(t, rowTemplate)
		m := extrafields.New(p, extrafields.Config{Options: catalog("a", "b", "c")}, extrafields.WithIDGenerator(sequentialIDs()))
		for step := 0; step < 60; step++ {
			rows := m.Rows()
			switch op := rng.Intn(4); {
			case op == 0 || len(rows) == 0:
				p.Click(extrafields.DefaultAddButtonID)
			case op == 1:
				p.Click(m.RemoveHandle(rows[rng.Intn(len(rows))].ID))
			default:
				p.Change(m.SelectHandle(rows[rng.Intn(len(rows))].ID), names[rng.Intn(len(names))])
			}
			if err := m.Validate(); err != nil {
				t.Fatalf("run %d step %d: %v", run, step, err)
			}
		}
	}
}
