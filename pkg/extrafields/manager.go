package extrafields

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-fieldsync/internal/idgen"
	"github.com/goliatone/go-fieldsync/internal/logging"
	"github.com/goliatone/go-fieldsync/pkg/model"
	"github.com/goliatone/go-fieldsync/pkg/page"
)

// Document is the subset of page behaviour the manager depends on.
type Document interface {
	MissingElements(ids ...string) []string
	Template(id string) (string, bool)
	HasInput(name string) bool
	OnChange(id string, fn page.ChangeHandler)
	OnClick(id string, fn page.ClickHandler)
	Off(id string)
	Mount(w page.Widget)
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the operator logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithIDGenerator overrides how row ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// Manager is a mounted extra-fields row set. A Manager whose container,
// template or add control is missing is disabled: every operation is a no-op.
type Manager struct {
	cfg     Config
	doc     Document
	catalog model.Catalog
	logger  *slog.Logger
	newID   func() string
	seq     int

	enabled bool
	rows    []*model.Row
	byID    map[model.RowID]*model.Row
}

// New binds a Manager to doc, seeds existing values and, when configured,
// adds an empty row to an empty container. Seed failures are logged and never
// prevent the add and remove controls from working.
func New(doc Document, cfg Config, opts ...Option) *Manager {
	m := &Manager{
		cfg:  normalizeConfig(cfg),
		doc:  doc,
		byID: make(map[model.RowID]*model.Row),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	m.logger = logging.NewComponentLogger(m.logger, WidgetName).With(slog.String("container", m.cfg.ContainerID))

	if doc == nil {
		m.logger.Debug("extra fields disabled: no document")
		return m
	}
	if missing := doc.MissingElements(m.cfg.ContainerID, m.cfg.TemplateID, m.cfg.AddButtonID); len(missing) > 0 {
		m.logger.Debug("extra fields disabled: missing elements", slog.Any("missing", missing))
		return m
	}

	m.catalog = model.NewCatalog(m.cfg.Options...)
	m.enabled = true
	doc.OnClick(m.cfg.AddButtonID, func() {
		m.AddRow()
	})
	doc.Mount(m)

	if err := m.seedInitial(); err != nil {
		m.logger.Error("seed existing fields", slog.String(logging.FieldEventType, "seed_failure"), logging.Error(err))
	}

	if m.cfg.AutoAddIfEmpty && len(m.rows) == 0 {
		m.AddRow()
	}
	return m
}

func (m *Manager) seedInitial() error {
	if err := m.CheckTemplate(); err != nil {
		return err
	}
	existing, err := mergeExisting(m.cfg.Existing, m.cfg.ExistingJSON)
	if err != nil {
		return err
	}
	return m.SeedExisting(existing, m.cfg.DefaultFields)
}

// WidgetName implements page.Widget.
func (m *Manager) WidgetName() string { return WidgetName }

// Enabled reports whether the manager is bound to the page.
func (m *Manager) Enabled() bool {
	return m != nil && m.enabled
}

// Config returns the normalised configuration.
func (m *Manager) Config() Config {
	if m == nil {
		return Config{}
	}
	return m.cfg
}

// Catalog returns the shared field-name catalog.
func (m *Manager) Catalog() model.Catalog {
	if m == nil {
		return model.Catalog{}
	}
	return m.catalog
}

// Template returns the page-supplied row template markup.
func (m *Manager) Template() string {
	if !m.Enabled() {
		return ""
	}
	markup, _ := m.doc.Template(m.cfg.TemplateID)
	return markup
}

// CheckTemplate verifies the row template carries its three controls.
func (m *Manager) CheckTemplate() error {
	if !m.Enabled() {
		return nil
	}
	markup, ok := m.doc.Template(m.cfg.TemplateID)
	if !ok {
		return fmt.Errorf("%w: template %q not found", ErrTemplateIncomplete, m.cfg.TemplateID)
	}
	return CheckTemplate(markup, m.cfg.SelectClass, m.cfg.InputClass, m.cfg.RemoveClass)
}

// AddRow appends an unbound row and binds its controls. It returns the new
// row id, or "" when the manager is disabled.
func (m *Manager) AddRow() model.RowID {
	if !m.Enabled() {
		return ""
	}
	id := m.mintID()
	row := &model.Row{ID: id}
	m.rows = append(m.rows, row)
	m.byID[id] = row

	m.doc.OnChange(m.SelectHandle(id), func(value string) {
		if err := m.SetName(id, value); err != nil {
			m.logger.Debug("ignored name change", slog.String("row", string(id)), logging.Error(err))
		}
	})
	m.doc.OnChange(m.InputHandle(id), func(value string) {
		_ = m.SetValue(id, value)
	})
	m.doc.OnClick(m.RemoveHandle(id), func() {
		_ = m.RemoveRow(id)
	})
	return id
}

// SetName binds the row to name, or unbinds it when name is empty. Names
// outside the catalog and names held by another row are refused; use
// AddField to bind a name the catalog does not offer.
func (m *Manager) SetName(id model.RowID, name string) error {
	row, err := m.row(id)
	if err != nil {
		return err
	}
	if name == "" {
		row.FieldName = ""
		return nil
	}
	if !m.catalog.Has(name) {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if holder := m.holder(name); holder != nil && holder.ID != id {
		return fmt.Errorf("%w: %q", ErrFieldUnavailable, name)
	}
	row.FieldName = name
	return nil
}

// SetValue updates the value held by a row.
func (m *Manager) SetValue(id model.RowID, value string) error {
	row, err := m.row(id)
	if err != nil {
		return err
	}
	row.Value = value
	return nil
}

// RemoveRow deletes a row and unbinds its controls, releasing its name.
func (m *Manager) RemoveRow(id model.RowID) error {
	if _, err := m.row(id); err != nil {
		return err
	}
	delete(m.byID, id)
	m.rows = slices.DeleteFunc(m.rows, func(r *model.Row) bool { return r.ID == id })
	m.doc.Off(m.SelectHandle(id))
	m.doc.Off(m.InputHandle(id))
	m.doc.Off(m.RemoveHandle(id))
	return nil
}

// AddField creates a row bound to name holding value, going through the same
// add and rename path as an interactive edit. A name outside the catalog is
// adopted into it first, so the value is still submitted and the name becomes
// unavailable to every other row.
func (m *Manager) AddField(name, value string) (model.RowID, error) {
	if !m.Enabled() {
		return "", fmt.Errorf("%w: manager disabled", ErrUnknownRow)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrUnknownField)
	}
	if !m.catalog.Has(name) {
		m.catalog = m.catalog.With(model.Option{Value: name})
		m.logger.Info("adopted field outside catalog", slog.String("field", name))
	}
	if m.holder(name) != nil {
		return "", fmt.Errorf("%w: %q", ErrFieldUnavailable, name)
	}
	id := m.AddRow()
	if err := m.SetName(id, name); err != nil {
		_ = m.RemoveRow(id)
		return "", err
	}
	if err := m.SetValue(id, value); err != nil {
		return "", err
	}
	return id, nil
}

// SetField assigns value to the row bound to name, creating that row when
// none exists. Repeated calls for the same name update a single row.
func (m *Manager) SetField(name, value string) (model.RowID, error) {
	if holder := m.holder(name); holder != nil {
		holder.Value = value
		return holder.ID, nil
	}
	return m.AddField(name, value)
}

// SeedExisting creates one bound row per entry of existing, skipping default
// fields, names submitted by a static input and names already held by a row.
// Entries are processed in name order; a failing entry does not stop the
// others and all failures are returned joined.
func (m *Manager) SeedExisting(existing map[string]string, defaults []string) error {
	if !m.Enabled() || len(existing) == 0 {
		return nil
	}
	names := make([]string, 0, len(existing))
	for name := range existing {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if slices.Contains(defaults, name) {
			continue
		}
		if m.doc.HasInput(name) || m.holder(name) != nil {
			continue
		}
		if _, err := m.AddField(name, existing[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Rows returns a snapshot of the rows in display order.
func (m *Manager) Rows() []model.Row {
	if m == nil || len(m.rows) == 0 {
		return nil
	}
	out := make([]model.Row, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, *row)
	}
	return out
}

// Row returns a snapshot of one row.
func (m *Manager) Row(id model.RowID) (model.Row, bool) {
	row, err := m.row(id)
	if err != nil {
		return model.Row{}, false
	}
	return *row, true
}

// RowByField returns the row currently bound to name.
func (m *Manager) RowByField(name string) (model.Row, bool) {
	if holder := m.holder(name); holder != nil {
		return *holder, true
	}
	return model.Row{}, false
}

// InputName returns the submitted name of a row's value input.
func (m *Manager) InputName(row model.Row) string {
	if row.FieldName != "" {
		return row.FieldName
	}
	return PlaceholderInputName
}

// Availability returns the catalog as seen from one row's name selector. An
// option is disabled when another row holds it; the row's own name is never
// disabled. The placeholder is not part of the result and is always enabled.
func (m *Manager) Availability(id model.RowID) []model.OptionState {
	row, err := m.row(id)
	if err != nil {
		return nil
	}
	held := m.heldNames()
	out := make([]model.OptionState, 0, m.catalog.Len())
	for _, option := range m.catalog.Options() {
		selected := row.FieldName == option.Value
		holder, taken := held[option.Value]
		out = append(out, model.OptionState{
			Option:   option,
			Selected: selected,
			Disabled: taken && holder != id,
		})
	}
	return out
}

// Submit appends each row's value under its input name.
func (m *Manager) Submit(values url.Values) {
	for _, row := range m.Rows() {
		values.Add(m.InputName(row), row.Value)
	}
}

// Validate checks that no name is held by two rows, that bound names belong
// to the catalog, and that every held name is selectable only by its holder.
func (m *Manager) Validate() error {
	if !m.Enabled() {
		return nil
	}
	seen := make(map[string]model.RowID, len(m.rows))
	for _, row := range m.rows {
		if row.FieldName == "" {
			continue
		}
		if other, dup := seen[row.FieldName]; dup {
			return fmt.Errorf("extrafields: rows %s and %s both hold %q", other, row.ID, row.FieldName)
		}
		if !m.catalog.Has(row.FieldName) {
			return fmt.Errorf("extrafields: row %s holds unknown field %q", row.ID, row.FieldName)
		}
		seen[row.FieldName] = row.ID
	}
	for _, row := range m.rows {
		for _, state := range m.Availability(row.ID) {
			holder, held := seen[state.Value]
			if held && holder != row.ID && !state.Disabled {
				return fmt.Errorf("extrafields: %q held by %s is selectable in %s", state.Value, holder, row.ID)
			}
		}
	}
	return nil
}

// SelectHandle returns the element id of a row's name selector.
func (m *Manager) SelectHandle(id model.RowID) string {
	return string(id) + "-" + m.cfg.SelectClass
}

// InputHandle returns the element id of a row's value input.
func (m *Manager) InputHandle(id model.RowID) string {
	return string(id) + "-" + m.cfg.InputClass
}

// RemoveHandle returns the element id of a row's remove control.
func (m *Manager) RemoveHandle(id model.RowID) string {
	return string(id) + "-" + m.cfg.RemoveClass
}

func (m *Manager) row(id model.RowID) (*model.Row, error) {
	if !m.Enabled() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRow, id)
	}
	row, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRow, id)
	}
	return row, nil
}

func (m *Manager) holder(name string) *model.Row {
	if !m.Enabled() || name == "" {
		return nil
	}
	for _, row := range m.rows {
		if row.FieldName == name {
			return row
		}
	}
	return nil
}

func (m *Manager) heldNames() map[string]model.RowID {
	held := make(map[string]model.RowID, len(m.rows))
	for _, row := range m.rows {
		if row.FieldName != "" {
			held[row.FieldName] = row.ID
		}
	}
	return held
}

func (m *Manager) mintID() model.RowID {
	candidate := ""
	if m.newID != nil {
		candidate = m.newID()
	} else if id, err := idgen.Generate(defaultRowIDPrefix); err == nil {
		candidate = id
	}
	for candidate == "" || m.byID[model.RowID(candidate)] != nil {
		m.seq++
		candidate = defaultFallbackRowID + strconv.Itoa(m.seq)
	}
	return model.RowID(candidate)
}

func mergeExisting(existing map[string]string, raw string) (map[string]string, error) {
	merged := make(map[string]string, len(existing))
	for name, value := range existing {
		if name = strings.TrimSpace(name); name != "" {
			merged[name] = value
		}
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return merged, nil
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("extrafields: decode existing values: %w", err)
	}
	for name, value := range decoded {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		merged[name] = model.Stringify(value)
	}
	return merged, nil
}
