package extrafields

import (
	"errors"
	"strings"

	"github.com/goliatone/go-fieldsync/pkg/model"
)

// WidgetName identifies the extra-fields manager among mounted page widgets.
const WidgetName = "extra-fields"

// PlaceholderInputName is the submitted name of an unbound row's value input.
const PlaceholderInputName = "additional_field_value"

// Default element ids and marker classes.
const (
	DefaultContainerID   = "extra_fields_container"
	DefaultTemplateID    = "extra_row_template"
	DefaultAddButtonID   = "add_extra"
	DefaultSelectClass   = "extra-select"
	DefaultInputClass    = "extra-input"
	DefaultRemoveClass   = "remove-extra"
	defaultRowIDPrefix   = "extra-row-"
	defaultFallbackRowID = "extra-row-seq-"
)

var (
	// ErrUnknownRow is returned for operations on a row that does not exist.
	ErrUnknownRow = errors.New("extrafields: unknown row")
	// ErrUnknownField is returned when a name is not part of the catalog.
	ErrUnknownField = errors.New("extrafields: field is not in the catalog")
	// ErrFieldUnavailable is returned when another row already holds the name.
	ErrFieldUnavailable = errors.New("extrafields: field is held by another row")
	// ErrTemplateIncomplete is returned when the row template lacks one of its
	// name-selector, value-input or remove controls.
	ErrTemplateIncomplete = errors.New("extrafields: row template incomplete")
)

// Config names the page elements the manager binds to and its seed data.
type Config struct {
	ContainerID string `json:"container_id" yaml:"container_id" toml:"container_id"`
	TemplateID  string `json:"template_id" yaml:"template_id" toml:"template_id"`
	AddButtonID string `json:"add_button_id" yaml:"add_button_id" toml:"add_button_id"`

	SelectClass string `json:"select_class" yaml:"select_class" toml:"select_class"`
	InputClass  string `json:"input_class" yaml:"input_class" toml:"input_class"`
	RemoveClass string `json:"remove_class" yaml:"remove_class" toml:"remove_class"`

	// Options is the catalog of legal field names.
	Options []model.Option `json:"options" yaml:"options" toml:"options"`
	// Existing seeds rows on mount, keyed by field name.
	Existing map[string]string `json:"existing,omitempty" yaml:"existing,omitempty" toml:"existing,omitempty"`
	// ExistingJSON is a raw JSON object merged into Existing before seeding.
	ExistingJSON string `json:"existing_json,omitempty" yaml:"existing_json,omitempty" toml:"existing_json,omitempty"`
	// DefaultFields are rendered statically and never seeded as rows.
	DefaultFields []string `json:"default_fields,omitempty" yaml:"default_fields,omitempty" toml:"default_fields,omitempty"`
	// AutoAddIfEmpty adds one empty row when nothing was seeded.
	AutoAddIfEmpty bool `json:"auto_add_if_empty" yaml:"auto_add_if_empty" toml:"auto_add_if_empty"`
}

func normalizeConfig(cfg Config) Config {
	cfg.ContainerID = withDefault(cfg.ContainerID, DefaultContainerID)
	cfg.TemplateID = withDefault(cfg.TemplateID, DefaultTemplateID)
	cfg.AddButtonID = withDefault(cfg.AddButtonID, DefaultAddButtonID)
	cfg.SelectClass = withDefault(cfg.SelectClass, DefaultSelectClass)
	cfg.InputClass = withDefault(cfg.InputClass, DefaultInputClass)
	cfg.RemoveClass = withDefault(cfg.RemoveClass, DefaultRemoveClass)
	return cfg
}

func withDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
