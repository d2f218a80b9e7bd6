package model

import "strings"

// Option is one selectable entry of a Catalog.
type Option struct {
	Value string `json:"value" yaml:"value" toml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
}

// DisplayLabel returns the label shown to users, falling back to the value.
func (o Option) DisplayLabel() string {
	if label := strings.TrimSpace(o.Label); label != "" {
		return label
	}
	return o.Value
}

// Chip is the visible token of one consumed Option.
type Chip struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

// HiddenValue mirrors a Chip as a submitted form value.
type HiddenValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RowID identifies an extra-field row for the lifetime of a page.
type RowID string

// Row is one name/value pair of the extra-fields set. An empty FieldName means
// the row is unbound.
type Row struct {
	ID        RowID  `json:"id"`
	FieldName string `json:"fieldName,omitempty"`
	Value     string `json:"value"`
}

// Bound reports whether the row has committed to a catalog name.
func (r Row) Bound() bool {
	return r.FieldName != ""
}

// OptionState is an Option as seen from one selector: whether it can be
// picked there and whether that selector currently holds it.
type OptionState struct {
	Option
	Disabled bool `json:"disabled,omitempty"`
	Selected bool `json:"selected,omitempty"`
}
