package model

import "strings"

// Catalog is the fixed, ordered set of Options a selector may offer. Values
// are unique; the empty value is reserved for the placeholder and never part
// of a catalog.
type Catalog struct {
	options []Option
	index   map[string]int
}

// NewCatalog normalises the provided options: values are trimmed, empty values
// dropped and later duplicates ignored so the first label wins.
func NewCatalog(options ...Option) Catalog {
	catalog := Catalog{index: make(map[string]int, len(options))}
	for _, option := range options {
		value := strings.TrimSpace(option.Value)
		if value == "" {
			continue
		}
		if _, exists := catalog.index[value]; exists {
			continue
		}
		catalog.index[value] = len(catalog.options)
		catalog.options = append(catalog.options, Option{
			Value: value,
			Label: strings.TrimSpace(option.Label),
		})
	}
	return catalog
}

// CatalogFromValues builds a catalog whose labels equal their values.
func CatalogFromValues(values ...string) Catalog {
	options := make([]Option, 0, len(values))
	for _, value := range values {
		options = append(options, Option{Value: value})
	}
	return NewCatalog(options...)
}

// Len returns the number of options.
func (c Catalog) Len() int {
	return len(c.options)
}

// Options returns a copy of the options in catalog order.
func (c Catalog) Options() []Option {
	if len(c.options) == 0 {
		return nil
	}
	out := make([]Option, len(c.options))
	copy(out, c.options)
	return out
}

// Values returns the option values in catalog order.
func (c Catalog) Values() []string {
	if len(c.options) == 0 {
		return nil
	}
	out := make([]string, 0, len(c.options))
	for _, option := range c.options {
		out = append(out, option.Value)
	}
	return out
}

// Has reports whether value belongs to the catalog.
func (c Catalog) Has(value string) bool {
	_, ok := c.index[value]
	return ok
}

// Lookup returns the option registered for value.
func (c Catalog) Lookup(value string) (Option, bool) {
	idx, ok := c.index[value]
	if !ok {
		return Option{}, false
	}
	return c.options[idx], true
}

// With returns a copy of the catalog extended by options. Values already
// present keep their original position and label.
func (c Catalog) With(options ...Option) Catalog {
	return NewCatalog(append(c.Options(), options...)...)
}
