package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-fieldsync/pkg/autofill"
	"github.com/goliatone/go-fieldsync/pkg/chips"
	"github.com/goliatone/go-fieldsync/pkg/extrafields"
)

// Page is a page document.
type Page struct {
	// Elements lists ids present in the page markup besides inputs and
	// templates (containers, buttons, status elements).
	Elements  []string          `json:"elements" yaml:"elements" toml:"elements"`
	Inputs    []Input           `json:"inputs" yaml:"inputs" toml:"inputs"`
	Templates map[string]string `json:"templates" yaml:"templates" toml:"templates"`

	Chips       []chips.Config      `json:"chips,omitempty" yaml:"chips,omitempty" toml:"chips,omitempty"`
	ExtraFields *extrafields.Config `json:"extra_fields,omitempty" yaml:"extra_fields,omitempty" toml:"extra_fields,omitempty"`
	Autofill    *Autofill           `json:"autofill,omitempty" yaml:"autofill,omitempty" toml:"autofill,omitempty"`

	Logging Logging `json:"logging" yaml:"logging" toml:"logging"`
}

// Input is a static input of the page.
type Input struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
}

// Autofill configures the lookup bridge. Blank fields take the bridge
// defaults.
type Autofill struct {
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" toml:"endpoint,omitempty"`
	Param    string `json:"param,omitempty" yaml:"param,omitempty" toml:"param,omitempty"`
	InputID  string `json:"input_id,omitempty" yaml:"input_id,omitempty" toml:"input_id,omitempty"`
	ButtonID string `json:"button_id,omitempty" yaml:"button_id,omitempty" toml:"button_id,omitempty"`
	StatusID string `json:"status_id,omitempty" yaml:"status_id,omitempty" toml:"status_id,omitempty"`
	// Timeout is a Go duration string such as "10s".
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty" toml:"timeout,omitempty"`
}

// Logging selects the log level and format.
type Logging struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty" toml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`
}

// Default returns an empty page document with default logging.
func Default() Page {
	return Page{
		Templates: map[string]string{},
		Logging:   Logging{Level: "info", Format: "text"},
	}
}

// TimeoutDuration parses Timeout, returning zero when it is blank.
func (a Autofill) TimeoutDuration() (time.Duration, error) {
	raw := strings.TrimSpace(a.Timeout)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("autofill timeout %q: %w", a.Timeout, err)
	}
	return d, nil
}

// Options converts the section into bridge options.
func (a Autofill) Options() ([]autofill.OptionFn, error) {
	timeout, err := a.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	opts := []autofill.OptionFn{autofill.WithElements(a.InputID, a.ButtonID, a.StatusID)}
	if a.Endpoint != "" {
		opts = append(opts, autofill.WithEndpoint(a.Endpoint))
	}
	if a.Param != "" {
		opts = append(opts, autofill.WithParam(a.Param))
	}
	if timeout > 0 {
		opts = append(opts, autofill.WithTimeout(timeout))
	}
	return opts, nil
}
