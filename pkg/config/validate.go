package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

func (p *Page) normalize() {
	elements := make([]string, 0, len(p.Elements))
	for _, id := range p.Elements {
		if id = strings.TrimSpace(id); id != "" && !slices.Contains(elements, id) {
			elements = append(elements, id)
		}
	}
	p.Elements = elements
	for i := range p.Inputs {
		p.Inputs[i].ID = strings.TrimSpace(p.Inputs[i].ID)
		p.Inputs[i].Name = strings.TrimSpace(p.Inputs[i].Name)
	}
	if p.Templates == nil {
		p.Templates = map[string]string{}
	}
	p.Logging.Level = strings.ToLower(strings.TrimSpace(p.Logging.Level))
	p.Logging.Format = strings.ToLower(strings.TrimSpace(p.Logging.Format))
	if p.Logging.Level == "" {
		p.Logging.Level = "info"
	}
	if p.Logging.Format == "" {
		p.Logging.Format = "text"
	}
}

// Validate reports structural problems with the document itself. Widgets
// referring to ids that are not on the page are not errors: those widgets
// are simply disabled when mounted.
func (p *Page) Validate() error {
	var errs []error
	seen := make(map[string]struct{}, len(p.Inputs))
	for idx, in := range p.Inputs {
		id := in.ID
		if id == "" {
			id = in.Name
		}
		if id == "" {
			errs = append(errs, fmt.Errorf("inputs[%d]: id or name is required", idx))
			continue
		}
		if _, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("inputs[%d]: duplicate id %q", idx, id))
		}
		seen[id] = struct{}{}
	}
	for id := range p.Templates {
		if strings.TrimSpace(id) == "" {
			errs = append(errs, errors.New("templates: blank template id"))
		}
	}
	if p.Autofill != nil {
		if _, err := p.Autofill.TimeoutDuration(); err != nil {
			errs = append(errs, err)
		}
	}
	switch p.Logging.Format {
	case "text", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging format %q: expected text or json", p.Logging.Format))
	}
	switch p.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("logging level %q: expected debug, info, warn or error", p.Logging.Level))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid page: %w", err)
	}
	return nil
}
