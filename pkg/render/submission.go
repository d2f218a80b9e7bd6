package render

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-fieldsync/pkg/page"
)

// HiddenField represents a hidden form input emitted alongside the page
// widgets. Use the helpers (CSRFToken, VersionField) to add common fields
// without repeating boilerplate.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs a hidden field carrying the provided token. Callers
// supply the input name to match their backend expectations (for example,
// "_csrf" or "csrf_token").
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// VersionField constructs a hidden field used for optimistic locking.
func VersionField(name string, version any) HiddenField {
	return Hidden(name, version)
}

// Submitter is implemented by widgets that contribute form values.
type Submitter interface {
	Submit(values url.Values)
}

// Submission returns the values a browser would submit for the page: static
// inputs in declaration order, then each mounted widget's values, then the
// extra hidden fields. Hidden fields with empty names are dropped.
func Submission(p *page.Page, hidden ...HiddenField) url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}
	for _, in := range p.Inputs() {
		if in.Name == "" {
			continue
		}
		values.Add(in.Name, in.Value)
	}
	for _, widget := range p.Widgets() {
		if submitter, ok := widget.(Submitter); ok {
			submitter.Submit(values)
		}
	}
	for _, field := range hidden {
		if name := strings.TrimSpace(field.Name); name != "" {
			values.Add(name, field.Value)
		}
	}
	return values
}
