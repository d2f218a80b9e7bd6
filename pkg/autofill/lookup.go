package autofill

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-fieldsync/pkg/model"
)

// ErrEmptyIdentifier is returned when a fetch is attempted without an
// identifier.
var ErrEmptyIdentifier = errors.New("autofill: identifier is required")

// Lookup resolves an identifier to a field name to value mapping.
type Lookup interface {
	Lookup(ctx context.Context, identifier string) (map[string]string, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, identifier string) (map[string]string, error)

func (fn LookupFunc) Lookup(ctx context.Context, identifier string) (map[string]string, error) {
	return fn(ctx, identifier)
}

// LookupError is a failed lookup. Message carries the server's error text
// when it sent one.
type LookupError struct {
	Status  int
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	case e.Status > 0:
		return fmt.Sprintf("autofill: lookup failed with status %d", e.Status)
	default:
		return "autofill: lookup failed"
	}
}

func (e *LookupError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status of the failed response, or 502 when the
// request never produced one.
func (e *LookupError) StatusCode() int {
	if e.Status <= 0 {
		return http.StatusBadGateway
	}
	return e.Status
}

type lookupResponse struct {
	Fields map[string]any `json:"fields"`
	Error  string         `json:"error,omitempty"`
}

// HTTPLookup posts {"<param>": identifier} as JSON to Endpoint.
type HTTPLookup struct {
	Endpoint string
	Param    string
	Client   *http.Client
}

// NewHTTPLookup builds the lookup described by opts.
func NewHTTPLookup(opts Options) *HTTPLookup {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &HTTPLookup{
		Endpoint: opts.Endpoint,
		Param:    orDefault(opts.Param, DefaultParam),
		Client:   client,
	}
}

func (l *HTTPLookup) Lookup(ctx context.Context, identifier string) (map[string]string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrEmptyIdentifier
	}
	body, err := json.Marshal(map[string]string{l.Param: identifier})
	if err != nil {
		return nil, fmt.Errorf("autofill: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &LookupError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &LookupError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &LookupError{Status: resp.StatusCode, Err: err}
	}

	var decoded lookupResponse
	decodeErr := json.Unmarshal(raw, &decoded)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LookupError{Status: resp.StatusCode, Message: strings.TrimSpace(decoded.Error)}
	}
	if decodeErr != nil {
		return nil, &LookupError{Status: resp.StatusCode, Err: fmt.Errorf("autofill: decode response: %w", decodeErr)}
	}
	return stringifyFields(decoded.Fields), nil
}

func stringifyFields(fields map[string]any) map[string]string {
	out := make(map[string]string, len(fields))
	for name, value := range fields {
		out[name] = model.Stringify(value)
	}
	return out
}
