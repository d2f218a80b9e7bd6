package autofill

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Default element ids, endpoint and request key.
const (
	DefaultInputID  = "doi_input"
	DefaultButtonID = "doi_fetch"
	DefaultStatusID = "doi_status"
	DefaultEndpoint = "/doi_lookup"
	DefaultParam    = "doi"
	DefaultTimeout  = 15 * time.Second
)

// Options configures a Bridge and its default HTTP lookup.
type Options struct {
	InputID  string
	ButtonID string
	StatusID string

	Endpoint string
	Param    string
	Timeout  time.Duration
	Client   *http.Client

	// Lookup replaces the HTTP lookup built from Endpoint and Param.
	Lookup Lookup
	Logger *slog.Logger
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// DefaultOptions returns the stock element ids and endpoint.
func DefaultOptions() Options {
	return Options{
		InputID:  DefaultInputID,
		ButtonID: DefaultButtonID,
		StatusID: DefaultStatusID,
		Endpoint: DefaultEndpoint,
		Param:    DefaultParam,
		Timeout:  DefaultTimeout,
	}
}

// NewOptions applies fns over the defaults and fills any field left blank.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	defaults := DefaultOptions()
	opts.InputID = orDefault(opts.InputID, defaults.InputID)
	opts.ButtonID = orDefault(opts.ButtonID, defaults.ButtonID)
	opts.StatusID = orDefault(opts.StatusID, defaults.StatusID)
	opts.Endpoint = orDefault(opts.Endpoint, defaults.Endpoint)
	opts.Param = orDefault(opts.Param, defaults.Param)
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}
	return opts
}

// WithElements overrides the identifier input, fetch button and status ids.
// Blank arguments keep the current value.
func WithElements(inputID, buttonID, statusID string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if inputID != "" {
			o.InputID = inputID
		}
		if buttonID != "" {
			o.ButtonID = buttonID
		}
		if statusID != "" {
			o.StatusID = statusID
		}
	}
}

// WithEndpoint sets the lookup URL. Blank restores DefaultEndpoint.
func WithEndpoint(endpoint string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Endpoint = endpoint
	}
}

// WithParam sets the request body key that carries the identifier.
func WithParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Param = name
	}
}

// WithTimeout bounds each lookup. Non-positive values restore DefaultTimeout.
func WithTimeout(timeout time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Timeout = timeout
	}
}

// WithHTTPClient sets the client used by the default HTTP lookup.
func WithHTTPClient(client *http.Client) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Client = client
	}
}

// WithLookup replaces the HTTP lookup entirely.
func WithLookup(lookup Lookup) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Lookup = lookup
	}
}

// WithLogger sets the operator logger.
func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
