package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching page state.
type RenderOptions struct {
	// Action is the form submission target. Empty renders a fragment without
	// the surrounding <form> element.
	Action string
	// Method is the submission method; defaults to POST when Action is set.
	Method string
	// Hidden adds request-scoped hidden inputs such as CSRF tokens.
	Hidden []HiddenField
}
