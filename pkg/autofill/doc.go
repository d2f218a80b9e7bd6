// Package autofill turns a remote identifier lookup into form field
// assignments.
//
// A Bridge listens on the page's fetch button, reads the identifier input,
// asks a Lookup for a field to value mapping and applies every field: a static
// input with the field's name is set directly, anything else is handed to the
// extra-fields manager, which binds a new row (or updates the row already
// holding that name). Progress is reported on a status element as text plus a
// colour cue.
//
// HTTPLookup implements the remote contract: a JSON POST carrying the
// identifier, answered with {"fields": {...}} on success or {"error": "..."}
// on failure. Handler serves the same contract from an in-memory record set.
package autofill
