// Package page provides the document primitives the field-set widgets bind to:
// a registry of element ids, static form inputs, row templates, status text,
// and explicit change/click handler registration keyed by element id.
//
// A Page behaves like a single-threaded UI runtime. Change, Click and Do run
// their callbacks to completion while holding the page's event lock, so no two
// handlers ever interleave. Callbacks must not re-enter Change, Click or Do.
// The remaining methods are meant to be called from inside a handler, or from
// one goroutine while no events are being dispatched.
package page
