// Package fieldsync composes form pages out of three widgets that keep a
// form's submitted values consistent with what the user picked:
//
//   - chips.Selector turns picks from a bounded option list into removable
//     chips mirrored by hidden inputs.
//   - extrafields.Manager keeps an open-ended list of name/value rows whose
//     names come from a shared catalog, never letting two rows hold the same
//     name.
//   - autofill.Bridge fills static inputs and extra rows from a remote
//     metadata lookup.
//
// Build mounts the widgets described by a config.Page onto a page.Page and
// returns a Form handle; rendering and submission are projections of the
// page state.
package fieldsync
