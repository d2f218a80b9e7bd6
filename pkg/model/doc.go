// Package model defines the UI-state types shared by the field-set widgets:
// catalog Options, the Chips and HiddenValues a chip selector keeps in lockstep,
// and the named Rows of the extra-fields manager. None of these types are
// persisted; they are inspectable snapshots of what a page currently shows and
// submits. Rendering packages project them into HTML, and tests assert the
// widget invariants against them directly.
package model
