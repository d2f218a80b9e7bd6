// Package template defines the seam renderers use to expand page-supplied
// markup such as the extra-fields row template. The gotemplate subpackage
// provides the pongo2-backed implementation.
package template
