// Package config loads page documents: the elements, static inputs and
// templates present on a page plus the widgets to mount on it. Documents are
// YAML, TOML or JSON, chosen by file extension.
package config
