// Package chips implements the chip-based multi-select widget. A Selector
// promotes Options from its source list into removable chips, mirrors each
// chip as a hidden form value, and demotes the Option back when the chip is
// removed. Chips are keyed by value, so a value can never be consumed twice.
package chips
