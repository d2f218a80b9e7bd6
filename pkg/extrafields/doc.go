// Package extrafields manages an open-ended list of name/value rows whose names
// come from a shared catalog. A name held by one row is disabled in every other
// row's selector, so no two rows ever commit to the same field. Rows can be
// created interactively through the page's add control or programmatically by
// seeding and autofill.
//
// Row life cycle:
//
//	Unbound --(select name)--> Bound(name) --(select "")--> Unbound
//	Unbound | Bound --(remove)--> Removed
package extrafields
