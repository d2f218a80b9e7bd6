// Command fieldsync renders, inspects and interactively edits form pages
// described by a YAML, TOML or JSON page document.
//
//	fieldsync render  -c page.yaml [--renderer vanilla|snapshot]
//	fieldsync inspect -c page.yaml
//	fieldsync session -c page.yaml
//	fieldsync autofill -c page.yaml 10.1000/xyz
//	fieldsync lookup-server --records records.yaml --addr :8080
package main
