// Package docs generates the markdown CLI reference.
//
// Run: go generate ./docs/...
package docs

//go:generate go run gen_docs.go cli
