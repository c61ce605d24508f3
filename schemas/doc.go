// Package schemas holds the generated JSON schema of playctl.yaml.
//
// Run: go generate ./schemas/...
package schemas

//go:generate go run gen_schema.go playctl.schema.json
