// Package deploy embeds the application manifest templates and the album seed data.
//
// templates/ holds the manifests applied by playctl, with ${VAR} placeholders filled from
// the Environment. manifests/ holds the same objects rendered with the default values
// for Argo CD to sync from Git.
package deploy

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.yaml
var templates embed.FS

//go:embed seed/albums.json
var seed []byte

// Templates returns the manifest templates keyed by file name.
func Templates() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}

	return sub
}

// Seed returns the default album seed data.
func Seed() []byte {
	return seed
}
