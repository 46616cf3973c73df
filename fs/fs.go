// Package appfs embeds the files the binaries need at runtime.
package appfs

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql public templates
var FS embed.FS

// Public holds the browser client served at "/".
var Public = mustSub("public")

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(FS, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
