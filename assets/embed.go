// Package assets holds files compiled into the binary: the default word
// catalog and the SQLite migrations.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed wordles.json sql/*.sql
var FS embed.FS

// Catalog returns the raw embedded catalog JSON.
func Catalog() ([]byte, error) {
	return FS.ReadFile("wordles.json")
}

// Migrations returns the embedded migrations rooted at the sql directory.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "sql")
}
