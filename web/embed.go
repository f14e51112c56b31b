// Package web carries the server-rendered pages and their static assets.
package web

import (
	"embed"
	"io/fs"
)

// Templates holds layouts, partials and pages under templates/.
//
//go:embed templates/layouts/*.html templates/partials/*.html templates/pages/*.html
var Templates embed.FS

//go:embed static/css static/js
var static embed.FS

// Static returns the asset tree rooted at static/, as served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
