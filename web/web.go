// Package web embeds the browser client served by notes-api.
package web

import (
	"embed"
	"net/http"
)

//go:embed index.html style.css app.js
var assets embed.FS

func FS() http.FileSystem {
	return http.FS(assets)
}
