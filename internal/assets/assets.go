// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

//go:build !dev

// Package assets provides embedded static assets with content-hashed filenames.
package assets

import (
	"embed"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
)

// HtmxURL is the pinned htmx build loaded ahead of the site script.
const HtmxURL = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

//go:embed esbuild-meta.json
var metaData []byte

//go:embed static
var staticFS embed.FS

// esbuildMeta represents the esbuild metafile format.
type esbuildMeta struct {
	Outputs map[string]struct{} `json:"outputs"`
}

var (
	cssPath = "/static/css/styles.css"
	jsPath  = "/static/js/app.js"
)

func init() {
	cssPath, jsPath = resolvePaths(metaData, cssPath, jsPath)
	slog.Debug("loaded asset paths", "css", cssPath, "js", jsPath)
}

// resolvePaths picks the hashed CSS and JS outputs from an esbuild metafile,
// keeping the given defaults for anything the metafile does not list.
func resolvePaths(meta []byte, css, js string) (string, string) {
	if len(meta) == 0 {
		return css, js
	}

	var m esbuildMeta
	if err := json.Unmarshal(meta, &m); err != nil {
		slog.Error("failed to parse esbuild meta", "error", err)
		return css, js
	}

	// internal/assets/static/css/styles.abc12345.css -> /static/css/styles.abc12345.css
	for outputPath := range m.Outputs {
		idx := strings.Index(outputPath, "/static/")
		if idx < 0 {
			continue
		}
		urlPath := outputPath[idx:]
		switch {
		case strings.HasSuffix(urlPath, ".css"):
			css = urlPath
		case strings.HasSuffix(urlPath, ".js"):
			js = urlPath
		}
	}
	return css, js
}

// CSSPath returns the path to the main CSS file.
func CSSPath() string {
	return cssPath
}

// JSPath returns the path to the site script.
func JSPath() string {
	return jsPath
}

// FileServer returns an http.Handler that serves embedded static files.
func FileServer() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("failed to create sub filesystem: " + err.Error())
	}
	return http.FileServer(http.FS(sub))
}
