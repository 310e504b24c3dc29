// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

//go:build dev

// Package assets serves static files straight from the filesystem in development.
package assets

import (
	"net/http"
)

// HtmxURL is the pinned htmx build loaded ahead of the site script.
const HtmxURL = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.js"

// CSSPath returns the path to the main CSS file (unhashed in dev mode).
func CSSPath() string {
	return "/static/css/styles.css"
}

// JSPath returns the path to the site script (unhashed in dev mode).
func JSPath() string {
	return "/static/js/app.js"
}

// FileServer returns an http.Handler that serves static files from the filesystem.
func FileServer() http.Handler {
	return http.FileServer(http.Dir("internal/assets/static"))
}
