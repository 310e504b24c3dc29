// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package server

import (
	"log/slog"

	"codeberg.org/noambuilds/site/internal/assets"
)

// Assets holds the resolved static asset paths.
type Assets struct {
	CSSPath string
	JSPath  string
}

// findAssets returns asset paths from the embedded manifest.
func findAssets() *Assets {
	a := &Assets{
		CSSPath: assets.CSSPath(),
		JSPath:  assets.JSPath(),
	}
	slog.Debug("assets loaded", "css", a.CSSPath, "js", a.JSPath)
	return a
}
