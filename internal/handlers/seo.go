// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"codeberg.org/noambuilds/site/internal/content"
	"github.com/labstack/echo/v4"
)

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Robots serves robots.txt allowing all crawlers.
func (h *Handlers) Robots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", h.cfg.SiteURL())
	return c.String(http.StatusOK, body)
}

// Sitemap serves sitemap.xml with the static pages and every app and project.
func (h *Handlers) Sitemap(c echo.Context) error {
	base := h.cfg.SiteURL()
	today := time.Now().UTC().Format(time.DateOnly)

	entry := func(path, freq string, priority float64) sitemapURL {
		return sitemapURL{Loc: base + path, LastMod: today, ChangeFreq: freq, Priority: priority}
	}

	urls := []sitemapURL{
		entry("", "weekly", 1.0),
		entry("/apps", "weekly", 0.8),
		entry("/projects", "weekly", 0.8),
		entry("/about", "monthly", 0.5),
		entry("/contact", "monthly", 0.5),
	}
	for _, app := range content.AllApps() {
		urls = append(urls, entry("/apps/"+app.ID, "weekly", 0.6))
	}
	for _, project := range content.AllProjects() {
		urls = append(urls, entry("/projects/"+project.ID, "monthly", 0.6))
	}

	out, err := xml.MarshalIndent(urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}, "", "  ")
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, echo.MIMEApplicationXMLCharsetUTF8, append([]byte(xml.Header), out...))
}
