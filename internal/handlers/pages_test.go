// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package handlers_test

import (
	"net/http"
	"testing"

	"codeberg.org/noambuilds/site/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPages(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name     string
		handler  echo.HandlerFunc
		path     string
		contains string
	}{
		{"home", f.h.Home, "/", "Featured apps"},
		{"apps", f.h.Apps, "/apps", "PanicPoll"},
		{"projects", f.h.Projects, "/projects", "2D Platformer Engine"},
		{"about", f.h.About, "/about", "indie developer"},
		{"contact", f.h.ContactPage, "/contact", `hx-post="/api/contact"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := testutil.NewEchoContext(f.e, http.MethodGet, tt.path, nil)

			require.NoError(t, tt.handler(c))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "<!doctype html>")
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestHome_ErrorNotices(t *testing.T) {
	f := setup(t)

	tests := []struct {
		query    string
		contains string
	}{
		{"?error=invalid_token", "That confirmation link is invalid"},
		{"?error=confirm_failed", "Please try the link again."},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, rec := testutil.NewEchoContext(f.e, http.MethodGet, "/"+tt.query, nil)

			require.NoError(t, f.h.Home(c))

			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestApp(t *testing.T) {
	f := setup(t)
	c, rec := testutil.NewEchoContext(f.e, http.MethodGet, "/apps/nudgeme?confirmed=1&utm_source=newsletter", nil)
	c.SetParamNames("slug")
	c.SetParamValues("nudgeme")

	require.NoError(t, f.h.App(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "NudgeMe")
	assert.Contains(t, body, "let you know when it launches")
	assert.Contains(t, body, `name="utm_source" value="newsletter"`)
}

func TestApp_AlreadyConfirmedNotice(t *testing.T) {
	f := setup(t)
	c, rec := testutil.NewEchoContext(f.e, http.MethodGet, "/apps/panic-poll?confirmed=already", nil)
	c.SetParamNames("slug")
	c.SetParamValues("panic-poll")

	require.NoError(t, f.h.App(c))

	assert.Contains(t, rec.Body.String(), "already confirmed for this waitlist")
}

func TestApp_NotFound(t *testing.T) {
	f := setup(t)
	c, rec := testutil.NewEchoContext(f.e, http.MethodGet, "/apps/missing", nil)
	c.SetParamNames("slug")
	c.SetParamValues("missing")

	require.NoError(t, f.h.App(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestProject(t *testing.T) {
	f := setup(t)
	c, rec := testutil.NewEchoContext(f.e, http.MethodGet, "/projects/nudgeme", nil)
	c.SetParamNames("slug")
	c.SetParamValues("nudgeme")

	require.NoError(t, f.h.Project(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<h4 class="md-subheading">Core Features:</h4>`)
}

func TestProject_NotFound(t *testing.T) {
	f := setup(t)
	c, rec := testutil.NewEchoContext(f.e, http.MethodGet, "/projects/missing", nil)
	c.SetParamNames("slug")
	c.SetParamValues("missing")

	require.NoError(t, f.h.Project(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRobots(t *testing.T) {
	f := setup(t)
	c, rec := testutil.NewEchoContext(f.e, http.MethodGet, "/robots.txt", nil)

	require.NoError(t, f.h.Robots(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User-agent: *\nAllow: /")
	assert.Contains(t, rec.Body.String(), "Sitemap: https://noambuilds.com/sitemap.xml")
}

func TestSitemap(t *testing.T) {
	f := setup(t)
	c, rec := testutil.NewEchoContext(f.e, http.MethodGet, "/sitemap.xml", nil)

	require.NoError(t, f.h.Sitemap(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/xml")
	body := rec.Body.String()
	assert.Contains(t, body, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, body, "<loc>https://noambuilds.com</loc>")
	assert.Contains(t, body, "<loc>https://noambuilds.com/apps/nudgeme</loc>")
	assert.Contains(t, body, "<loc>https://noambuilds.com/projects/platformer</loc>")
	assert.Contains(t, body, "<priority>1</priority>")
	assert.Contains(t, body, "<priority>0.6</priority>")
}
