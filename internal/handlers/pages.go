// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"codeberg.org/noambuilds/site/internal/content"
	"codeberg.org/noambuilds/site/internal/templates"
	"github.com/labstack/echo/v4"
)

// Home renders the landing page. Failed confirmations land here with ?error=.
func (h *Handlers) Home(c echo.Context) error {
	var n *templates.Notice
	switch c.QueryParam("error") {
	case "invalid_token":
		n = &templates.Notice{MessageID: "waitlist_invalid_token_banner"}
	case "confirm_failed":
		n = &templates.Notice{MessageID: "waitlist_confirm_failed_banner"}
	}
	return Render(c, http.StatusOK, templates.Home(n))
}

// Apps renders the app index.
func (h *Handlers) Apps(c echo.Context) error {
	return Render(c, http.StatusOK, templates.Apps(content.AllApps()))
}

// App renders an app landing page. Successful confirmations land here with ?confirmed=.
func (h *Handlers) App(c echo.Context) error {
	app, ok := content.AppByID(c.Param("slug"))
	if !ok {
		return h.NotFound(c)
	}

	var n *templates.Notice
	switch c.QueryParam("confirmed") {
	case "1":
		n = &templates.Notice{Success: true, MessageID: "waitlist_confirmed_banner"}
	case "already":
		n = &templates.Notice{Success: true, MessageID: "waitlist_already_banner"}
	}

	utm := make(map[string]string)
	for _, key := range templates.UTMKeys {
		if v := c.QueryParam(key); v != "" {
			utm[key] = v
		}
	}

	return Render(c, http.StatusOK, templates.AppPage(app, n, utm))
}

// Projects renders the project index.
func (h *Handlers) Projects(c echo.Context) error {
	return Render(c, http.StatusOK, templates.Projects(content.AllProjects()))
}

// Project renders a project page.
func (h *Handlers) Project(c echo.Context) error {
	project, ok := content.ProjectByID(c.Param("slug"))
	if !ok {
		return h.NotFound(c)
	}
	return Render(c, http.StatusOK, templates.ProjectPage(project))
}

// About renders the about page.
func (h *Handlers) About(c echo.Context) error {
	return Render(c, http.StatusOK, templates.About())
}

// ContactPage renders the contact form.
func (h *Handlers) ContactPage(c echo.Context) error {
	return Render(c, http.StatusOK, templates.Contact())
}

// NotFound renders the 404 page.
func (h *Handlers) NotFound(c echo.Context) error {
	return Render(c, http.StatusNotFound, templates.NotFound())
}
