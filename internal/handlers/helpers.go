// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"codeberg.org/noambuilds/site/internal/htmx"
	"codeberg.org/noambuilds/site/internal/templates"
	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render renders a templ component with the given status code.
func Render(c echo.Context, statusCode int, component templ.Component) error {
	buf := templ.GetBuffer()
	defer templ.ReleaseBuffer(buf)

	if err := component.Render(c.Request().Context(), buf); err != nil {
		return err
	}

	return c.HTML(statusCode, buf.String())
}

// apiResponse is the JSON body of the /api endpoints.
type apiResponse struct {
	Message          string `json:"message,omitempty"`
	Error            string `json:"error,omitempty"`
	Success          bool   `json:"success,omitempty"`
	Resent           bool   `json:"resent,omitempty"`
	AlreadyConfirmed bool   `json:"alreadyConfirmed,omitempty"`
}

// respond writes body as JSON, or as a result fragment for htmx requests.
// htmx does not swap error responses, so fragments are always sent with 200.
func respond(c echo.Context, status int, body apiResponse) error {
	if htmx.ParseRequest(c.Request()).IsHtmx {
		if body.Error != "" {
			htmx.Trigger(c.Response().Header(), htmx.EventFormError)
			return Render(c, http.StatusOK, templates.FormResult(false, body.Error))
		}
		htmx.Trigger(c.Response().Header(), htmx.EventFormSuccess)
		return Render(c, http.StatusOK, templates.FormResult(true, body.Message))
	}
	return c.JSON(status, body)
}
