// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"codeberg.org/noambuilds/site/internal/i18n"
	"codeberg.org/noambuilds/site/internal/templates"
	"github.com/labstack/echo/v4"
)

// ErrorHandler replaces echo's default error handler. API routes get a JSON
// {error} body, pages get the 404 page or a plain status text.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request().Context(), "unhandled error", "error", err, "path", c.Path())
	}

	var respErr error
	switch {
	case strings.HasPrefix(c.Request().URL.Path, "/api/"):
		respErr = c.JSON(code, apiResponse{Error: apiErrorMessage(c, code)})
	case code == http.StatusNotFound:
		respErr = Render(c, http.StatusNotFound, templates.NotFound())
	default:
		respErr = c.String(code, http.StatusText(code))
	}
	if respErr != nil {
		slog.ErrorContext(c.Request().Context(), "writing error response", "error", respErr)
	}
}

func apiErrorMessage(c echo.Context, code int) string {
	ctx := c.Request().Context()
	switch code {
	case http.StatusTooManyRequests:
		return i18n.T(ctx, "error_rate_limited")
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return i18n.T(ctx, "error_invalid_request")
	default:
		if text := http.StatusText(code); code < http.StatusInternalServerError && text != "" {
			return text
		}
		return i18n.T(ctx, "error_generic")
	}
}
