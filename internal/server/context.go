// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package server

import (
	"context"

	"codeberg.org/noambuilds/site/internal/ctxkeys"
	"github.com/labstack/echo/v4"
)

// csrfToContext copies the CSRF token to the request context.
func csrfToContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, ok := c.Get("csrf").(string); ok {
				ctx := context.WithValue(c.Request().Context(), ctxkeys.CSRFToken{}, token)
				c.SetRequest(c.Request().WithContext(ctx))
			}
			return next(c)
		}
	}
}

// assetsToContext puts the asset paths into the request context for templates.
func assetsToContext(a *Assets) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, ctxkeys.CSSPath{}, a.CSSPath)
			ctx = context.WithValue(ctx, ctxkeys.JSPath{}, a.JSPath)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
