// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package server

import (
	"net/http"

	"codeberg.org/noambuilds/site/internal/assets"
	"codeberg.org/noambuilds/site/internal/config"
	"codeberg.org/noambuilds/site/internal/handlers"
	"github.com/labstack/echo/v4"
)

func setupRoutes(e *echo.Echo, cfg *config.Config, h *handlers.Handlers) {
	// Static files
	e.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", assets.FileServer())))

	e.GET("/health", h.Health)
	e.GET("/robots.txt", h.Robots)
	e.GET("/sitemap.xml", h.Sitemap)

	// Pages
	e.GET("/", h.Home)
	e.GET("/apps", h.Apps)
	e.GET("/apps/:slug", h.App)
	e.GET("/projects", h.Projects)
	e.GET("/projects/:slug", h.Project)
	e.GET("/about", h.About)
	e.GET("/contact", h.ContactPage)

	// Confirmation emails link here.
	e.GET("/confirm", h.WaitlistConfirm)

	// API, rate limited per client IP
	api := e.Group("/api", rateLimiter(cfg.RateLimit))
	api.POST("/waitlist/signup", h.WaitlistSignup)
	api.GET("/waitlist/confirm", h.WaitlistConfirm)
	api.POST("/contact", h.Contact)

	e.RouteNotFound("/*", h.NotFound)
}
