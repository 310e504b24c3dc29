// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package handlers

import (
	"context"
	"net/http"

	"codeberg.org/noambuilds/site/internal/config"
	"codeberg.org/noambuilds/site/internal/repository"
	"codeberg.org/noambuilds/site/internal/services/email"
	"codeberg.org/noambuilds/site/internal/services/waitlist"
	"github.com/labstack/echo/v4"
)

// ContactMailer forwards contact form submissions.
type ContactMailer interface {
	SendContactMessage(ctx context.Context, to string, msg email.ContactMessage) error
}

// Handlers contains all HTTP handlers.
type Handlers struct {
	repo     *repository.Repository
	waitlist *waitlist.Service
	mailer   ContactMailer
	cfg      *config.Config
}

// New creates a new Handlers instance.
func New(repo *repository.Repository, waitlistSvc *waitlist.Service, mailer ContactMailer, cfg *config.Config) *Handlers {
	return &Handlers{
		repo:     repo,
		waitlist: waitlistSvc,
		mailer:   mailer,
		cfg:      cfg,
	}
}

// Health reports whether the database is reachable.
func (h *Handlers) Health(c echo.Context) error {
	if err := h.repo.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
