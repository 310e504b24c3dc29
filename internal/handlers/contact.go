// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"codeberg.org/noambuilds/site/internal/i18n"
	"codeberg.org/noambuilds/site/internal/services/email"
	"codeberg.org/noambuilds/site/internal/validate"
	"github.com/labstack/echo/v4"
)

type contactRequest struct {
	Name    string `json:"name" form:"name" validate:"required,max=100"`
	Email   string `json:"email" form:"email" validate:"required,basic_email"`
	Message string `json:"message" form:"message" validate:"required,max=5000"`
}

// Contact handles POST /api/contact.
func (h *Handlers) Contact(c echo.Context) error {
	ctx := c.Request().Context()

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, apiResponse{Error: i18n.T(ctx, "error_invalid_request")})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if err := c.Validate(&req); err != nil {
		return respond(c, http.StatusBadRequest, apiResponse{Error: i18n.T(ctx, contactErrorID(err))})
	}

	err := h.mailer.SendContactMessage(ctx, h.cfg.Contact.Recipient, email.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		slog.ErrorContext(ctx, "contact message failed", "error", err)
		return respond(c, http.StatusInternalServerError, apiResponse{Error: i18n.T(ctx, "contact_error_send_failed")})
	}

	slog.InfoContext(ctx, "contact message sent")
	return respond(c, http.StatusOK, apiResponse{Message: i18n.T(ctx, "contact_success"), Success: true})
}

func contactErrorID(err error) string {
	switch {
	case validate.Failed(err, "", "required"):
		return "contact_error_required"
	case validate.Failed(err, "email", "basic_email"):
		return "contact_error_invalid_email"
	case validate.Failed(err, "name", "max"):
		return "contact_error_name_too_long"
	case validate.Failed(err, "message", "max"):
		return "contact_error_message_too_long"
	default:
		return "error_invalid_request"
	}
}
