// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"codeberg.org/noambuilds/site/internal/i18n"
	"codeberg.org/noambuilds/site/internal/services/waitlist"
	"github.com/labstack/echo/v4"
)

// signupRequest accepts JSON ({"utm": {...}}) and form posts (flat utm_* fields).
type signupRequest struct {
	Email    string `json:"email" form:"email"`
	AppID    string `json:"appId" form:"appId"`
	Referrer string `json:"referrer" form:"referrer"`
	UTM      struct {
		Source   string `json:"source" form:"utm_source"`
		Medium   string `json:"medium" form:"utm_medium"`
		Campaign string `json:"campaign" form:"utm_campaign"`
		Content  string `json:"content" form:"utm_content"`
		Term     string `json:"term" form:"utm_term"`
	} `json:"utm"`
}

func (r *signupRequest) input() waitlist.SignupInput {
	return waitlist.SignupInput{
		Email:    r.Email,
		Product:  r.AppID,
		Referrer: r.Referrer,
		UTM: waitlist.UTM{
			Source:   r.UTM.Source,
			Medium:   r.UTM.Medium,
			Campaign: r.UTM.Campaign,
			Content:  r.UTM.Content,
			Term:     r.UTM.Term,
		},
	}
}

// WaitlistSignup handles POST /api/waitlist/signup.
func (h *Handlers) WaitlistSignup(c echo.Context) error {
	ctx := c.Request().Context()

	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, apiResponse{Error: i18n.T(ctx, "error_invalid_request")})
	}

	res, err := h.waitlist.Signup(ctx, req.input())
	if err != nil {
		var verr *waitlist.ValidationError
		switch {
		case errors.As(err, &verr):
			return respond(c, http.StatusBadRequest, apiResponse{Error: i18n.T(ctx, verr.MessageID)})
		case errors.Is(err, waitlist.ErrEmailDelivery):
			return respond(c, http.StatusInternalServerError, apiResponse{Error: i18n.T(ctx, "waitlist_error_email_failed")})
		default:
			slog.ErrorContext(ctx, "waitlist signup failed", "error", err)
			return respond(c, http.StatusInternalServerError, apiResponse{Error: i18n.T(ctx, "waitlist_error_save_failed")})
		}
	}

	switch res.Outcome {
	case waitlist.AlreadyConfirmed:
		return respond(c, http.StatusOK, apiResponse{Message: i18n.T(ctx, "waitlist_already_confirmed"), AlreadyConfirmed: true})
	case waitlist.Resent:
		return respond(c, http.StatusOK, apiResponse{Message: i18n.T(ctx, "waitlist_resent"), Resent: true})
	default:
		return respond(c, http.StatusOK, apiResponse{Message: i18n.T(ctx, "waitlist_created"), Success: true})
	}
}

// WaitlistConfirm handles the emailed confirmation link. It always redirects.
func (h *Handlers) WaitlistConfirm(c echo.Context) error {
	ctx := c.Request().Context()

	res, err := h.waitlist.Confirm(ctx, c.QueryParam("token"))
	if errors.Is(err, waitlist.ErrInvalidToken) {
		return c.Redirect(http.StatusFound, "/?error=invalid_token")
	}
	if err != nil {
		slog.ErrorContext(ctx, "waitlist confirmation failed", "error", err)
		return c.Redirect(http.StatusFound, "/?error=confirm_failed")
	}

	confirmed := "1"
	if res.Outcome == waitlist.AlreadyConfirmed {
		confirmed = "already"
	}
	return c.Redirect(http.StatusFound, "/apps/"+url.PathEscape(res.Signup.Product)+"?confirmed="+confirmed)
}
