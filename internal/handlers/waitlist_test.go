// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"codeberg.org/noambuilds/site/internal/htmx"
	"codeberg.org/noambuilds/site/internal/models"
	"codeberg.org/noambuilds/site/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) postSignup(t *testing.T, body string) (int, string) {
	t.Helper()
	c, rec := testutil.NewEchoContext(f.e, http.MethodPost, "/api/waitlist/signup", strings.NewReader(body))
	require.NoError(t, f.h.WaitlistSignup(c))
	return rec.Code, rec.Body.String()
}

func (f *fixture) confirm(t *testing.T, token string) string {
	t.Helper()
	c, rec := testutil.NewEchoContext(f.e, http.MethodGet, "/confirm?token="+url.QueryEscape(token), nil)
	require.NoError(t, f.h.WaitlistConfirm(c))
	require.Equal(t, http.StatusFound, rec.Code)
	return rec.Header().Get(echo.HeaderLocation)
}

func TestWaitlistSignup_Created(t *testing.T) {
	f := setup(t)

	code, body := f.postSignup(t, `{"email":"a@example.com","appId":"nudgeme","referrer":"https://x.com","utm":{"source":"x","term":"goals"}}`)

	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"message":"Check your email to confirm your spot!","success":true}`, body)

	stored, err := f.repo.GetWaitlistSignup(context.Background(), "a@example.com", "nudgeme")
	require.NoError(t, err)
	require.NotNil(t, stored.UTMTerm)
	assert.Equal(t, "goals", *stored.UTMTerm)
	require.Len(t, f.mailer.Confirmations, 1)
}

func TestWaitlistSignup_Resent(t *testing.T) {
	f := setup(t)
	f.postSignup(t, `{"email":"a@example.com","appId":"nudgeme"}`)

	code, body := f.postSignup(t, `{"email":"A@EXAMPLE.com","appId":"nudgeme"}`)

	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"message":"Confirmation email resent! Check your inbox.","resent":true}`, body)
	assert.Len(t, f.mailer.Confirmations, 2)
}

func TestWaitlistSignup_AlreadyConfirmed(t *testing.T) {
	f := setup(t)
	f.postSignup(t, `{"email":"a@example.com","appId":"nudgeme"}`)
	f.confirm(t, f.mailer.LastToken(t))

	code, body := f.postSignup(t, `{"email":"a@example.com","appId":"nudgeme"}`)

	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"message":"You're already on the waitlist!","alreadyConfirmed":true}`, body)
	assert.Len(t, f.mailer.Confirmations, 1)
}

func TestWaitlistSignup_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing email", `{"appId":"nudgeme"}`, `{"error":"Email and appId are required"}`},
		{"missing app", `{"email":"a@example.com"}`, `{"error":"Email and appId are required"}`},
		{"invalid email", `{"email":"not-an-email","appId":"nudgeme"}`, `{"error":"Invalid email address"}`},
		{"malformed json", `{"email":`, `{"error":"Invalid request body"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			code, body := f.postSignup(t, tt.body)

			assert.Equal(t, http.StatusBadRequest, code)
			assert.JSONEq(t, tt.want, body)
			assert.Empty(t, f.mailer.Confirmations)
		})
	}
}

func TestWaitlistSignup_EmailFailure(t *testing.T) {
	f := setup(t)
	f.mailer.Err = errors.New("smtp down")

	code, body := f.postSignup(t, `{"email":"a@example.com","appId":"nudgeme"}`)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"error":"We couldn't send your confirmation email. Please try again."}`, body)
}

func TestWaitlistSignup_PersistenceFailure(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.repo.DB().Close())

	code, body := f.postSignup(t, `{"email":"a@example.com","appId":"nudgeme"}`)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"error":"Failed to save signup"}`, body)
}

func TestWaitlistSignup_HtmxForm(t *testing.T) {
	f := setup(t)
	form := url.Values{
		"email":      {"a@example.com"},
		"appId":      {"panic-poll"},
		"utm_source": {"newsletter"},
	}
	c, rec := testutil.NewEchoContextWithHeaders(f.e, http.MethodPost, "/api/waitlist/signup",
		strings.NewReader(form.Encode()), map[string]string{
			echo.HeaderContentType: echo.MIMEApplicationForm,
			htmx.HeaderRequest:     "true",
		})

	require.NoError(t, f.h.WaitlistSignup(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, htmx.EventFormSuccess, rec.Header().Get(htmx.HeaderTriggerResponse))
	assert.Contains(t, rec.Body.String(), `class="form-result form-result-success"`)
	assert.Contains(t, rec.Body.String(), "Check your email to confirm your spot!")

	stored, err := f.repo.GetWaitlistSignup(context.Background(), "a@example.com", "panic-poll")
	require.NoError(t, err)
	require.NotNil(t, stored.UTMSource)
	assert.Equal(t, "newsletter", *stored.UTMSource)
}

func TestWaitlistSignup_HtmxError(t *testing.T) {
	f := setup(t)
	form := url.Values{"email": {"bad"}, "appId": {"nudgeme"}}
	c, rec := testutil.NewEchoContextWithHeaders(f.e, http.MethodPost, "/api/waitlist/signup",
		strings.NewReader(form.Encode()), map[string]string{
			echo.HeaderContentType: echo.MIMEApplicationForm,
			htmx.HeaderRequest:     "true",
		})

	require.NoError(t, f.h.WaitlistSignup(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, htmx.EventFormError, rec.Header().Get(htmx.HeaderTriggerResponse))
	assert.Contains(t, rec.Body.String(), "form-result-error")
	assert.Contains(t, rec.Body.String(), "Invalid email address")
}

func TestWaitlistConfirm(t *testing.T) {
	f := setup(t)
	f.postSignup(t, `{"email":"a@example.com","appId":"panic-poll"}`)
	token := f.mailer.LastToken(t)

	assert.Equal(t, "/apps/panic-poll?confirmed=1", f.confirm(t, token))
	assert.Equal(t, "/apps/panic-poll?confirmed=already", f.confirm(t, token))

	stored, err := f.repo.GetWaitlistSignup(context.Background(), "a@example.com", "panic-poll")
	require.NoError(t, err)
	assert.Equal(t, models.WaitlistConfirmed, stored.Status)
}

func TestWaitlistConfirm_InvalidToken(t *testing.T) {
	f := setup(t)

	assert.Equal(t, "/?error=invalid_token", f.confirm(t, ""))
	assert.Equal(t, "/?error=invalid_token", f.confirm(t, "nope"))
}

func TestWaitlistConfirm_SupersededToken(t *testing.T) {
	f := setup(t)
	f.postSignup(t, `{"email":"a@example.com","appId":"nudgeme"}`)
	old := f.mailer.LastToken(t)
	f.postSignup(t, `{"email":"a@example.com","appId":"nudgeme"}`)

	assert.Equal(t, "/?error=invalid_token", f.confirm(t, old))
	assert.Equal(t, "/apps/nudgeme?confirmed=1", f.confirm(t, f.mailer.LastToken(t)))
}

func TestWaitlistConfirm_StoreFailure(t *testing.T) {
	f := setup(t)
	f.postSignup(t, `{"email":"a@example.com","appId":"nudgeme"}`)
	token := f.mailer.LastToken(t)
	require.NoError(t, f.repo.DB().Close())

	assert.Equal(t, "/?error=confirm_failed", f.confirm(t, token))
}
