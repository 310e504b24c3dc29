// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"codeberg.org/noambuilds/site/internal/database"
	"codeberg.org/noambuilds/site/internal/i18n"
	"codeberg.org/noambuilds/site/internal/models"
	"codeberg.org/noambuilds/site/internal/repository"
	"codeberg.org/noambuilds/site/internal/services/email"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
	"golang.org/x/text/language"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, repository.New(db)
}

// NewTestSignup inserts a pending signup whose confirmation token hashes to tokenHash.
func NewTestSignup(t *testing.T, repo *repository.Repository, emailAddr, product, tokenHash string) *models.WaitlistSignup {
	t.Helper()
	now := time.Now().UTC()
	signup := &models.WaitlistSignup{
		ID:               uuid.NewString(),
		Email:            emailAddr,
		EmailNormalized:  emailAddr,
		Product:          product,
		Status:           models.WaitlistPending,
		ConfirmTokenHash: &tokenHash,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	require.NoError(t, repo.CreateWaitlistSignup(context.Background(), signup))
	return signup
}

// GetSignup reads a waitlist row straight from the table.
func GetSignup(t *testing.T, repo *repository.Repository, id string) *models.WaitlistSignup {
	t.Helper()
	var signup models.WaitlistSignup
	require.NoError(t, repo.DB().Get(&signup,
		`SELECT id, email, email_normalized, product, status, confirm_token_hash, confirmed_token_hash, confirmed_at,
			referrer, utm_source, utm_medium, utm_campaign, utm_content, utm_term, created_at, updated_at
		FROM waitlist_signups WHERE id = ?`, id))
	return &signup
}

// SentConfirmation is a waitlist confirmation recorded by Mailer.
type SentConfirmation struct {
	To          string
	ProductName string
	Token       string
}

// SentContact is a contact message recorded by Mailer.
type SentContact struct {
	To      string
	Message email.ContactMessage
}

// Mailer records outgoing mail instead of sending it. Set Err to make every send fail.
type Mailer struct {
	mu            sync.Mutex
	Err           error
	Confirmations []SentConfirmation
	Contacts      []SentContact
}

// SendWaitlistConfirmation records the confirmation.
func (m *Mailer) SendWaitlistConfirmation(_ context.Context, to, productName, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Confirmations = append(m.Confirmations, SentConfirmation{To: to, ProductName: productName, Token: token})
	return nil
}

// SendContactMessage records the contact message.
func (m *Mailer) SendContactMessage(_ context.Context, to string, msg email.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Contacts = append(m.Contacts, SentContact{To: to, Message: msg})
	return nil
}

// LastToken returns the raw token of the most recent confirmation.
func (m *Mailer) LastToken(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.Confirmations, "no confirmation email sent")
	return m.Confirmations[len(m.Confirmations)-1].Token
}

// NewEchoContext creates an Echo context for handler tests with an English locale.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	return NewEchoContextWithHeaders(e, method, path, body, map[string]string{
		echo.HeaderContentType: echo.MIMEApplicationJSON,
	})
}

// NewEchoContextWithHeaders creates an Echo context with custom headers and an English locale.
func NewEchoContextWithHeaders(e *echo.Echo, method, path string, body io.Reader, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := NewRequest(method, path, body)
	req.Header.Del(echo.HeaderContentType)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// NewRequest creates an HTTP request for testing with an English locale.
func NewRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req.WithContext(i18n.WithLocale(req.Context(), language.English))
}
