// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/noambuilds/site/internal/config"
	"codeberg.org/noambuilds/site/internal/handlers"
	"codeberg.org/noambuilds/site/internal/i18n"
	"codeberg.org/noambuilds/site/internal/services/waitlist"
	"codeberg.org/noambuilds/site/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*echo.Echo, *testutil.Mailer) {
	t.Helper()
	require.NoError(t, i18n.Init())

	_, repo := testutil.NewTestDB(t)
	mailer := &testutil.Mailer{}
	cfg := &config.Config{
		Server:    config.ServerConfig{BaseURL: "http://localhost:8080", MaxBodySize: 1},
		Contact:   config.ContactConfig{Recipient: "me@noambuilds.com"},
		RateLimit: config.RateLimitConfig{PerMinute: 60, Burst: 10},
	}
	h := handlers.New(repo, waitlist.NewService(repo, mailer), mailer, cfg)

	return New(cfg, h), mailer
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_Pages(t *testing.T) {
	e, _ := newTestServer(t)

	for _, path := range []string{"/", "/apps", "/apps/nudgeme", "/projects", "/projects/rekem", "/about", "/contact", "/about/"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(e, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
			assert.Contains(t, rec.Body.String(), `<meta name="csrf-token"`)
		})
	}
}

func TestRoutes_NotFound(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/apps/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func TestRoutes_Static(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/static/css/styles.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".navbar")
}

func TestRoutes_SEOAndHealth(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sitemap: http://localhost:8080/sitemap.xml")

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<loc>http://localhost:8080/apps/nudgeme</loc>")

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_WaitlistFlow(t *testing.T) {
	e, mailer := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/waitlist/signup",
		strings.NewReader(`{"email":"fan@example.com","appId":"nudgeme"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := serve(e, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Check your email to confirm your spot!","success":true}`, rec.Body.String())

	token := mailer.LastToken(t)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/confirm?token="+token, nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/apps/nudgeme?confirmed=1", rec.Header().Get(echo.HeaderLocation))

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/api/waitlist/confirm?token="+token, nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/apps/nudgeme?confirmed=already", rec.Header().Get(echo.HeaderLocation))
}

func TestRoutes_FormPostNeedsCSRFToken(t *testing.T) {
	e, mailer := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader("name=Ada&email=ada%40example.com&message=hi"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := serve(e, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, mailer.Contacts)
}

func TestRoutes_FormPostWithCSRFToken(t *testing.T) {
	e, mailer := newTestServer(t)

	// fetch a page to obtain the CSRF cookie
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/contact", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var csrf *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "_csrf" {
			csrf = c
		}
	}
	require.NotNil(t, csrf)

	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader("name=Ada&email=ada%40example.com&message=hi&csrf_token="+csrf.Value))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set("HX-Request", "true")
	req.AddCookie(csrf)
	rec = serve(e, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Message sent successfully!")
	assert.Len(t, mailer.Contacts, 1)
}

func TestRoutes_RateLimited(t *testing.T) {
	require.NoError(t, i18n.Init())
	_, repo := testutil.NewTestDB(t)
	mailer := &testutil.Mailer{}
	cfg := &config.Config{
		Server:    config.ServerConfig{BaseURL: "http://localhost:8080", MaxBodySize: 1},
		RateLimit: config.RateLimitConfig{PerMinute: 1, Burst: 1},
	}
	e := New(cfg, handlers.New(repo, waitlist.NewService(repo, mailer), mailer, cfg))

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/waitlist/signup",
			strings.NewReader(`{"email":"fan@example.com","appId":"nudgeme"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		return serve(e, req)
	}

	assert.Equal(t, http.StatusOK, post().Code)

	rec := post()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Too many requests, please try again later."}`, rec.Body.String())
}

func TestListeners(t *testing.T) {
	e := echo.New()
	cfg := &config.Config{Server: config.ServerConfig{Host: "example.com", Port: 8443}}

	tests := []struct {
		mode  TLSMode
		names []string
	}{
		{TLSModeOff, []string{"site"}},
		{TLSModeManual, []string{"site"}},
		{TLSModeSelfSigned, []string{"site"}},
		{TLSModeACME, []string{"site", "acme-http"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			var names []string
			for _, l := range listeners(e, cfg, &TLSResult{Mode: tt.mode, HTTPHandler: http.NotFoundHandler()}) {
				assert.NotNil(t, l.serve)
				assert.NotNil(t, l.shutdown)
				names = append(names, l.name)
			}
			assert.Equal(t, tt.names, names)
		})
	}
}
