// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

// Package templates holds the templ components for pages, fragments and email
// bodies, plus the helpers they call.
package templates

import (
	"context"

	"codeberg.org/noambuilds/site/internal/content"
	"codeberg.org/noambuilds/site/internal/ctxkeys"
	"codeberg.org/noambuilds/site/internal/i18n"
)

// CSRFToken returns the CSRF token from the context.
func CSRFToken(ctx context.Context) string {
	if token, ok := ctx.Value(ctxkeys.CSRFToken{}).(string); ok {
		return token
	}
	return ""
}

// T translates a message by ID.
func T(ctx context.Context, messageID string) string {
	return i18n.T(ctx, messageID)
}

// TData translates a message with template data.
func TData(ctx context.Context, messageID string, data map[string]any) string {
	return i18n.TData(ctx, messageID, data)
}

// Locale returns the current locale.
func Locale(ctx context.Context) string {
	return i18n.GetLocale(ctx)
}

// CSSPath returns the path to the hashed CSS file.
func CSSPath(ctx context.Context) string {
	if path, ok := ctx.Value(ctxkeys.CSSPath{}).(string); ok {
		return path
	}
	return "/static/css/styles.css"
}

// JSPath returns the path to the hashed site script.
func JSPath(ctx context.Context) string {
	if path, ok := ctx.Value(ctxkeys.JSPath{}).(string); ok {
		return path
	}
	return "/static/js/app.js"
}

// Notice is a page-level banner. MessageID is translated when rendered.
type Notice struct {
	Success   bool
	MessageID string
}

// UTMKeys are the attribution query parameters carried through the waitlist form.
var UTMKeys = []string{"utm_source", "utm_medium", "utm_campaign", "utm_content", "utm_term"}

func pageTitle(title string) string {
	if title == "" {
		return content.SiteConfig.Title
	}
	return title + " · " + content.SiteConfig.Name
}

// submitLabel is the app's call to action, or the translated default.
func submitLabel(ctx context.Context, ctaLabel string) string {
	if ctaLabel != "" {
		return ctaLabel
	}
	return T(ctx, "waitlist_submit")
}

func waitlistResultID(appID string) string {
	return "waitlist-result-" + appID
}
