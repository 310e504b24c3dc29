// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

// Package htmx reads htmx request headers and sets response headers.
package htmx

import (
	"net/http"
	"strings"
)

// Request headers.
const (
	HeaderRequest    = "HX-Request"
	HeaderBoosted    = "HX-Boosted"
	HeaderCurrentURL = "HX-Current-URL"
	HeaderTarget     = "HX-Target"
)

// HeaderTriggerResponse is the response header carrying client-side events.
const HeaderTriggerResponse = "HX-Trigger"

// Client-side events triggered by form responses.
const (
	EventFormSuccess = "form-success"
	EventFormError   = "form-error"
)

// Request contains information about an htmx request.
type Request struct {
	IsHtmx     bool
	IsBoosted  bool
	CurrentURL string
	// Target is the id of the element the response is swapped into.
	Target string
}

// ParseRequest extracts htmx information from request headers.
func ParseRequest(r *http.Request) *Request {
	return &Request{
		IsHtmx:     r.Header.Get(HeaderRequest) == "true",
		IsBoosted:  r.Header.Get(HeaderBoosted) == "true",
		CurrentURL: r.Header.Get(HeaderCurrentURL),
		Target:     r.Header.Get(HeaderTarget),
	}
}

// Trigger asks htmx to dispatch events on the element that issued the request.
// Events already set on h are kept.
func Trigger(h http.Header, events ...string) {
	if len(events) == 0 {
		return
	}
	if existing := h.Get(HeaderTriggerResponse); existing != "" {
		events = append([]string{existing}, events...)
	}
	h.Set(HeaderTriggerResponse, strings.Join(events, ", "))
}
