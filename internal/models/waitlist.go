// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package models

import "time"

// WaitlistStatus is the lifecycle state of a waitlist signup.
type WaitlistStatus string

const (
	WaitlistPending   WaitlistStatus = "pending"
	WaitlistConfirmed WaitlistStatus = "confirmed"
)

// WaitlistSignup is one row per (email_normalized, product) pair.
type WaitlistSignup struct { //nolint:govet // fieldalignment: readability over optimization
	ID               string         `db:"id" json:"id"`
	Email            string         `db:"email" json:"email"`
	EmailNormalized  string         `db:"email_normalized" json:"email_normalized"`
	Product          string         `db:"product" json:"product"`
	Status           WaitlistStatus `db:"status" json:"status"`
	ConfirmTokenHash *string        `db:"confirm_token_hash" json:"-"` // SHA256 hash, NULL once confirmed
	// ConfirmedTokenHash keeps the hash of the token that confirmed the row so a
	// reused link resolves to "already confirmed". It never authorizes a transition.
	ConfirmedTokenHash *string    `db:"confirmed_token_hash" json:"-"`
	ConfirmedAt        *time.Time `db:"confirmed_at" json:"confirmed_at,omitempty"`
	Referrer           *string    `db:"referrer" json:"referrer,omitempty"`
	UTMSource          *string    `db:"utm_source" json:"utm_source,omitempty"`
	UTMMedium          *string    `db:"utm_medium" json:"utm_medium,omitempty"`
	UTMCampaign        *string    `db:"utm_campaign" json:"utm_campaign,omitempty"`
	UTMContent         *string    `db:"utm_content" json:"utm_content,omitempty"`
	UTMTerm            *string    `db:"utm_term" json:"utm_term,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// IsConfirmed reports whether the signup reached its terminal state.
func (s *WaitlistSignup) IsConfirmed() bool {
	return s.Status == WaitlistConfirmed
}

// WaitlistCount aggregates signups for one product and status.
type WaitlistCount struct {
	Product string         `db:"product" json:"product"`
	Status  WaitlistStatus `db:"status" json:"status"`
	Count   int64          `db:"count" json:"count"`
}
