// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/noambuilds/site/internal/models"
)

const waitlistColumns = `id, email, email_normalized, product, status, confirm_token_hash, confirmed_token_hash, confirmed_at,
	referrer, utm_source, utm_medium, utm_campaign, utm_content, utm_term, created_at, updated_at`

// GetWaitlistSignup looks up the row for a normalized email and product.
func (r *Repository) GetWaitlistSignup(ctx context.Context, emailNormalized, product string) (*models.WaitlistSignup, error) {
	var signup models.WaitlistSignup
	err := r.db.GetContext(ctx, &signup,
		`SELECT `+waitlistColumns+` FROM waitlist_signups WHERE email_normalized = ? AND product = ?`,
		emailNormalized, product)
	if err != nil {
		return nil, wrapError(err)
	}
	return &signup, nil
}

// GetWaitlistSignupByTokenHash retrieves the signup holding the given confirmation token hash.
func (r *Repository) GetWaitlistSignupByTokenHash(ctx context.Context, tokenHash string) (*models.WaitlistSignup, error) {
	var signup models.WaitlistSignup
	err := r.db.GetContext(ctx, &signup,
		`SELECT `+waitlistColumns+` FROM waitlist_signups WHERE confirm_token_hash = ?`, tokenHash)
	if err != nil {
		return nil, wrapError(err)
	}
	return &signup, nil
}

// GetWaitlistSignupByConfirmedTokenHash retrieves the signup that was confirmed with the given token hash.
func (r *Repository) GetWaitlistSignupByConfirmedTokenHash(ctx context.Context, tokenHash string) (*models.WaitlistSignup, error) {
	var signup models.WaitlistSignup
	err := r.db.GetContext(ctx, &signup,
		`SELECT `+waitlistColumns+` FROM waitlist_signups WHERE confirmed_token_hash = ?`, tokenHash)
	if err != nil {
		return nil, wrapError(err)
	}
	return &signup, nil
}

// CreateWaitlistSignup inserts a new signup.
// Returns ErrDuplicate when a row for the same (email_normalized, product) already exists.
func (r *Repository) CreateWaitlistSignup(ctx context.Context, signup *models.WaitlistSignup) error {
	res, err := r.db.NamedExecContext(ctx, `
		INSERT INTO waitlist_signups (`+waitlistColumns+`)
		VALUES (:id, :email, :email_normalized, :product, :status, :confirm_token_hash, :confirmed_token_hash, :confirmed_at,
			:referrer, :utm_source, :utm_medium, :utm_campaign, :utm_content, :utm_term, :created_at, :updated_at)
		ON CONFLICT (email_normalized, product) DO NOTHING`, signup)
	if err != nil {
		return fmt.Errorf("insert waitlist signup: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert waitlist signup: rows affected: %w", err)
	}
	if rows == 0 {
		return ErrDuplicate
	}
	return nil
}

// RotateWaitlistToken replaces the token hash of a pending signup.
// Returns ErrNotFound if the row is missing or no longer pending.
func (r *Repository) RotateWaitlistToken(ctx context.Context, id, tokenHash string, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE waitlist_signups SET confirm_token_hash = ?, updated_at = ? WHERE id = ? AND status = ?`,
		tokenHash, now, id, models.WaitlistPending)
	if err != nil {
		return fmt.Errorf("rotate waitlist token: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rotate waitlist token: rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ConfirmWaitlistSignup moves a pending signup to confirmed and clears its token hash,
// keeping it as confirmed_token_hash. Reports false when the row was not pending
// anymore, so the transition happens at most once.
func (r *Repository) ConfirmWaitlistSignup(ctx context.Context, id string, now time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE waitlist_signups
		SET status = ?, confirmed_at = ?, confirmed_token_hash = confirm_token_hash,
			confirm_token_hash = NULL, updated_at = ?
		WHERE id = ? AND status = ?`,
		models.WaitlistConfirmed, now, now, id, models.WaitlistPending)
	if err != nil {
		return false, fmt.Errorf("confirm waitlist signup: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("confirm waitlist signup: rows affected: %w", err)
	}
	return rows == 1, nil
}

// CountWaitlistSignups returns signup counts grouped by product and status.
func (r *Repository) CountWaitlistSignups(ctx context.Context) ([]models.WaitlistCount, error) {
	var counts []models.WaitlistCount
	err := r.db.SelectContext(ctx, &counts, `
		SELECT product, status, COUNT(*) AS count
		FROM waitlist_signups
		GROUP BY product, status
		ORDER BY product, status`)
	if err != nil {
		return nil, fmt.Errorf("count waitlist signups: %w", err)
	}
	return counts, nil
}
