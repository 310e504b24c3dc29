// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

// Package waitlist implements the double opt-in waitlist: signup issues a
// single-use token by email, confirm redeems it.
package waitlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"codeberg.org/noambuilds/site/internal/content"
	"codeberg.org/noambuilds/site/internal/models"
	"codeberg.org/noambuilds/site/internal/repository"
	"codeberg.org/noambuilds/site/internal/services/email"
	"codeberg.org/noambuilds/site/internal/validate"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken covers missing, unknown and superseded confirmation tokens.
	ErrInvalidToken = errors.New("invalid confirmation token")
	// ErrEmailDelivery is returned when the signup was stored but the confirmation email failed.
	ErrEmailDelivery = errors.New("confirmation email not delivered")
)

// ValidationError is a client error. MessageID is the i18n message to show.
type ValidationError struct {
	MessageID string
	Err       error
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.MessageID
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Store is the persistence the service needs. *repository.Repository implements it.
type Store interface {
	GetWaitlistSignup(ctx context.Context, emailNormalized, product string) (*models.WaitlistSignup, error)
	GetWaitlistSignupByTokenHash(ctx context.Context, tokenHash string) (*models.WaitlistSignup, error)
	GetWaitlistSignupByConfirmedTokenHash(ctx context.Context, tokenHash string) (*models.WaitlistSignup, error)
	CreateWaitlistSignup(ctx context.Context, signup *models.WaitlistSignup) error
	RotateWaitlistToken(ctx context.Context, id, tokenHash string, now time.Time) error
	ConfirmWaitlistSignup(ctx context.Context, id string, now time.Time) (bool, error)
	CountWaitlistSignups(ctx context.Context) ([]models.WaitlistCount, error)
}

// Mailer delivers confirmation emails. *email.Service implements it.
type Mailer interface {
	SendWaitlistConfirmation(ctx context.Context, to, productName, token string) error
}

// UTM holds campaign attribution parameters.
type UTM struct {
	Source   string `json:"source"`
	Medium   string `json:"medium"`
	Campaign string `json:"campaign"`
	Content  string `json:"content"`
	Term     string `json:"term"`
}

// SignupInput is a signup request. Attribution fields are stored as given.
type SignupInput struct {
	Email    string `json:"email" validate:"required,basic_email"`
	Product  string `json:"appId" validate:"required"`
	Referrer string `json:"referrer"`
	UTM      UTM    `json:"utm"`
}

// Outcome describes what a signup or confirmation did.
type Outcome int

const (
	Created Outcome = iota + 1
	Resent
	Confirmed
	AlreadyConfirmed
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Resent:
		return "resent"
	case Confirmed:
		return "confirmed"
	case AlreadyConfirmed:
		return "already_confirmed"
	default:
		return "unknown"
	}
}

// Result is returned by Signup and Confirm.
type Result struct {
	Outcome Outcome
	Signup  *models.WaitlistSignup
}

// Service runs the waitlist flows.
type Service struct {
	store     Store
	mailer    Mailer
	validator *validate.Validator
	now       func() time.Time
}

// NewService creates a new waitlist service.
func NewService(store Store, mailer Mailer) *Service {
	return &Service{
		store:     store,
		mailer:    mailer,
		validator: validate.New(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// NormalizeEmail returns the dedup key for an address.
func NormalizeEmail(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// Signup registers an address for a product and sends a confirmation email,
// or resends it with a fresh token when the signup is still pending.
// Confirmed signups get no email.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*Result, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Product = strings.TrimSpace(in.Product)

	if err := s.validator.Validate(&in); err != nil {
		if validate.Failed(err, "", "required") {
			return nil, &ValidationError{MessageID: "waitlist_error_required", Err: err}
		}
		return nil, &ValidationError{MessageID: "waitlist_error_invalid_email", Err: err}
	}

	normalized := NormalizeEmail(in.Email)

	existing, err := s.store.GetWaitlistSignup(ctx, normalized, in.Product)
	switch {
	case err == nil:
		return s.signupExisting(ctx, existing, in.Email)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("looking up signup: %w", err)
	}

	token, hash, err := email.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	signup := &models.WaitlistSignup{
		ID:               uuid.NewString(),
		Email:            in.Email,
		EmailNormalized:  normalized,
		Product:          in.Product,
		Status:           models.WaitlistPending,
		ConfirmTokenHash: &hash,
		Referrer:         optional(in.Referrer),
		UTMSource:        optional(in.UTM.Source),
		UTMMedium:        optional(in.UTM.Medium),
		UTMCampaign:      optional(in.UTM.Campaign),
		UTMContent:       optional(in.UTM.Content),
		UTMTerm:          optional(in.UTM.Term),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.store.CreateWaitlistSignup(ctx, signup); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("creating signup: %w", err)
		}
		// lost the insert race, continue with the row the other request created
		existing, err := s.store.GetWaitlistSignup(ctx, normalized, in.Product)
		if err != nil {
			return nil, fmt.Errorf("looking up signup after conflict: %w", err)
		}
		return s.signupExisting(ctx, existing, in.Email)
	}

	if err := s.sendConfirmation(ctx, signup, in.Email, token); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "waitlist signup created", "signup_id", signup.ID, "product", signup.Product)
	return &Result{Outcome: Created, Signup: signup}, nil
}

func (s *Service) signupExisting(ctx context.Context, signup *models.WaitlistSignup, to string) (*Result, error) {
	if signup.IsConfirmed() {
		slog.InfoContext(ctx, "waitlist signup already confirmed", "signup_id", signup.ID, "product", signup.Product)
		return &Result{Outcome: AlreadyConfirmed, Signup: signup}, nil
	}

	token, hash, err := email.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.store.RotateWaitlistToken(ctx, signup.ID, hash, now); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// confirmed between lookup and rotation
			return &Result{Outcome: AlreadyConfirmed, Signup: signup}, nil
		}
		return nil, fmt.Errorf("rotating token: %w", err)
	}
	signup.ConfirmTokenHash = &hash
	signup.UpdatedAt = now

	if err := s.sendConfirmation(ctx, signup, to, token); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "waitlist confirmation resent", "signup_id", signup.ID, "product", signup.Product)
	return &Result{Outcome: Resent, Signup: signup}, nil
}

func (s *Service) sendConfirmation(ctx context.Context, signup *models.WaitlistSignup, to, token string) error {
	if err := s.mailer.SendWaitlistConfirmation(ctx, to, content.ProductName(signup.Product), token); err != nil {
		slog.ErrorContext(ctx, "waitlist confirmation email failed",
			"signup_id", signup.ID, "product", signup.Product, "error", err)
		return fmt.Errorf("%w: %w", ErrEmailDelivery, err)
	}
	return nil
}

// Confirm redeems a raw token. A token that already confirmed its row yields
// AlreadyConfirmed without touching the row. Unknown or superseded tokens
// return ErrInvalidToken.
func (s *Service) Confirm(ctx context.Context, token string) (*Result, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	hash := email.HashToken(token)

	signup, err := s.store.GetWaitlistSignupByTokenHash(ctx, hash)
	if errors.Is(err, repository.ErrNotFound) {
		return s.confirmUsedToken(ctx, hash)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up token: %w", err)
	}

	if signup.IsConfirmed() {
		return &Result{Outcome: AlreadyConfirmed, Signup: signup}, nil
	}

	ok, err := s.store.ConfirmWaitlistSignup(ctx, signup.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("confirming signup: %w", err)
	}
	if !ok {
		// a concurrent request confirmed it first
		return &Result{Outcome: AlreadyConfirmed, Signup: signup}, nil
	}

	slog.InfoContext(ctx, "waitlist signup confirmed", "signup_id", signup.ID, "product", signup.Product)
	return &Result{Outcome: Confirmed, Signup: signup}, nil
}

func (s *Service) confirmUsedToken(ctx context.Context, hash string) (*Result, error) {
	signup, err := s.store.GetWaitlistSignupByConfirmedTokenHash(ctx, hash)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("looking up used token: %w", err)
	}
	return &Result{Outcome: AlreadyConfirmed, Signup: signup}, nil
}

// Stats returns signup counts per product and status.
func (s *Service) Stats(ctx context.Context) ([]models.WaitlistCount, error) {
	return s.store.CountWaitlistSignups(ctx)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
