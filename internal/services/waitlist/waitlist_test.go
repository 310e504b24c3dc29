// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package waitlist_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"codeberg.org/noambuilds/site/internal/models"
	"codeberg.org/noambuilds/site/internal/repository"
	"codeberg.org/noambuilds/site/internal/services/email"
	"codeberg.org/noambuilds/site/internal/services/waitlist"
	"codeberg.org/noambuilds/site/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*waitlist.Service, *repository.Repository, *testutil.Mailer) {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	mailer := &testutil.Mailer{}
	return waitlist.NewService(repo, mailer), repo, mailer
}

func signup(t *testing.T, svc *waitlist.Service, addr, product string) *waitlist.Result {
	t.Helper()
	res, err := svc.Signup(context.Background(), waitlist.SignupInput{Email: addr, Product: product})
	require.NoError(t, err)
	return res
}

func countRows(t *testing.T, repo *repository.Repository) int {
	t.Helper()
	var n int
	require.NoError(t, repo.DB().Get(&n, "SELECT count(*) FROM waitlist_signups"))
	return n
}

func TestSignup_Created(t *testing.T) {
	svc, repo, mailer := newService(t)
	ctx := context.Background()

	res, err := svc.Signup(ctx, waitlist.SignupInput{
		Email:    "A@Example.com ",
		Product:  "nudgeme",
		Referrer: "https://twitter.com",
		UTM:      waitlist.UTM{Source: "twitter", Campaign: "launch"},
	})
	require.NoError(t, err)
	assert.Equal(t, waitlist.Created, res.Outcome)

	stored, err := repo.GetWaitlistSignup(ctx, "a@example.com", "nudgeme")
	require.NoError(t, err)
	assert.Equal(t, "A@Example.com", stored.Email)
	assert.Equal(t, "a@example.com", stored.EmailNormalized)
	assert.Equal(t, models.WaitlistPending, stored.Status)
	require.NotNil(t, stored.ConfirmTokenHash)
	assert.NotEmpty(t, *stored.ConfirmTokenHash)
	require.NotNil(t, stored.UTMSource)
	assert.Equal(t, "twitter", *stored.UTMSource)
	assert.Nil(t, stored.UTMMedium)
	require.NotNil(t, stored.Referrer)
	assert.Equal(t, "https://twitter.com", *stored.Referrer)

	require.Len(t, mailer.Confirmations, 1)
	sent := mailer.Confirmations[0]
	assert.Equal(t, "A@Example.com", sent.To)
	assert.Equal(t, "NudgeMe", sent.ProductName)
	assert.Len(t, sent.Token, 64)
	assert.Equal(t, email.HashToken(sent.Token), *stored.ConfirmTokenHash, "only the hash is stored")
}

func TestSignup_UnknownProductNameFallsBack(t *testing.T) {
	svc, _, mailer := newService(t)

	signup(t, svc, "a@example.com", "secret-app")

	require.Len(t, mailer.Confirmations, 1)
	assert.Equal(t, "secret-app", mailer.Confirmations[0].ProductName)
}

func TestSignup_NormalizedEmailMatchesExistingRow(t *testing.T) {
	svc, repo, _ := newService(t)

	first := signup(t, svc, "A@Example.com ", "nudgeme")
	second := signup(t, svc, "a@example.com", "nudgeme")

	assert.Equal(t, waitlist.Resent, second.Outcome)
	assert.Equal(t, first.Signup.ID, second.Signup.ID)
	assert.Equal(t, 1, countRows(t, repo))
}

func TestSignup_ResendRotatesToken(t *testing.T) {
	svc, repo, mailer := newService(t)
	ctx := context.Background()

	signup(t, svc, "a@example.com", "nudgeme")
	firstToken := mailer.LastToken(t)
	first, err := repo.GetWaitlistSignup(ctx, "a@example.com", "nudgeme")
	require.NoError(t, err)

	res := signup(t, svc, "a@example.com", "nudgeme")
	assert.Equal(t, waitlist.Resent, res.Outcome)
	secondToken := mailer.LastToken(t)

	second, err := repo.GetWaitlistSignup(ctx, "a@example.com", "nudgeme")
	require.NoError(t, err)
	assert.Equal(t, 1, countRows(t, repo))
	assert.NotEqual(t, *first.ConfirmTokenHash, *second.ConfirmTokenHash)
	assert.Len(t, mailer.Confirmations, 2)

	_, err = svc.Confirm(ctx, firstToken)
	assert.ErrorIs(t, err, waitlist.ErrInvalidToken, "resend invalidates the previous token")

	confirmed, err := svc.Confirm(ctx, secondToken)
	require.NoError(t, err)
	assert.Equal(t, waitlist.Confirmed, confirmed.Outcome)
}

func TestSignup_AlreadyConfirmedSendsNoEmail(t *testing.T) {
	svc, _, mailer := newService(t)
	ctx := context.Background()

	signup(t, svc, "a@example.com", "nudgeme")
	_, err := svc.Confirm(ctx, mailer.LastToken(t))
	require.NoError(t, err)

	res := signup(t, svc, "A@example.com", "nudgeme")

	assert.Equal(t, waitlist.AlreadyConfirmed, res.Outcome)
	assert.Len(t, mailer.Confirmations, 1)
}

func TestSignup_Validation(t *testing.T) {
	tests := []struct {
		name      string
		input     waitlist.SignupInput
		messageID string
	}{
		{"missing email", waitlist.SignupInput{Product: "nudgeme"}, "waitlist_error_required"},
		{"blank email", waitlist.SignupInput{Email: "   ", Product: "nudgeme"}, "waitlist_error_required"},
		{"missing product", waitlist.SignupInput{Email: "a@example.com"}, "waitlist_error_required"},
		{"missing product with bad email", waitlist.SignupInput{Email: "nope"}, "waitlist_error_required"},
		{"malformed email", waitlist.SignupInput{Email: "nope", Product: "nudgeme"}, "waitlist_error_invalid_email"},
		{"email without tld", waitlist.SignupInput{Email: "a@example", Product: "nudgeme"}, "waitlist_error_invalid_email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, mailer := newService(t)

			_, err := svc.Signup(context.Background(), tt.input)

			var verr *waitlist.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.messageID, verr.MessageID)
			assert.Equal(t, 0, countRows(t, repo))
			assert.Empty(t, mailer.Confirmations)
		})
	}
}

func TestSignup_EmailFailure(t *testing.T) {
	svc, repo, mailer := newService(t)
	ctx := context.Background()
	mailer.Err = errors.New("smtp down")

	_, err := svc.Signup(ctx, waitlist.SignupInput{Email: "a@example.com", Product: "nudgeme"})
	require.ErrorIs(t, err, waitlist.ErrEmailDelivery)
	assert.Contains(t, err.Error(), "smtp down")

	stored, err := repo.GetWaitlistSignup(ctx, "a@example.com", "nudgeme")
	require.NoError(t, err)
	assert.Equal(t, models.WaitlistPending, stored.Status)

	mailer.Err = nil
	res := signup(t, svc, "a@example.com", "nudgeme")
	assert.Equal(t, waitlist.Resent, res.Outcome, "retry takes the resend path")
	assert.Len(t, mailer.Confirmations, 1)
}

func TestSignup_ConcurrentSameAddress(t *testing.T) {
	svc, repo, mailer := newService(t)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Signup(context.Background(), waitlist.SignupInput{Email: "a@example.com", Product: "nudgeme"})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, countRows(t, repo))
	assert.Len(t, mailer.Confirmations, len(errs))
}

func TestConfirm(t *testing.T) {
	svc, repo, mailer := newService(t)
	ctx := context.Background()

	signup(t, svc, "a@example.com", "panic-poll")

	res, err := svc.Confirm(ctx, mailer.LastToken(t))
	require.NoError(t, err)
	assert.Equal(t, waitlist.Confirmed, res.Outcome)
	assert.Equal(t, "panic-poll", res.Signup.Product)

	stored, err := repo.GetWaitlistSignup(ctx, "a@example.com", "panic-poll")
	require.NoError(t, err)
	assert.Equal(t, models.WaitlistConfirmed, stored.Status)
	assert.Nil(t, stored.ConfirmTokenHash)
	assert.NotNil(t, stored.ConfirmedAt)
}

func TestConfirm_Twice(t *testing.T) {
	svc, repo, mailer := newService(t)
	ctx := context.Background()

	signup(t, svc, "a@example.com", "nudgeme")
	token := mailer.LastToken(t)

	_, err := svc.Confirm(ctx, token)
	require.NoError(t, err)
	first, err := repo.GetWaitlistSignup(ctx, "a@example.com", "nudgeme")
	require.NoError(t, err)

	res, err := svc.Confirm(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, waitlist.AlreadyConfirmed, res.Outcome)
	assert.Equal(t, "nudgeme", res.Signup.Product)

	second, err := repo.GetWaitlistSignup(ctx, "a@example.com", "nudgeme")
	require.NoError(t, err)
	require.NotNil(t, second.ConfirmedAt)
	assert.True(t, first.ConfirmedAt.Equal(*second.ConfirmedAt), "confirmedAt unchanged")
	assert.True(t, first.UpdatedAt.Equal(second.UpdatedAt), "row not mutated")
}

func TestConfirm_InvalidTokens(t *testing.T) {
	svc, repo, _ := newService(t)
	ctx := context.Background()
	signup(t, svc, "a@example.com", "nudgeme")

	before, err := repo.GetWaitlistSignup(ctx, "a@example.com", "nudgeme")
	require.NoError(t, err)

	for _, token := range []string{"", "unknown", "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"} {
		_, err := svc.Confirm(ctx, token)
		assert.ErrorIs(t, err, waitlist.ErrInvalidToken, "token %q", token)
	}

	after, err := repo.GetWaitlistSignup(ctx, "a@example.com", "nudgeme")
	require.NoError(t, err)
	assert.Equal(t, models.WaitlistPending, after.Status)
	assert.Equal(t, *before.ConfirmTokenHash, *after.ConfirmTokenHash)
	assert.True(t, before.UpdatedAt.Equal(after.UpdatedAt))
}

func TestConfirm_StoreFailureLeavesRowPending(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	mailer := &testutil.Mailer{}
	store := &failingStore{Repository: repo, confirmErr: errors.New("disk full")}
	svc := waitlist.NewService(store, mailer)
	ctx := context.Background()

	signup(t, svc, "a@example.com", "nudgeme")
	token := mailer.LastToken(t)

	_, err := svc.Confirm(ctx, token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, waitlist.ErrInvalidToken)

	stored, err := repo.GetWaitlistSignup(ctx, "a@example.com", "nudgeme")
	require.NoError(t, err)
	assert.Equal(t, models.WaitlistPending, stored.Status)

	store.confirmErr = nil
	res, err := svc.Confirm(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, waitlist.Confirmed, res.Outcome, "the link still works after a failed attempt")
}

func TestSignup_StoreFailure(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	mailer := &testutil.Mailer{}
	svc := waitlist.NewService(&failingStore{Repository: repo, createErr: errors.New("disk full")}, mailer)

	_, err := svc.Signup(context.Background(), waitlist.SignupInput{Email: "a@example.com", Product: "nudgeme"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, waitlist.ErrEmailDelivery)
	var verr *waitlist.ValidationError
	assert.False(t, errors.As(err, &verr))
	assert.Empty(t, mailer.Confirmations)
}

func TestStats(t *testing.T) {
	svc, _, mailer := newService(t)
	ctx := context.Background()

	signup(t, svc, "a@example.com", "nudgeme")
	_, err := svc.Confirm(ctx, mailer.LastToken(t))
	require.NoError(t, err)
	signup(t, svc, "b@example.com", "nudgeme")

	counts, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.WaitlistCount{
		{Product: "nudgeme", Status: models.WaitlistConfirmed, Count: 1},
		{Product: "nudgeme", Status: models.WaitlistPending, Count: 1},
	}, counts)
}

func TestSignup_LostInsertRace(t *testing.T) {
	svc, repo, mailer := newService(t)
	first := signup(t, svc, "a@example.com", "nudgeme")
	require.Equal(t, waitlist.Created, first.Outcome)
	firstToken := mailer.LastToken(t)

	racing := waitlist.NewService(&failingStore{Repository: repo, staleLookups: 1}, mailer)
	res := signup(t, racing, "a@example.com", "nudgeme")

	assert.Equal(t, waitlist.Resent, res.Outcome)
	assert.Equal(t, 1, countRows(t, repo))
	require.Len(t, mailer.Confirmations, 2)
	assert.NotEqual(t, firstToken, mailer.LastToken(t), "resend rotates the token")
}

func TestSignup_StoresTrimmedAddress(t *testing.T) {
	svc, repo, mailer := newService(t)
	signup(t, svc, "  Alice@Example.com\t", "nudgeme")

	stored, err := repo.GetWaitlistSignup(context.Background(), "alice@example.com", "nudgeme")
	require.NoError(t, err)
	assert.Equal(t, "Alice@Example.com", stored.Email)
	assert.Equal(t, "alice@example.com", stored.EmailNormalized)
	require.Len(t, mailer.Confirmations, 1)
	assert.Equal(t, "Alice@Example.com", mailer.Confirmations[0].To)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "created", waitlist.Created.String())
	assert.Equal(t, "already_confirmed", waitlist.AlreadyConfirmed.String())
	assert.Equal(t, "unknown", waitlist.Outcome(0).String())
}

// failingStore injects errors into selected repository calls.
type failingStore struct {
	*repository.Repository
	createErr  error
	confirmErr error
	// staleLookups makes that many GetWaitlistSignup calls report
	// ErrNotFound, as if another request inserted the row in between.
	staleLookups int
}

func (s *failingStore) GetWaitlistSignup(ctx context.Context, emailNormalized, product string) (*models.WaitlistSignup, error) {
	if s.staleLookups > 0 {
		s.staleLookups--
		return nil, repository.ErrNotFound
	}
	return s.Repository.GetWaitlistSignup(ctx, emailNormalized, product)
}

func (s *failingStore) CreateWaitlistSignup(ctx context.Context, signup *models.WaitlistSignup) error {
	if s.createErr != nil {
		return s.createErr
	}
	return s.Repository.CreateWaitlistSignup(ctx, signup)
}

func (s *failingStore) ConfirmWaitlistSignup(ctx context.Context, id string, now time.Time) (bool, error) {
	if s.confirmErr != nil {
		return false, s.confirmErr
	}
	return s.Repository.ConfirmWaitlistSignup(ctx, id, now)
}
