// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"
	"time"

	"codeberg.org/noambuilds/site/internal/models"
	"codeberg.org/noambuilds/site/internal/repository"
	"codeberg.org/noambuilds/site/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestCreateAndGetWaitlistSignup(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	signup := &models.WaitlistSignup{
		ID:               uuid.NewString(),
		Email:            "A@Example.com",
		EmailNormalized:  "a@example.com",
		Product:          "nudgeme",
		Status:           models.WaitlistPending,
		ConfirmTokenHash: ptr("hash-1"),
		Referrer:         ptr("https://news.ycombinator.com"),
		UTMSource:        ptr("hn"),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	require.NoError(t, repo.CreateWaitlistSignup(ctx, signup))

	got, err := repo.GetWaitlistSignup(ctx, "a@example.com", "nudgeme")
	require.NoError(t, err)
	assert.Equal(t, signup.ID, got.ID)
	assert.Equal(t, "A@Example.com", got.Email)
	assert.Equal(t, models.WaitlistPending, got.Status)
	require.NotNil(t, got.ConfirmTokenHash)
	assert.Equal(t, "hash-1", *got.ConfirmTokenHash)
	assert.Nil(t, got.ConfirmedAt)
	require.NotNil(t, got.Referrer)
	assert.Equal(t, "https://news.ycombinator.com", *got.Referrer)
	require.NotNil(t, got.UTMSource)
	assert.Equal(t, "hn", *got.UTMSource)
	assert.Nil(t, got.UTMMedium)
	assert.WithinDuration(t, now, got.CreatedAt, time.Second)

	byHash, err := repo.GetWaitlistSignupByTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, signup.ID, byHash.ID)
}

func TestGetWaitlistSignup_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := repo.GetWaitlistSignup(ctx, "nobody@example.com", "nudgeme")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetWaitlistSignupByTokenHash(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetWaitlistSignupByConfirmedTokenHash(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateWaitlistSignup_Duplicate(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	first := testutil.NewTestSignup(t, repo, "a@example.com", "nudgeme", "hash-1")

	now := time.Now().UTC()
	dup := &models.WaitlistSignup{
		ID:               uuid.NewString(),
		Email:            "a@example.com",
		EmailNormalized:  "a@example.com",
		Product:          "nudgeme",
		Status:           models.WaitlistPending,
		ConfirmTokenHash: ptr("hash-2"),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err := repo.CreateWaitlistSignup(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := repo.GetWaitlistSignup(ctx, "a@example.com", "nudgeme")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "hash-1", *got.ConfirmTokenHash)
}

func TestCreateWaitlistSignup_SameEmailOtherProduct(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	testutil.NewTestSignup(t, repo, "a@example.com", "nudgeme", "hash-1")
	testutil.NewTestSignup(t, repo, "a@example.com", "panic-poll", "hash-2")

	got, err := repo.GetWaitlistSignup(ctx, "a@example.com", "panic-poll")
	require.NoError(t, err)
	assert.Equal(t, "panic-poll", got.Product)
}

func TestRotateWaitlistToken(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	signup := testutil.NewTestSignup(t, repo, "a@example.com", "nudgeme", "hash-1")

	later := time.Now().UTC().Add(time.Minute)
	require.NoError(t, repo.RotateWaitlistToken(ctx, signup.ID, "hash-2", later))

	_, err := repo.GetWaitlistSignupByTokenHash(ctx, "hash-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := repo.GetWaitlistSignupByTokenHash(ctx, "hash-2")
	require.NoError(t, err)
	assert.Equal(t, signup.ID, got.ID)
	assert.WithinDuration(t, later, got.UpdatedAt, time.Second)
}

func TestRotateWaitlistToken_ConfirmedRow(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	signup := testutil.NewTestSignup(t, repo, "a@example.com", "nudgeme", "hash-1")

	ok, err := repo.ConfirmWaitlistSignup(ctx, signup.ID, time.Now().UTC())
	require.NoError(t, err)
	require.True(t, ok)

	err = repo.RotateWaitlistToken(ctx, signup.ID, "hash-2", time.Now().UTC())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestConfirmWaitlistSignup_ExactlyOnce(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	signup := testutil.NewTestSignup(t, repo, "a@example.com", "nudgeme", "hash-1")

	confirmedAt := time.Now().UTC().Truncate(time.Second)
	ok, err := repo.ConfirmWaitlistSignup(ctx, signup.ID, confirmedAt)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ConfirmWaitlistSignup(ctx, signup.ID, confirmedAt.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	got := testutil.GetSignup(t, repo, signup.ID)
	assert.Equal(t, models.WaitlistConfirmed, got.Status)
	assert.Nil(t, got.ConfirmTokenHash)
	require.NotNil(t, got.ConfirmedAt)
	assert.WithinDuration(t, confirmedAt, *got.ConfirmedAt, time.Second)

	used, err := repo.GetWaitlistSignupByConfirmedTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, signup.ID, used.ID)

	_, err = repo.GetWaitlistSignupByTokenHash(ctx, "hash-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestConfirmWaitlistSignup_UnknownID(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	ok, err := repo.ConfirmWaitlistSignup(context.Background(), "missing", time.Now().UTC())

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCountWaitlistSignups(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	a := testutil.NewTestSignup(t, repo, "a@example.com", "nudgeme", "hash-a")
	testutil.NewTestSignup(t, repo, "b@example.com", "nudgeme", "hash-b")
	testutil.NewTestSignup(t, repo, "c@example.com", "panic-poll", "hash-c")
	_, err := repo.ConfirmWaitlistSignup(ctx, a.ID, time.Now().UTC())
	require.NoError(t, err)

	counts, err := repo.CountWaitlistSignups(ctx)
	require.NoError(t, err)

	assert.Equal(t, []models.WaitlistCount{
		{Product: "nudgeme", Status: models.WaitlistConfirmed, Count: 1},
		{Product: "nudgeme", Status: models.WaitlistPending, Count: 1},
		{Product: "panic-poll", Status: models.WaitlistPending, Count: 1},
	}, counts)
}

func TestCountWaitlistSignups_Empty(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	counts, err := repo.CountWaitlistSignups(context.Background())

	require.NoError(t, err)
	assert.Empty(t, counts)
}
