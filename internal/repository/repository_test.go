// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"codeberg.org/noambuilds/site/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	db, repo := testutil.NewTestDB(t)

	assert.NotNil(t, repo)
	assert.Same(t, db, repo.DB())
}

func TestPing(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	assert.NoError(t, repo.Ping(context.Background()))
}

func TestPing_Closed(t *testing.T) {
	db, repo := testutil.NewTestDB(t)
	_ = db.Close()

	assert.Error(t, repo.Ping(context.Background()))
}
