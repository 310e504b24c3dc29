// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package content_test

import (
	"testing"

	"codeberg.org/noambuilds/site/internal/content"
	"codeberg.org/noambuilds/site/internal/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeaturedApps_Ordered(t *testing.T) {
	apps := content.FeaturedApps()

	require.Len(t, apps, 2)
	assert.Equal(t, "nudgeme", apps[0].ID)
	assert.Equal(t, "panic-poll", apps[1].ID)
}

func TestAppByID(t *testing.T) {
	app, ok := content.AppByID("panic-poll")
	require.True(t, ok)
	assert.Equal(t, "PanicPoll", app.Title)
	assert.True(t, app.WaitlistEnabled)

	_, ok = content.AppByID("missing")
	assert.False(t, ok)
}

func TestProductName(t *testing.T) {
	tests := []struct {
		id       string
		expected string
	}{
		{"nudgeme", "NudgeMe"},
		{"panic-poll", "PanicPoll"},
		{"unknown-app", "unknown-app"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.expected, content.ProductName(tt.id))
		})
	}
}

func TestFeaturedProjects_Ordered(t *testing.T) {
	projects := content.FeaturedProjects()

	require.Len(t, projects, 4)
	for i := 1; i < len(projects); i++ {
		assert.Less(t, projects[i-1].Order, projects[i].Order)
	}
}

func TestProjectByID(t *testing.T) {
	project, ok := content.ProjectByID("platformer")
	require.True(t, ok)
	assert.Equal(t, "2D Platformer Engine", project.Title)
	assert.False(t, project.IsPrivate())

	rekem, ok := content.ProjectByID("rekem")
	require.True(t, ok)
	assert.True(t, rekem.IsPrivate())

	_, ok = content.ProjectByID("missing")
	assert.False(t, ok)
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range content.Apps {
		assert.False(t, seen[a.ID], "duplicate app id %s", a.ID)
		seen[a.ID] = true
	}

	seen = map[string]bool{}
	for _, p := range content.Projects {
		assert.False(t, seen[p.ID], "duplicate project id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestProjectDescriptionsParse(t *testing.T) {
	for _, p := range content.Projects {
		t.Run(p.ID, func(t *testing.T) {
			doc := markdown.Parse(p.Description)
			assert.NotEmpty(t, doc.Blocks)

			var lists int
			for _, b := range doc.Blocks {
				if b.Kind == markdown.UnorderedList {
					lists++
				}
			}
			assert.Positive(t, lists, "every description has at least one bullet list")
		})
	}
}

func TestAppStatusMessageID(t *testing.T) {
	assert.Equal(t, "status_live", content.StatusLive.MessageID())
	assert.Equal(t, "status_beta", content.StatusBeta.MessageID())
	assert.Equal(t, "status_coming_soon", content.StatusComingSoon.MessageID())
}
