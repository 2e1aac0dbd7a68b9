package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"doitto/database"
	"doitto/database/repository"
	"doitto/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func useMemoryBackend(t *testing.T) *repository.Gateway {
	t.Helper()
	logger = zap.NewNop()
	gw := repository.NewMemoryGateway()
	backend = &database.Backend{
		Driver:  "memory",
		Gateway: gw,
		Ping:    func(context.Context) error { return nil },
		Close:   func() error { return nil },
	}
	t.Cleanup(func() {
		backend = nil
		searchZipcode, searchCategory, shareBaseURL, cardOutput, cardNoAvatar = "", "", "", "", false
	})
	return gw
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seedHelper(t *testing.T, gw *repository.Gateway, h models.Helper) string {
	t.Helper()
	id, err := gw.Helpers.Create(context.Background(), &h)
	require.NoError(t, err)
	return id
}

func TestSearchRequiresZipcode(t *testing.T) {
	useMemoryBackend(t)

	_, err := run(t, "search", "--category", "Plumbing")
	assert.ErrorIs(t, err, errZipcodeRequired)
}

func TestSearchFiltersByZipcodeAndCategory(t *testing.T) {
	gw := useMemoryBackend(t)
	seedHelper(t, gw, models.Helper{Name: "Ana", Title: "Plumber", Category: "Plumbing", Zipcodes: []string{"94110"}})
	seedHelper(t, gw, models.Helper{Name: "Ben", Title: "Painter", Category: "Painting", Zipcodes: []string{"94110"}})
	seedHelper(t, gw, models.Helper{Name: "Cy", Title: "Plumber", Category: "Plumbing", Zipcodes: []string{"10001"}})

	out, err := run(t, "search", "--zipcode", "94110", "--category", "Plumbing")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana")
	assert.NotContains(t, out, "Ben")
	assert.NotContains(t, out, "Cy")
}

func TestSearchWithNoMatches(t *testing.T) {
	useMemoryBackend(t)

	out, err := run(t, "search", "--zipcode", "00000")
	require.NoError(t, err)
	assert.Contains(t, out, "No helpers found.")
}

func TestSharePrintsPlatformLinks(t *testing.T) {
	gw := useMemoryBackend(t)
	id := seedHelper(t, gw, models.Helper{Name: "Ana", Title: "Plumber"})

	out, err := run(t, "share", id, "--base-url", "https://doitto.example")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana - Plumber")
	for _, platform := range []string{"facebook", "twitter", "linkedin", "whatsapp"} {
		assert.Contains(t, out, platform)
	}
}

func TestShareUnknownHelper(t *testing.T) {
	useMemoryBackend(t)

	_, err := run(t, "share", "missing")
	assert.Error(t, err)
}

func TestCardWritesPNG(t *testing.T) {
	gw := useMemoryBackend(t)
	id := seedHelper(t, gw, models.Helper{Name: "Ana", Title: "Plumber", Rating: 4.5, RatingCount: 2})
	output := filepath.Join(t.TempDir(), "card.png")

	_, err := run(t, "card", id, "-o", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}

func TestCategoriesAddIsCaseInsensitive(t *testing.T) {
	gw := useMemoryBackend(t)

	out, err := run(t, "categories", "add", "Plumbing")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Plumbing")

	out, err = run(t, "categories", "add", "plumbing")
	require.NoError(t, err)
	assert.Contains(t, out, "Plumbing already exists")

	all, err := gw.Categories.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	out, err = run(t, "categories", "list", "plum")
	require.NoError(t, err)
	assert.Contains(t, out, "Plumbing")
}

func TestHelpersDelete(t *testing.T) {
	gw := useMemoryBackend(t)
	id := seedHelper(t, gw, models.Helper{Name: "Ana"})

	out, err := run(t, "helpers", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted "+id)

	_, err = gw.Helpers.Get(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSeedCreatesSearchableHelpers(t *testing.T) {
	gw := useMemoryBackend(t)

	out, err := run(t, "seed", "--per-category", "2", "--zipcodes", "94110", "--categories", "Plumbing,Painting")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 4 helpers across 2 categories")

	all, err := gw.Helpers.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 4)
	for _, h := range all {
		assert.Equal(t, []string{"94110"}, h.Zipcodes)
	}

	categories, err := gw.Categories.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	out, err = run(t, "search", "--zipcode", "94110", "--category", "Painting")
	require.NoError(t, err)
	assert.Contains(t, out, "Painting Helper")
	assert.NotContains(t, out, "Plumbing Helper")
}
