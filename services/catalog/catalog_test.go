package catalog

import (
	"context"
	"testing"

	"doitto/database/repository"
	"doitto/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryCache struct {
	categories []models.ServiceCategory
	loads      int
	hits       int
}

func (c *memoryCache) Load(context.Context) ([]models.ServiceCategory, bool) {
	c.loads++
	if c.categories == nil {
		return nil, false
	}
	c.hits++
	return c.categories, true
}

func (c *memoryCache) Save(_ context.Context, categories []models.ServiceCategory) {
	c.categories = categories
}

func (c *memoryCache) Invalidate(context.Context) { c.categories = nil }

func newTestCatalog(t *testing.T, cache Cache) *DefaultCatalogService {
	t.Helper()
	return NewCatalogService(repository.NewMemoryStore[models.ServiceCategory](), cache, zap.NewNop())
}

func TestFindOrCreateMatchesCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	svc := newTestCatalog(t, nil)

	id, err := svc.Add(ctx, "Plumbing")
	require.NoError(t, err)

	cat, created, err := svc.FindOrCreate(ctx, "  plumbing ")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id, cat.ID)
	assert.Equal(t, "Plumbing", cat.Name)

	cat, created, err = svc.FindOrCreate(ctx, "Plumb")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Plumb", cat.Name)
	assert.Empty(t, cat.Subcategories)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, _, err = svc.FindOrCreate(ctx, " ")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestSearchIsSubstringAndCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc := newTestCatalog(t, nil)
	for _, name := range []string{"Plumbing", "House Cleaning", "Window cleaning"} {
		_, err := svc.Add(ctx, name)
		require.NoError(t, err)
	}

	got, err := svc.Search(ctx, "CLEAN")
	require.NoError(t, err)
	names := make([]string, 0, len(got))
	for _, c := range got {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"House Cleaning", "Window cleaning"}, names)

	all, err := svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListUsesCacheUntilWrite(t *testing.T) {
	ctx := context.Background()
	cache := &memoryCache{}
	svc := newTestCatalog(t, cache)

	_, err := svc.Add(ctx, "Plumbing")
	require.NoError(t, err)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	id, err := svc.Add(ctx, "Cleaning")
	require.NoError(t, err)
	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.Update(ctx, id, map[string]any{"subcategories": []string{"Deep clean"}}))
	assert.Error(t, svc.Update(ctx, id, map[string]any{"id": "x"}))
	require.NoError(t, svc.Delete(ctx, id))
	all, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
