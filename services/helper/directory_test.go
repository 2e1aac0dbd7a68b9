package helper

import (
	"context"
	"errors"
	"testing"

	"doitto/database/repository"
	"doitto/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// failingStore answers every call with a transport error.
type failingStore struct {
	repository.Store[models.Helper]
}

var errUnavailable = errors.New("backend unavailable")

func (failingStore) List(context.Context) ([]models.Helper, error) { return nil, errUnavailable }
func (failingStore) Get(context.Context, string) (*models.Helper, error) {
	return nil, errUnavailable
}
func (failingStore) Query(context.Context, ...repository.Filter) ([]models.Helper, error) {
	return nil, errUnavailable
}

func newTestService(t *testing.T) *DefaultHelperService {
	t.Helper()
	return NewHelperService(repository.NewMemoryStore[models.Helper](), zap.NewNop())
}

func seed(t *testing.T, svc *DefaultHelperService, helpers ...models.Helper) []string {
	t.Helper()
	ids := make([]string, 0, len(helpers))
	for i := range helpers {
		id, err := svc.Create(context.Background(), &helpers[i])
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestCreateThenGetByIDReturnsStoreID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	h := models.Helper{ID: "ignored", Name: "Maria", Title: "Plumber", Category: "Plumbing", Zipcodes: []string{"10001"}}
	id, err := svc.Create(ctx, &h)
	require.NoError(t, err)
	assert.NotEqual(t, "ignored", id)

	got, ok := svc.GetByID(ctx, id)
	require.True(t, ok)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Maria", got.Name)
	assert.Equal(t, "Plumbing", got.Category)
}

func TestGetByIDMissing(t *testing.T) {
	svc := newTestService(t)
	got, ok := svc.GetByID(context.Background(), "missing")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestSearchByZipcodeOnly(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	seed(t, svc,
		models.Helper{Name: "a", Category: "Plumbing", Zipcodes: []string{"10001"}},
		models.Helper{Name: "b", Category: "Cleaning", Zipcodes: []string{"10001", "10002"}},
		models.Helper{Name: "c", Category: "Cleaning", Zipcodes: []string{"90210"}},
	)

	got := svc.Search(ctx, "", "10001")
	assert.ElementsMatch(t, []string{"a", "b"}, helperNames(got))
	for _, h := range got {
		assert.Contains(t, h.Zipcodes, "10001")
	}
}

func TestSearchCategoryIsExact(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	seed(t, svc,
		models.Helper{Name: "a", Category: "Plumbing", Zipcodes: []string{"10001"}},
		models.Helper{Name: "b", Category: "Cleaning", Zipcodes: []string{"10001"}},
	)

	assert.Equal(t, []string{"a"}, helperNames(svc.Search(ctx, "Plumbing", "10001")))
	assert.Empty(t, svc.Search(ctx, "plumbing", "10001"))
	assert.Empty(t, svc.Search(ctx, "Plumb", "10001"))
	assert.Empty(t, svc.Search(ctx, "Plumbing", "99999"))
}

func TestReadsFailOpen(t *testing.T) {
	ctx := context.Background()
	svc := NewHelperService(failingStore{}, zap.NewNop())

	assert.Empty(t, svc.ListAll(ctx))
	assert.NotNil(t, svc.ListAll(ctx))
	assert.Empty(t, svc.Search(ctx, "", "10001"))
	_, ok := svc.GetByID(ctx, "any")
	assert.False(t, ok)
}

func TestUpdateRejectsUndeclaredFields(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	ids := seed(t, svc, models.Helper{Name: "a"})

	err := svc.Update(ctx, ids[0], map[string]any{"rating": 5})
	var fieldErr UnknownFieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "rating", fieldErr.Field)

	require.NoError(t, svc.Update(ctx, ids[0], map[string]any{"title": "Electrician"}))
	got, ok := svc.GetByID(ctx, ids[0])
	require.True(t, ok)
	assert.Equal(t, "Electrician", got.Title)
	assert.Equal(t, "a", got.Name)

	err = svc.Update(ctx, "missing", map[string]any{"title": "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	ids := seed(t, svc, models.Helper{Name: "a"})

	require.NoError(t, svc.Delete(ctx, ids[0]))
	_, ok := svc.GetByID(ctx, ids[0])
	assert.False(t, ok)
	assert.NoError(t, svc.Delete(ctx, ids[0]))
}

func TestSetImage(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	ids := seed(t, svc, models.Helper{Name: "a"})

	require.NoError(t, svc.SetImage(ctx, ids[0], "avatar", "https://cdn.example.com/a.png"))
	assert.ErrorIs(t, svc.SetImage(ctx, ids[0], "logo", "x"), ErrInvalidImageKind)

	got, ok := svc.GetByID(ctx, ids[0])
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/a.png", got.Avatar)
}

func TestAddReviewRecomputesRating(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	ids := seed(t, svc, models.Helper{Name: "a", Rating: 4, RatingCount: 1})

	_, err := svc.AddReview(ctx, ids[0], models.Review{ReviewerUserID: "u1", Rating: 0})
	assert.ErrorIs(t, err, ErrInvalidReview)

	h, err := svc.AddReview(ctx, ids[0], models.Review{ReviewerUserID: "u1", Rating: 5, Comment: "great"})
	require.NoError(t, err)
	assert.Equal(t, 2, h.RatingCount)
	assert.InDelta(t, 4.5, h.Rating, 0.001)

	got, ok := svc.GetByID(ctx, ids[0])
	require.True(t, ok)
	require.Len(t, got.Reviews, 1)
	assert.NotEmpty(t, got.Reviews[0].ReviewID)
	assert.Equal(t, "great", got.Reviews[0].Comment)
	assert.InDelta(t, 4.5, got.Rating, 0.001)

	_, err = svc.AddReview(ctx, "missing", models.Review{Rating: 3})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func helperNames(hs []models.Helper) []string {
	out := make([]string, 0, len(hs))
	for _, h := range hs {
		out = append(out, h.Name)
	}
	return out
}
