package cardholder

import (
	"context"
	"fmt"
	"testing"

	"doitto/database/repository"
	"doitto/models"
	"doitto/services/helper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	helpers *helper.DefaultHelperService
	holders *DefaultCardHolderService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gw := repository.NewMemoryGateway()
	helpers := helper.NewHelperService(gw.Helpers, zap.NewNop())
	return fixture{
		helpers: helpers,
		holders: NewCardHolderService(gw.CardHolders, helpers, zap.NewNop()),
	}
}

func (f fixture) seedHelper(t *testing.T, name string) string {
	t.Helper()
	id, err := f.helpers.Create(context.Background(), &models.Helper{Name: name})
	require.NoError(t, err)
	return id
}

func TestCreateStartsEmpty(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	id, err := f.holders.Create(ctx, "user-1", "  Favorites ")
	require.NoError(t, err)

	holder, err := f.holders.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Favorites", holder.Name)
	assert.Equal(t, "user-1", holder.UserID)
	assert.Empty(t, holder.HelperIDs)

	_, err = f.holders.Create(ctx, "user-1", "   ")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestAddHelperIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	hid := f.seedHelper(t, "Ana")

	id, err := f.holders.Create(ctx, "user-1", "Favorites")
	require.NoError(t, err)

	require.NoError(t, f.holders.AddHelper(ctx, id, hid))
	require.NoError(t, f.holders.AddHelper(ctx, id, hid))

	holder, err := f.holders.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{hid}, holder.HelperIDs)

	require.NoError(t, f.holders.RemoveHelper(ctx, id, hid))
	require.NoError(t, f.holders.RemoveHelper(ctx, id, hid))
	holder, err = f.holders.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, holder.HelperIDs)
}

func TestResolveMembersDropsDanglingIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.seedHelper(t, "Ana")
	b := f.seedHelper(t, "Ben")

	id, err := f.holders.Create(ctx, "user-1", "Favorites")
	require.NoError(t, err)
	for _, hid := range []string{a, b, "deleted-helper"} {
		require.NoError(t, f.holders.AddHelper(ctx, id, hid))
	}
	require.NoError(t, f.helpers.Delete(ctx, b))

	holder, err := f.holders.Get(ctx, id)
	require.NoError(t, err)
	assert.Len(t, holder.HelperIDs, 3)

	members := f.holders.ResolveMembers(ctx, *holder)
	require.Len(t, members, 1)
	assert.Equal(t, a, members[0].ID)
}

func TestResolveMembersBeyondConcurrencyLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	want := make([]string, 0, 3*maxConcurrentLookups)
	for i := 0; i < 3*maxConcurrentLookups; i++ {
		want = append(want, f.seedHelper(t, fmt.Sprintf("Helper %d", i)))
	}
	holder := models.CardHolder{ID: "holder-1", UserID: "user-1", HelperIDs: append(want, "missing-1", "missing-2")}

	members := f.holders.ResolveMembers(ctx, holder)
	got := make([]string, 0, len(members))
	for _, m := range members {
		got = append(got, m.ID)
	}
	assert.ElementsMatch(t, want, got)
}

func TestListForUserAndOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	mine, err := f.holders.Create(ctx, "user-1", "Favorites")
	require.NoError(t, err)
	_, err = f.holders.Create(ctx, "user-1", "Kitchen")
	require.NoError(t, err)
	theirs, err := f.holders.Create(ctx, "user-2", "Garden")
	require.NoError(t, err)

	holders, err := f.holders.ListForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, holders, 2)

	_, err = f.holders.Owned(ctx, mine, "user-1")
	assert.NoError(t, err)
	_, err = f.holders.Owned(ctx, theirs, "user-1")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.holders.Owned(ctx, "missing", "user-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteDoesNotCascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	hid := f.seedHelper(t, "Ana")

	id, err := f.holders.Create(ctx, "user-1", "Favorites")
	require.NoError(t, err)
	require.NoError(t, f.holders.AddHelper(ctx, id, hid))
	require.NoError(t, f.holders.Delete(ctx, id))

	_, err = f.holders.Get(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, ok := f.helpers.GetByID(ctx, hid)
	assert.True(t, ok)
}
