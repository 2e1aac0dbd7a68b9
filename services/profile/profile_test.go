package profile

import (
	"context"
	"testing"
	"time"

	"doitto/database/repository"
	"doitto/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *DefaultProfileService {
	t.Helper()
	svc := NewProfileService(repository.NewMemoryStore[models.UserProfile](), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestGetProfileMissingIsEmptyState(t *testing.T) {
	svc := newTestService(t)
	p, ok := svc.GetProfile(context.Background(), "nobody")
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestSaveProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	in := models.UserProfile{
		Address:     models.Address{Street: "1 Main St", City: "Austin", State: "tx", Zip: "73301"},
		PhoneNumber: "512-555-0100",
	}
	require.NoError(t, svc.SaveProfile(ctx, "uid-1", in))

	got, ok := svc.GetProfile(ctx, "uid-1")
	require.True(t, ok)
	assert.Equal(t, "uid-1", got.UID)
	assert.Equal(t, "1 Main St", got.Address.Street)
	assert.Equal(t, "TX", got.Address.State)
	assert.Equal(t, "73301", got.Address.Zip)
	assert.Equal(t, "512-555-0100", got.PhoneNumber)
	assert.Equal(t, models.RoleRegular, got.Role)
	assert.True(t, got.CreatedAt.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
}

func TestSaveProfileKeepsOmittedFields(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	require.NoError(t, svc.SaveProfile(ctx, "uid-1", models.UserProfile{
		Address:     models.Address{City: "Austin", State: "TX", Zip: "73301"},
		PhoneNumber: "512-555-0100",
	}))
	first, ok := svc.GetProfile(ctx, "uid-1")
	require.True(t, ok)

	svc.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, svc.SaveProfile(ctx, "uid-1", models.UserProfile{PhoneNumber: "512-555-0199", Role: models.RolePro}))

	got, ok := svc.GetProfile(ctx, "uid-1")
	require.True(t, ok)
	assert.Equal(t, "512-555-0199", got.PhoneNumber)
	assert.Equal(t, "Austin", got.Address.City)
	assert.Equal(t, models.RoleRegular, got.Role)
	assert.True(t, got.CreatedAt.Equal(first.CreatedAt))
}

func TestSaveProfilePartialAddressKeepsOtherParts(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	require.NoError(t, svc.SaveProfile(ctx, "uid-1", models.UserProfile{
		Address: models.Address{Street: "1 Main St", City: "Austin", State: "TX", Zip: "73301"},
	}))
	require.NoError(t, svc.SaveProfile(ctx, "uid-1", models.UserProfile{
		Address: models.Address{Zip: "73302"},
	}))

	got, ok := svc.GetProfile(ctx, "uid-1")
	require.True(t, ok)
	assert.Equal(t, models.Address{Street: "1 Main St", City: "Austin", State: "TX", Zip: "73302"}, got.Address)
}

func TestSaveProfileValidatesBeforeWriting(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	err := svc.SaveProfile(ctx, "uid-1", models.UserProfile{
		Address:     models.Address{State: "XX", Zip: "1234"},
		PhoneNumber: "5125550100",
	})
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "phoneNumber")
	assert.Contains(t, fieldErrs, "address.zip")
	assert.Contains(t, fieldErrs, "address.state")

	_, ok := svc.GetProfile(ctx, "uid-1")
	assert.False(t, ok)
}

func TestSetBanner(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	require.NoError(t, svc.SaveProfile(ctx, "uid-1", models.UserProfile{PhoneNumber: "512-555-0100"}))
	require.NoError(t, svc.SetBanner(ctx, "uid-1", "https://cdn.example.com/banners/1_b.png"))

	got, ok := svc.GetProfile(ctx, "uid-1")
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/banners/1_b.png", got.BannerURL)
	assert.Equal(t, "512-555-0100", got.PhoneNumber)
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidPhone("555-123-4567"))
	assert.False(t, ValidPhone("555-1234-567"))
	assert.False(t, ValidPhone("(555) 123-4567"))

	assert.True(t, ValidZip("02134"))
	assert.False(t, ValidZip("2134"))
	assert.False(t, ValidZip("02134-1234"))

	assert.True(t, ValidState("ny"))
	assert.True(t, ValidState("DC"))
	assert.False(t, ValidState("PR"))
	assert.False(t, ValidState(""))
}
