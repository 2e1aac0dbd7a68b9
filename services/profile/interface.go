package profile

import (
	"context"
	"time"

	"doitto/database/repository"
	"doitto/models"
	"doitto/utils"

	"go.uber.org/zap"
)

// ProfileService reads and merges the per-user profile document.
type ProfileService interface {
	// GetProfile treats a missing profile as a valid empty state.
	GetProfile(ctx context.Context, uid string) (*models.UserProfile, bool)
	// LoadProfile is GetProfile with the failure kept: repository.ErrNotFound or a transport error.
	LoadProfile(ctx context.Context, uid string) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, uid string, p models.UserProfile) error
	SetBanner(ctx context.Context, uid, url string) error
}

// DefaultProfileService is the production implementation.
type DefaultProfileService struct {
	Store  repository.Store[models.UserProfile]
	Logger *zap.Logger
	now    func() time.Time
}

func NewProfileService(store repository.Store[models.UserProfile], logger *zap.Logger) *DefaultProfileService {
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &DefaultProfileService{Store: store, Logger: logger, now: time.Now}
}
