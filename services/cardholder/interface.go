package cardholder

import (
	"context"

	"doitto/database/repository"
	"doitto/models"
	"doitto/services/helper"
	"doitto/utils"

	"go.uber.org/zap"
)

// CardHolderService manages user-owned collections of helpers.
type CardHolderService interface {
	Create(ctx context.Context, userID, name string) (string, error)
	Get(ctx context.Context, id string) (*models.CardHolder, error)
	Owned(ctx context.Context, id, userID string) (*models.CardHolder, error)
	ListForUser(ctx context.Context, userID string) ([]models.CardHolder, error)
	AddHelper(ctx context.Context, holderID, helperID string) error
	RemoveHelper(ctx context.Context, holderID, helperID string) error
	ResolveMembers(ctx context.Context, holder models.CardHolder) []models.Helper
	Delete(ctx context.Context, id string) error
}

// DefaultCardHolderService is the production implementation.
type DefaultCardHolderService struct {
	Store   repository.Store[models.CardHolder]
	Helpers helper.HelperService
	Logger  *zap.Logger
}

func NewCardHolderService(store repository.Store[models.CardHolder], helpers helper.HelperService, logger *zap.Logger) *DefaultCardHolderService {
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &DefaultCardHolderService{Store: store, Helpers: helpers, Logger: logger}
}
