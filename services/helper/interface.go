package helper

import (
	"context"

	"doitto/database/repository"
	"doitto/models"
	"doitto/utils"

	"go.uber.org/zap"
)

// HelperService is the directory of helper profile cards.
type HelperService interface {
	// Reads fail open: transport errors are logged and reported as empty results.
	ListAll(ctx context.Context) []models.Helper
	GetByID(ctx context.Context, id string) (*models.Helper, bool)
	Search(ctx context.Context, category, zipcode string) []models.Helper

	Create(ctx context.Context, h *models.Helper) (string, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error

	AddReview(ctx context.Context, id string, review models.Review) (*models.Helper, error)
	SetImage(ctx context.Context, id, kind, url string) error
}

// DefaultHelperService is the production implementation.
type DefaultHelperService struct {
	Store  repository.Store[models.Helper]
	Logger *zap.Logger
}

// NewHelperService wires the directory to its store. A nil logger falls back to the global one.
func NewHelperService(store repository.Store[models.Helper], logger *zap.Logger) *DefaultHelperService {
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &DefaultHelperService{Store: store, Logger: logger}
}
