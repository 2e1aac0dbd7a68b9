package catalog

import (
	"context"

	"doitto/database/repository"
	"doitto/models"
	"doitto/utils"

	"go.uber.org/zap"
)

// CatalogService manages the user-extensible list of service categories.
type CatalogService interface {
	List(ctx context.Context) ([]models.ServiceCategory, error)
	Search(ctx context.Context, query string) ([]models.ServiceCategory, error)
	// FindOrCreate returns the category whose name matches case-insensitively,
	// persisting a new one with no subcategories when none does. created reports which.
	FindOrCreate(ctx context.Context, name string) (cat *models.ServiceCategory, created bool, err error)
	Add(ctx context.Context, name string) (string, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

// Cache holds the full category list between writes.
type Cache interface {
	Load(ctx context.Context) ([]models.ServiceCategory, bool)
	Save(ctx context.Context, categories []models.ServiceCategory)
	Invalidate(ctx context.Context)
}

// DefaultCatalogService is the production implementation. Cache may be nil.
type DefaultCatalogService struct {
	Store  repository.Store[models.ServiceCategory]
	Cache  Cache
	Logger *zap.Logger
}

func NewCatalogService(store repository.Store[models.ServiceCategory], cache Cache, logger *zap.Logger) *DefaultCatalogService {
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &DefaultCatalogService{Store: store, Cache: cache, Logger: logger}
}
