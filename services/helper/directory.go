package helper

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"doitto/database/repository"
	"doitto/models"

	"go.uber.org/zap"
)

// updatableFields are the stored names of the Helper fields a caller may set
// directly. id is store-owned; reviews and the rating aggregate go through AddReview.
var updatableFields = map[string]bool{
	"name":        true,
	"title":       true,
	"email":       true,
	"contact":     true,
	"avatar":      true,
	"banner":      true,
	"info":        true,
	"description": true,
	"category":    true,
	"tags":        true,
	"zipcodes":    true,
}

func (s *DefaultHelperService) ListAll(ctx context.Context) []models.Helper {
	helpers, err := s.Store.List(ctx)
	if err != nil {
		s.Logger.Error("Failed to list helpers", zap.Error(err))
		return []models.Helper{}
	}
	return helpers
}

func (s *DefaultHelperService) GetByID(ctx context.Context, id string) (*models.Helper, bool) {
	h, err := s.Store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.Logger.Debug("Helper not found", zap.String("helperID", id))
		} else {
			s.Logger.Error("Failed to fetch helper", zap.String("helperID", id), zap.Error(err))
		}
		return nil, false
	}
	return h, true
}

// Search returns helpers serving zipcode, narrowed to an exact category when
// one is given. Category matching is case-sensitive.
func (s *DefaultHelperService) Search(ctx context.Context, category, zipcode string) []models.Helper {
	filters := []repository.Filter{repository.Where("zipcodes", repository.OpArrayContains, zipcode)}
	if category != "" {
		filters = append(filters, repository.Where("category", repository.OpEqual, category))
	}

	helpers, err := s.Store.Query(ctx, filters...)
	if err != nil {
		s.Logger.Error("Failed to search helpers",
			zap.String("category", category),
			zap.String("zipcode", zipcode),
			zap.Error(err))
		return []models.Helper{}
	}
	return helpers
}

func (s *DefaultHelperService) Create(ctx context.Context, h *models.Helper) (string, error) {
	if h == nil {
		return "", errors.New("helper is required")
	}
	if h.Tags == nil {
		h.Tags = []string{}
	}
	if h.Zipcodes == nil {
		h.Zipcodes = []string{}
	}
	if h.Reviews == nil {
		h.Reviews = []models.Review{}
	}
	id, err := s.Store.Create(ctx, h)
	if err != nil {
		return "", err
	}
	s.Logger.Info("Helper created", zap.String("helperID", id), zap.String("name", h.Name))
	return id, nil
}

func (s *DefaultHelperService) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	for field := range fields {
		if !updatableFields[field] {
			return UnknownFieldError{Field: field}
		}
	}
	if err := s.Store.Update(ctx, id, fields); err != nil {
		return fmt.Errorf("failed to update helper %s: %w", id, err)
	}
	return nil
}

func (s *DefaultHelperService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete helper %s: %w", id, err)
	}
	s.Logger.Info("Helper deleted", zap.String("helperID", id))
	return nil
}

// SetImage stores an uploaded avatar or banner URL on the helper.
func (s *DefaultHelperService) SetImage(ctx context.Context, id, kind, url string) error {
	kind = strings.ToLower(kind)
	if kind != "avatar" && kind != "banner" {
		return ErrInvalidImageKind
	}
	if err := s.Store.Update(ctx, id, map[string]any{kind: url}); err != nil {
		return fmt.Errorf("failed to set %s for helper %s: %w", kind, id, err)
	}
	return nil
}
