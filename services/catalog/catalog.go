package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"doitto/models"

	"go.uber.org/zap"
)

var ErrNameRequired = errors.New("category name is required")

func (s *DefaultCatalogService) List(ctx context.Context) ([]models.ServiceCategory, error) {
	if s.Cache != nil {
		if categories, ok := s.Cache.Load(ctx); ok {
			return categories, nil
		}
	}
	categories, err := s.Store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if s.Cache != nil {
		s.Cache.Save(ctx, categories)
	}
	return categories, nil
}

// Search returns the categories whose name contains query, ignoring case.
func (s *DefaultCatalogService) Search(ctx context.Context, query string) ([]models.ServiceCategory, error) {
	categories, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	matches := make([]models.ServiceCategory, 0, len(categories))
	for _, cat := range categories {
		if strings.Contains(strings.ToLower(cat.Name), q) {
			matches = append(matches, cat)
		}
	}
	return matches, nil
}

func (s *DefaultCatalogService) FindOrCreate(ctx context.Context, name string) (*models.ServiceCategory, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, ErrNameRequired
	}
	categories, err := s.List(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range categories {
		if strings.EqualFold(categories[i].Name, name) {
			return &categories[i], false, nil
		}
	}

	id, err := s.Add(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return &models.ServiceCategory{ID: id, Name: name, Subcategories: []string{}}, true, nil
}

// Add persists a new category with no subcategories.
func (s *DefaultCatalogService) Add(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	id, err := s.Store.Create(ctx, &models.ServiceCategory{Name: name, Subcategories: []string{}})
	if err != nil {
		return "", fmt.Errorf("failed to add category %q: %w", name, err)
	}
	s.invalidate(ctx)
	s.Logger.Info("Category added", zap.String("categoryID", id), zap.String("name", name))
	return id, nil
}

func (s *DefaultCatalogService) Update(ctx context.Context, id string, fields map[string]any) error {
	for field := range fields {
		if field != "name" && field != "subcategories" {
			return fmt.Errorf("field %q cannot be updated", field)
		}
	}
	if err := s.Store.Update(ctx, id, fields); err != nil {
		return fmt.Errorf("failed to update category %s: %w", id, err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *DefaultCatalogService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *DefaultCatalogService) invalidate(ctx context.Context) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx)
	}
}
