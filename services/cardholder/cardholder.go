package cardholder

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"doitto/database/repository"
	"doitto/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const helperIDsField = "helperIds"

// maxConcurrentLookups bounds the GetByID fan-out of ResolveMembers.
const maxConcurrentLookups = 8

func (s *DefaultCardHolderService) Create(ctx context.Context, userID, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	holder := &models.CardHolder{UserID: userID, Name: name, HelperIDs: []string{}}
	id, err := s.Store.Create(ctx, holder)
	if err != nil {
		return "", err
	}
	s.Logger.Info("Card holder created", zap.String("holderID", id), zap.String("userID", userID))
	return id, nil
}

func (s *DefaultCardHolderService) Get(ctx context.Context, id string) (*models.CardHolder, error) {
	holder, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load card holder %s: %w", id, err)
	}
	return holder, nil
}

// Owned loads a card holder and checks it belongs to userID.
func (s *DefaultCardHolderService) Owned(ctx context.Context, id, userID string) (*models.CardHolder, error) {
	holder, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if holder.UserID != userID {
		return nil, ErrForbidden
	}
	return holder, nil
}

// ListForUser returns the user's card holders in no particular order.
func (s *DefaultCardHolderService) ListForUser(ctx context.Context, userID string) ([]models.CardHolder, error) {
	holders, err := s.Store.Query(ctx, repository.Where("userId", repository.OpEqual, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list card holders for %s: %w", userID, err)
	}
	return holders, nil
}

// AddHelper adds helperID to the holder's set. Adding a present id is a no-op.
// The helper's existence is not checked.
func (s *DefaultCardHolderService) AddHelper(ctx context.Context, holderID, helperID string) error {
	if err := s.Store.AddToSet(ctx, holderID, helperIDsField, helperID); err != nil {
		return fmt.Errorf("failed to add helper %s to card holder %s: %w", helperID, holderID, err)
	}
	return nil
}

func (s *DefaultCardHolderService) RemoveHelper(ctx context.Context, holderID, helperID string) error {
	if err := s.Store.Pull(ctx, holderID, helperIDsField, helperID); err != nil {
		return fmt.Errorf("failed to remove helper %s from card holder %s: %w", helperID, holderID, err)
	}
	return nil
}

// ResolveMembers fetches every member helper concurrently. Ids that no longer
// resolve are dropped; the result order is unspecified.
func (s *DefaultCardHolderService) ResolveMembers(ctx context.Context, holder models.CardHolder) []models.Helper {
	var (
		mu      sync.Mutex
		members = make([]models.Helper, 0, len(holder.HelperIDs))
	)

	var g errgroup.Group
	g.SetLimit(maxConcurrentLookups)
	for _, id := range holder.HelperIDs {
		g.Go(func() error {
			h, ok := s.Helpers.GetByID(ctx, id)
			if !ok {
				s.Logger.Debug("Dropping unresolved card holder member",
					zap.String("holderID", holder.ID), zap.String("helperID", id))
				return nil
			}
			mu.Lock()
			members = append(members, *h)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return members
}

// Delete removes the holder only; the helpers it referenced are untouched.
func (s *DefaultCardHolderService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete card holder %s: %w", id, err)
	}
	return nil
}
