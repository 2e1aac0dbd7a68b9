package helper

import (
	"context"
	"fmt"
	"math"
	"time"

	"doitto/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddReview appends a review and folds its rating into the helper's average.
// The read and the write are separate calls; concurrent reviews can race.
func (s *DefaultHelperService) AddReview(ctx context.Context, id string, review models.Review) (*models.Helper, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return nil, ErrInvalidReview
	}

	h, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load helper %s: %w", id, err)
	}

	review.ReviewID = uuid.NewString()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	total := h.Rating*float64(h.RatingCount) + float64(review.Rating)
	h.RatingCount++
	h.Rating = math.Round(total/float64(h.RatingCount)*100) / 100
	h.Reviews = append(h.Reviews, review)

	err = s.Store.Update(ctx, id, map[string]any{
		"reviews":     h.Reviews,
		"rating":      h.Rating,
		"ratingCount": h.RatingCount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save review for helper %s: %w", id, err)
	}

	s.Logger.Info("Review added",
		zap.String("helperID", id),
		zap.String("reviewer", review.ReviewerUserID),
		zap.Int("rating", review.Rating))
	return h, nil
}
