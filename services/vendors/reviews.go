package vendors

import (
	"context"
	"errors"
	"strings"

	vendorRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/vendors"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// reviewAttempts bounds the re-read loop when a conditional review update loses a race.
const reviewAttempts = 3

func (s *DefaultVendorService) GetReviews(ctx context.Context, id string) ([]models.Review, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.Reviews == nil {
		return []models.Review{}, nil
	}
	return v.Reviews, nil
}

// AddReview stores the actor's review and folds its rating into the vendor mean.
// The write only lands if the review count is still the one the mean was computed
// from; otherwise the vendor is re-read and the mean recomputed.
func (s *DefaultVendorService) AddReview(ctx context.Context, actor *models.User, id string, in models.ReviewInput) (*models.Review, error) {
	if actor == nil {
		return nil, utils.ErrUnauthorized
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, utils.ErrValidation.WithDetails("title is required")
	}

	review := models.Review{
		ID:          uuid.New().String(),
		UserID:      actor.ID,
		VendorID:    id,
		Title:       title,
		Description: in.Description,
		Rating:      in.Rating,
		CreatedAt:   s.now(),
	}

	for attempt := 0; attempt < reviewAttempts; attempt++ {
		v, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if v.OwnerID == actor.ID {
			return nil, ErrCannotReviewOwnVendor
		}
		if findReview(v.Reviews, actor.ID) != nil {
			return nil, ErrReviewAlreadyExists
		}

		n := len(v.Reviews)
		err = s.Repo.AddReview(ctx, id, review, n, AddToMean(v.Rating, n, review.Rating))
		if err == nil {
			return &review, nil
		}
		if !errors.Is(err, vendorRepo.ErrConflict) {
			return nil, err
		}
		s.logger().Debug("review add raced, retrying", zap.String("vendorId", id), zap.Int("attempt", attempt+1))
	}
	return nil, ErrConcurrentUpdate
}

// RemoveReview deletes the actor's review and takes its rating back out of the mean.
func (s *DefaultVendorService) RemoveReview(ctx context.Context, actor *models.User, id string) error {
	if actor == nil {
		return utils.ErrUnauthorized
	}
	for attempt := 0; attempt < reviewAttempts; attempt++ {
		v, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		existing := findReview(v.Reviews, actor.ID)
		if existing == nil {
			return ErrReviewNotFound
		}

		n := len(v.Reviews)
		err = s.Repo.RemoveReview(ctx, id, actor.ID, n, RemoveFromMean(v.Rating, n, existing.Rating))
		if err == nil {
			return nil
		}
		if !errors.Is(err, vendorRepo.ErrConflict) {
			return err
		}
		s.logger().Debug("review removal raced, retrying", zap.String("vendorId", id), zap.Int("attempt", attempt+1))
	}
	return ErrConcurrentUpdate
}

func findReview(reviews []models.Review, userID string) *models.Review {
	for i := range reviews {
		if reviews[i].UserID == userID {
			return &reviews[i]
		}
	}
	return nil
}
