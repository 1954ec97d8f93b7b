package user

import (
	"context"
	"errors"
	"strings"

	userRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/user"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// mapNotFound turns the repository sentinel into the caller-facing error.
func mapNotFound(err error) error {
	if errors.Is(err, userRepo.ErrNotFound) {
		return utils.ErrUserNotFound
	}
	return err
}

func (s *DefaultUserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return user, nil
}

// ListUsers returns every user. Admin only.
func (s *DefaultUserService) ListUsers(ctx context.Context, actor *models.User) ([]models.User, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, utils.ErrForbidden
	}
	return s.Repo.List(ctx)
}

func (s *DefaultUserService) UpdateUser(ctx context.Context, actor *models.User, id string, in models.UserUpdate) (*models.User, error) {
	if !self(actor, id) {
		return nil, utils.ErrForbidden
	}

	if in.Location != nil {
		if !in.Location.Valid() {
			return nil, ErrInvalidLocation
		}
		current, err := s.Repo.GetByID(ctx, id)
		if err != nil {
			return nil, mapNotFound(err)
		}
		loc := in.Location.Clone()
		loc.Type = "Point"
		var previous *models.GeoPoint
		if current.Location != nil && current.Location.Valid() {
			previous = current.Location
		}
		if err := s.Repo.SetLocation(ctx, id, loc, previous); err != nil {
			return nil, mapNotFound(err)
		}
	}

	fields := bson.M{}
	if v := strings.TrimSpace(in.FirstName); v != "" {
		fields["firstName"] = v
	}
	if v := strings.TrimSpace(in.Surname); v != "" {
		fields["surname"] = v
	}
	if len(fields) == 0 {
		if in.Location == nil {
			return nil, utils.ErrValidation.WithDetails("no fields to update")
		}
		return s.GetUser(ctx, id)
	}
	user, err := s.Repo.UpdateSetDocument(ctx, id, fields)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return user, nil
}

func (s *DefaultUserService) DeleteUser(ctx context.Context, actor *models.User, id string) error {
	if !self(actor, id) && (actor == nil || !actor.IsAdmin()) {
		return utils.ErrForbidden
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	if s.AuthCache != nil {
		if err := s.AuthCache.Del(ctx, utils.AuthCachePrefix+id).Err(); err != nil {
			s.logger().Error("failed to clear auth cache for deleted user", zap.String("userId", id), zap.Error(err))
		}
	}
	s.logger().Info("user deleted", zap.String("userId", id), zap.String("by", actor.ID))
	return nil
}

func (s *DefaultUserService) GetUserReviews(ctx context.Context, id string) ([]models.Review, error) {
	if _, err := s.GetUser(ctx, id); err != nil {
		return nil, err
	}
	reviews, err := s.Vendors.ReviewsByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}
