package user

import (
	"context"
	"errors"

	userRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/user"
	vendorRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/vendors"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// AddFavorite adds vendorID to the user's favorites and bumps the vendor counter.
func (s *DefaultUserService) AddFavorite(ctx context.Context, actor *models.User, id, vendorID string) error {
	if !self(actor, id) {
		return utils.ErrForbidden
	}
	if _, err := s.Vendors.GetByID(ctx, vendorID); err != nil {
		if errors.Is(err, vendorRepo.ErrNotFound) {
			return utils.ErrVendorNotFound
		}
		return err
	}

	switch err := s.Repo.AddFavorite(ctx, id, vendorID); {
	case errors.Is(err, userRepo.ErrAlreadyPresent):
		return ErrVendorAlreadyFavorited
	case err != nil:
		return mapNotFound(err)
	}
	s.adjustFavorites(ctx, vendorID, 1)
	return nil
}

func (s *DefaultUserService) RemoveFavorite(ctx context.Context, actor *models.User, id, vendorID string) error {
	if !self(actor, id) {
		return utils.ErrForbidden
	}
	switch err := s.Repo.RemoveFavorite(ctx, id, vendorID); {
	case errors.Is(err, userRepo.ErrNotPresent):
		return ErrVendorNotFavorited
	case err != nil:
		return mapNotFound(err)
	}
	s.adjustFavorites(ctx, vendorID, -1)
	return nil
}

// adjustFavorites keeps the vendor counter in step. A failed counter update is
// logged, not returned.
func (s *DefaultUserService) adjustFavorites(ctx context.Context, vendorID string, delta int64) {
	if err := s.Vendors.IncrementFavorites(ctx, vendorID, delta); err != nil && !errors.Is(err, vendorRepo.ErrNotFound) {
		s.logger().Warn("failed to update vendor favorites counter", zap.String("vendorId", vendorID), zap.Error(err))
	}
}

func (s *DefaultUserService) SaveLocation(ctx context.Context, actor *models.User, id string, location models.GeoPoint) error {
	if !self(actor, id) {
		return utils.ErrForbidden
	}
	if !location.Valid() {
		return ErrInvalidLocation
	}
	location = location.Clone()
	location.Type = "Point"
	switch err := s.Repo.AddSavedLocation(ctx, id, location); {
	case errors.Is(err, userRepo.ErrAlreadyPresent):
		return ErrLocationAlreadySaved
	case err != nil:
		return mapNotFound(err)
	}
	return nil
}

func (s *DefaultUserService) UnsaveLocation(ctx context.Context, actor *models.User, id string, location models.GeoPoint) error {
	if !self(actor, id) {
		return utils.ErrForbidden
	}
	if !location.Valid() {
		return ErrInvalidLocation
	}
	switch err := s.Repo.RemoveSavedLocation(ctx, id, location); {
	case errors.Is(err, userRepo.ErrNotPresent):
		return ErrLocationNotFound
	case err != nil:
		return mapNotFound(err)
	}
	return nil
}

func (s *DefaultUserService) UpdateDeviceToken(ctx context.Context, actor *models.User, id, token string) error {
	if !self(actor, id) {
		return utils.ErrForbidden
	}
	if token == "" {
		return utils.ErrValidation.WithDetails("deviceToken is required")
	}
	_, err := s.Repo.UpdateSetDocument(ctx, id, bson.M{"deviceToken": token})
	return mapNotFound(err)
}

// UpdateRoles replaces the user's roles. Only admins may call it.
func (s *DefaultUserService) UpdateRoles(ctx context.Context, actor *models.User, id string, roles []string) (*models.User, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, utils.ErrForbidden
	}
	unique := make([]string, 0, len(roles))
	seen := map[string]bool{}
	for _, r := range roles {
		if !models.ValidRole(r) {
			return nil, ErrInvalidRole.WithDetails(r)
		}
		if !seen[r] {
			seen[r] = true
			unique = append(unique, r)
		}
	}
	user, err := s.Repo.UpdateSetDocument(ctx, id, bson.M{"roles": unique})
	if err != nil {
		return nil, mapNotFound(err)
	}
	s.logger().Info("user roles updated", zap.String("userId", id), zap.Strings("roles", unique), zap.String("by", actor.ID))
	return user, nil
}
