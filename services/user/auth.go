package user

import (
	"context"
	"errors"
	"strings"
	"time"

	userRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/user"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 30 * 24 * time.Hour

// Register creates a user and signs them in.
func (s *DefaultUserService) Register(ctx context.Context, in models.RegisterInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, utils.ErrValidation.WithDetails("a valid email is required")
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.Surname) == "" {
		return nil, utils.ErrValidation.WithDetails("first name and surname are required")
	}
	if err := VerifyPasswordComplexity(in.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger().Error("failed to hash password", zap.Error(err))
		return nil, utils.ErrInternal
	}

	user := &models.User{
		ID:                    uuid.New().String(),
		Email:                 email,
		PasswordHash:          string(hashedPassword),
		FirstName:             strings.TrimSpace(in.FirstName),
		Surname:               strings.TrimSpace(in.Surname),
		Roles:                 []string{},
		Favorites:             []string{},
		RecentlyViewedVendors: []string{},
		SavedLocations:        []models.GeoPoint{},
		Images:                []models.Image{},
		CreatedAt:             time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, userRepo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger().Info("user registered", zap.String("userId", user.ID))
	return &AuthResponse{User: user, Token: token}, nil
}

// Login verifies credentials and issues a new token. The previous token stops
// working because only the latest hash is kept.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	user.TokenHash = ""
	return &AuthResponse{User: user, Token: token}, nil
}

// Logout revokes the current token.
func (s *DefaultUserService) Logout(ctx context.Context, userID string) error {
	if err := s.Repo.SetTokenHash(ctx, userID, ""); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return utils.ErrUserNotFound
		}
		return err
	}
	if s.AuthCache != nil {
		if err := s.AuthCache.Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
			s.logger().Error("failed to clear auth cache on logout", zap.String("userId", userID), zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultUserService) issueToken(ctx context.Context, user *models.User) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	token, err := utils.GenerateToken(user.ID, user.Email, ttl)
	if err != nil {
		s.logger().Error("failed to generate auth token", zap.Error(err))
		return "", utils.ErrInternal
	}

	hash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(ctx, user.ID, hash); err != nil {
		return "", err
	}
	if s.AuthCache != nil {
		if err := s.AuthCache.Set(ctx, utils.AuthCachePrefix+user.ID, hash, utils.AuthCacheTTL).Err(); err != nil {
			s.logger().Warn("failed to cache token hash", zap.String("userId", user.ID), zap.Error(err))
		}
	}
	return token, nil
}
