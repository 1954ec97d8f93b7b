package user

import (
	"context"
	"time"

	userRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/user"
	vendorRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/vendors"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/storage"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type UserService interface {
	// Authentication
	Register(ctx context.Context, in models.RegisterInput) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Logout(ctx context.Context, userID string) error

	// User Management
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, actor *models.User) ([]models.User, error)
	UpdateUser(ctx context.Context, actor *models.User, id string, in models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, actor *models.User, id string) error
	GetUserReviews(ctx context.Context, id string) ([]models.Review, error)

	// Favorites and places
	AddFavorite(ctx context.Context, actor *models.User, id, vendorID string) error
	RemoveFavorite(ctx context.Context, actor *models.User, id, vendorID string) error
	SaveLocation(ctx context.Context, actor *models.User, id string, location models.GeoPoint) error
	UnsaveLocation(ctx context.Context, actor *models.User, id string, location models.GeoPoint) error

	// Devices and roles
	UpdateDeviceToken(ctx context.Context, actor *models.User, id, token string) error
	UpdateRoles(ctx context.Context, actor *models.User, id string, roles []string) (*models.User, error)

	// Images
	UploadProfileImage(ctx context.Context, actor *models.User, id string, upload *storage.Upload) (*models.User, error)
	UploadImage(ctx context.Context, actor *models.User, id string, upload *storage.Upload) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	Vendors   vendorRepo.VendorRepository
	Images    storage.ImageService
	AuthCache *redis.Client
	TokenTTL  time.Duration
	Logger    *zap.Logger
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (s *DefaultUserService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// self reports whether actor is the user identified by id.
func self(actor *models.User, id string) bool {
	return actor != nil && actor.ID == id
}
