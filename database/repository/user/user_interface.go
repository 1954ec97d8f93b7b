package userRepo

import (
	"context"
	"errors"

	"github.com/RobbieBendick/curb-companion-backend/models"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrNotFound is returned when no user matches.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate is returned when a unique value (email) is already taken.
	ErrDuplicate = errors.New("user already exists")
	// ErrAlreadyPresent is returned when adding an element the user already has.
	ErrAlreadyPresent = errors.New("value already present")
	// ErrNotPresent is returned when removing an element the user does not have.
	ErrNotPresent = errors.New("value not present")
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID. Secrets are not loaded.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.User, error)
	// GetByEmail retrieves a user, including secrets, by email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetAdmins lists users holding the ADMIN role.
	GetAdmins(ctx context.Context) ([]models.User, error)
	// List returns every user, oldest first. Secrets are not loaded.
	List(ctx context.Context) ([]models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// UpdateSetDocument applies a $set and returns the updated user.
	UpdateSetDocument(ctx context.Context, id string, updateDoc bson.M) (*models.User, error)
	// Delete removes a user record by its ID.
	Delete(ctx context.Context, id string) error

	// SetTokenHash stores the hash of the user's current token.
	SetTokenHash(ctx context.Context, id, hash string) error
	// AddFavorite adds a vendor to the favorites set.
	AddFavorite(ctx context.Context, id, vendorID string) error
	// RemoveFavorite removes a vendor from the favorites set.
	RemoveFavorite(ctx context.Context, id, vendorID string) error
	// RemoveFavoriteEverywhere drops a vendor from every user's favorites.
	RemoveFavoriteEverywhere(ctx context.Context, vendorID string) error
	// PushRecentlyViewed moves vendorID to the front of the recently viewed list.
	PushRecentlyViewed(ctx context.Context, id, vendorID string) error
	// SetLocation replaces the current location, saving previous when non-nil.
	SetLocation(ctx context.Context, id string, location models.GeoPoint, previous *models.GeoPoint) error
	// AddSavedLocation saves a location unless one with the same coordinates exists.
	AddSavedLocation(ctx context.Context, id string, location models.GeoPoint) error
	// RemoveSavedLocation removes the saved location with the same coordinates.
	RemoveSavedLocation(ctx context.Context, id string, location models.GeoPoint) error
	// SetProfileImage replaces the profile image.
	SetProfileImage(ctx context.Context, id string, image models.Image) error
	// AddImage appends to the user's gallery.
	AddImage(ctx context.Context, id string, image models.Image) error
}
