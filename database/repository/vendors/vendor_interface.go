package vendorRepo

import (
	"context"
	"errors"

	"github.com/RobbieBendick/curb-companion-backend/models"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrNotFound is returned when no vendor (or embedded element) matches.
	ErrNotFound = errors.New("vendor not found")
	// ErrLiveExists is returned by StartLive when the vendor already has a session.
	ErrLiveExists = errors.New("vendor already has an active live session")
	// ErrNotLive is returned by DetachLive when there is no matching session.
	ErrNotLive = errors.New("vendor has no active live session")
	// ErrConflict is returned when a conditional update lost a race.
	ErrConflict = errors.New("vendor was modified concurrently")
)

// VendorRepository defines methods for vendor data access.
type VendorRepository interface {
	// Create inserts a new vendor document.
	Create(ctx context.Context, vendor *models.Vendor) error
	// GetByID retrieves a vendor by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Vendor, error)
	// GetByOwner lists the vendors owned by a user.
	GetByOwner(ctx context.Context, ownerID string) ([]models.Vendor, error)
	// Update applies a $set of fields and returns the updated vendor.
	Update(ctx context.Context, id string, fields bson.M) (*models.Vendor, error)
	// Delete removes a vendor by its ID.
	Delete(ctx context.Context, id string) error

	// Nearby returns vendors within radiusMiles of center matching filter, nearest first.
	Nearby(ctx context.Context, center models.GeoPoint, radiusMiles float64, filter CandidateFilter) ([]models.Vendor, error)
	// Matching returns vendors matching filter without any geo constraint, newest first.
	Matching(ctx context.Context, filter CandidateFilter) ([]models.Vendor, error)
	// ReviewsByUser returns every review written by userID across all vendors.
	ReviewsByUser(ctx context.Context, userID string) ([]models.Review, error)

	// IncrementViews adds one to the view counter.
	IncrementViews(ctx context.Context, id string) error
	// IncrementFavorites adds delta to the favorites counter.
	IncrementFavorites(ctx context.Context, id string, delta int64) error

	// StartLive attaches session only if the vendor has no live session.
	StartLive(ctx context.Context, id string, session models.LiveSession) error
	// DetachLive removes and returns the live session. A non-empty sessionID restricts
	// the removal to that session.
	DetachLive(ctx context.Context, id, sessionID string) (*models.LiveSession, error)
	// AppendLiveHistory records a concluded session id on the vendor.
	AppendLiveHistory(ctx context.Context, id, historyID string) error

	// AddReview pushes review and sets rating, provided the vendor still has
	// expectedCount reviews and none by the same user.
	AddReview(ctx context.Context, id string, review models.Review, expectedCount int, rating float64) error
	// RemoveReview pulls userID's review and sets rating, provided the vendor still has
	// expectedCount reviews.
	RemoveReview(ctx context.Context, id, userID string, expectedCount int, rating float64) error

	// AddOccurrence appends a schedule occurrence.
	AddOccurrence(ctx context.Context, id string, occurrence models.Occurrence) error
	// RemoveOccurrence pulls a schedule occurrence by its ID.
	RemoveOccurrence(ctx context.Context, id, occurrenceID string) error

	// SetProfileImage replaces the vendor profile image.
	SetProfileImage(ctx context.Context, id string, image models.Image) error
	// AddImage appends to the vendor gallery.
	AddImage(ctx context.Context, id string, image models.Image) error
	// SetMenuItemImage replaces the image of one menu item.
	SetMenuItemImage(ctx context.Context, id, itemID string, image models.Image) error
}
