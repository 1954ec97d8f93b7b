// Package vendors implements vendor profiles, live sessions, schedules and reviews.
package vendors

import (
	"context"
	"time"

	liveRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/live"
	tagRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/tag"
	userRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/user"
	vendorRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/vendors"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/ranking"
	"github.com/RobbieBendick/curb-companion-backend/services/storage"
	"github.com/RobbieBendick/curb-companion-backend/services/tasks"

	"go.uber.org/zap"
)

// VendorService is the vendor-facing surface of the service. Every actor argument
// may be nil for anonymous callers.
type VendorService interface {
	// Profiles
	GetVendor(ctx context.Context, id string, viewer *models.User) (*models.VendorView, error)
	GetVendorsByOwner(ctx context.Context, ownerID string) ([]models.VendorView, error)
	SearchVendors(ctx context.Context, q ranking.SearchQuery) ([]models.VendorView, error)
	CreateVendor(ctx context.Context, actor *models.User, in models.VendorInput) (*models.VendorView, error)
	UpdateVendor(ctx context.Context, actor *models.User, id string, in models.VendorUpdate) (*models.VendorView, error)
	DeleteVendor(ctx context.Context, actor *models.User, id string) error

	// Live sessions
	GoLive(ctx context.Context, actor *models.User, id string, location *models.GeoPoint) (*models.LiveSession, error)
	EndLive(ctx context.Context, actor *models.User, id string) (*models.LiveHistory, error)
	// ExpireLive ends sessionID if it is still the vendor's live session.
	ExpireLive(ctx context.Context, vendorID, sessionID string) error

	// Schedule
	AddOccurrence(ctx context.Context, actor *models.User, id string, in models.OccurrenceInput) (*models.Occurrence, error)
	RemoveOccurrence(ctx context.Context, actor *models.User, id, occurrenceID string) error

	// Reviews
	GetReviews(ctx context.Context, id string) ([]models.Review, error)
	AddReview(ctx context.Context, actor *models.User, id string, in models.ReviewInput) (*models.Review, error)
	RemoveReview(ctx context.Context, actor *models.User, id string) error

	// Images
	UploadProfileImage(ctx context.Context, actor *models.User, id string, upload *storage.Upload) (*models.Image, error)
	UploadImage(ctx context.Context, actor *models.User, id string, upload *storage.Upload) (*models.Image, error)
	UploadMenuItemImage(ctx context.Context, actor *models.User, id, itemID string, upload *storage.Upload) (*models.Image, error)
}

// RuleValidator checks recurrence lines before they are stored.
// *recurrence.Engine satisfies it.
type RuleValidator interface {
	Validate(lines []string) error
}

// Searcher runs free-text vendor searches. *ranking.Engine satisfies it.
type Searcher interface {
	Search(ctx context.Context, q ranking.SearchQuery) ([]models.VendorView, error)
}

// DefaultVendorService is the production implementation.
type DefaultVendorService struct {
	Repo         vendorRepo.VendorRepository
	Users        userRepo.UserRepository
	Tags         tagRepo.TagRepository
	History      liveRepo.LiveHistoryRepository
	Images       storage.ImageService
	Search       Searcher
	Availability ranking.Availability
	Rules        RuleValidator
	// Scheduler and LiveMaxDuration enable automatic expiry of live sessions.
	Scheduler       tasks.Scheduler
	LiveMaxDuration time.Duration
	Logger          *zap.Logger
	Now             func() time.Time
}

func (s *DefaultVendorService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *DefaultVendorService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// canManage reports whether actor may change v.
func canManage(actor *models.User, v *models.Vendor) bool {
	return actor != nil && (actor.ID == v.OwnerID || actor.IsAdmin())
}

func isOwner(actor *models.User, v *models.Vendor) bool {
	return actor != nil && actor.ID == v.OwnerID
}
