// Package home assembles the discovery sections shown on the app's home screen.
package home

import (
	"context"
	"time"

	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/ranking"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var ErrNoVendorsFound = utils.NewAppError(404, "noVendorsFound", "No vendors found")

// Section is one titled, ranked list of vendors.
type Section struct {
	Title   string              `json:"title"`
	Vendors []models.VendorView `json:"vendors"`
}

// Query locates the home screen.
type Query struct {
	Center      *models.GeoPoint
	RadiusMiles *float64 // nil means utils.DefaultRadiusMiles
	Tags        []string
}

type HomeService interface {
	// Sections returns the non-empty sections in display order. viewer may be nil;
	// a viewer with favorites gets a leading Favorites section.
	Sections(ctx context.Context, q Query, viewer *models.User) ([]Section, error)
}

// Ranker orders vendors by strategy. *ranking.Engine satisfies it.
type Ranker interface {
	Rank(ctx context.Context, q ranking.Query) ([]models.VendorView, error)
}

// DefaultHomeService ranks every section concurrently. When Cache is set the
// sections that do not depend on the viewer are cached for CacheTTL.
type DefaultHomeService struct {
	Ranker   Ranker
	Cache    *redis.Client
	CacheTTL time.Duration
	Logger   *zap.Logger
}

var titles = map[ranking.Strategy]string{
	ranking.Favorited:    "Favorites",
	ranking.Nearest:      "Nearest",
	ranking.Newest:       "Newest",
	ranking.MostPopular:  "Most popular",
	ranking.HighestRated: "Highest rated",
}
