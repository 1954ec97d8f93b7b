// Package ranking retrieves vendors around a point and orders them by a named
// strategy, attaching open-now status and distance to each result.
package ranking

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	vendorRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/vendors"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/availability"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"go.uber.org/zap"
)

var (
	ErrCenterRequired = utils.NewAppError(400, "locationRequired", "Location is required")
	ErrInvalidRadius  = utils.NewAppError(400, "validationErrors", "Radius must be a positive number of miles")
	ErrInvalidPage    = utils.NewAppError(400, "validationErrors", "Skip and limit must not be negative")
)

// Source yields candidate vendors. Implementations may prefilter; the engine
// re-applies every criterion itself.
type Source interface {
	Nearby(ctx context.Context, center models.GeoPoint, radiusMiles float64, filter vendorRepo.CandidateFilter) ([]models.Vendor, error)
	Matching(ctx context.Context, filter vendorRepo.CandidateFilter) ([]models.Vendor, error)
}

// Availability decides open-now status. *availability.Engine satisfies it.
type Availability interface {
	IsOpen(v *models.Vendor, now time.Time) availability.Status
}

// Query describes one Rank call.
type Query struct {
	Strategy    Strategy
	Center      *models.GeoPoint
	RadiusMiles *float64 // nil means utils.DefaultRadiusMiles
	Tags        []string
	FavoriteIDs []string // only read by Favorited
}

// SearchQuery describes a free-text search. Center is optional; without it there
// is no radius filter and results keep the source's order.
type SearchQuery struct {
	Text         string
	Tags         []string
	CateringOnly bool
	MinRating    float64
	Center       *models.GeoPoint
	RadiusMiles  *float64
	Skip         int
	Limit        int // zero means no limit
}

// Engine ranks vendors. It keeps no per-request state.
type Engine struct {
	source       Source
	availability Availability
	logger       *zap.Logger
	now          func() time.Time
}

func NewEngine(source Source, avail Availability, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{source: source, availability: avail, logger: logger, now: time.Now}
}

type candidate struct {
	view     models.VendorView
	distance float64
}

// Rank returns the vendors within the query radius ordered by q.Strategy. An empty
// slice is a normal result.
func (e *Engine) Rank(ctx context.Context, q Query) ([]models.VendorView, error) {
	if !q.Strategy.Valid() {
		return nil, ErrUnknownStrategy.WithDetails(string(q.Strategy))
	}
	radius, err := checkArea(q.Center, q.RadiusMiles)
	if err != nil {
		return nil, err
	}

	filter := vendorRepo.CandidateFilter{Tags: q.Tags}
	var favorites map[string]struct{}
	if q.Strategy == Favorited {
		if len(q.FavoriteIDs) == 0 {
			resultSize.WithLabelValues(string(q.Strategy)).Observe(0)
			return []models.VendorView{}, nil
		}
		filter.IDs = q.FavoriteIDs
		favorites = make(map[string]struct{}, len(q.FavoriteIDs))
		for _, id := range q.FavoriteIDs {
			favorites[id] = struct{}{}
		}
	}

	vendors, err := e.source.Nearby(ctx, *q.Center, radius, filter)
	if err != nil {
		return nil, err
	}

	now := e.now()
	candidates := make([]candidate, 0, len(vendors))
	for i := range vendors {
		v := &vendors[i]
		d, ok := e.within(v, *q.Center, radius)
		if !ok {
			continue
		}
		if !hasAnyTag(v, q.Tags) {
			candidatesDiscarded.WithLabelValues("tags").Inc()
			continue
		}
		if favorites != nil {
			if _, fav := favorites[v.ID]; !fav {
				candidatesDiscarded.WithLabelValues("favorites").Inc()
				continue
			}
		}
		candidates = append(candidates, e.annotate(v, &d, now))
	}

	sort.SliceStable(candidates, less(q.Strategy, candidates))

	resultSize.WithLabelValues(string(q.Strategy)).Observe(float64(len(candidates)))
	return views(candidates), nil
}

// Search matches q.Text against vendor titles and tag titles, ANDed with the tag,
// catering and rating criteria. With a center the results are radius-filtered and
// nearest first. Skip and Limit apply last.
func (e *Engine) Search(ctx context.Context, q SearchQuery) ([]models.VendorView, error) {
	if q.Skip < 0 || q.Limit < 0 {
		return nil, ErrInvalidPage
	}
	filter := vendorRepo.CandidateFilter{
		Text:         q.Text,
		Tags:         q.Tags,
		CateringOnly: q.CateringOnly,
		MinRating:    q.MinRating,
	}

	var (
		vendors []models.Vendor
		radius  float64
		err     error
	)
	if q.Center != nil {
		if radius, err = checkArea(q.Center, q.RadiusMiles); err != nil {
			return nil, err
		}
		vendors, err = e.source.Nearby(ctx, *q.Center, radius, filter)
	} else {
		vendors, err = e.source.Matching(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	now := e.now()
	needle := strings.ToLower(q.Text)
	candidates := make([]candidate, 0, len(vendors))
	for i := range vendors {
		v := &vendors[i]
		var dist *float64
		if q.Center != nil {
			d, ok := e.within(v, *q.Center, radius)
			if !ok {
				continue
			}
			dist = &d
		}
		if !matchesText(v, needle) || !hasAnyTag(v, q.Tags) ||
			(q.CateringOnly && !v.IsCatering) || v.Rating < q.MinRating {
			candidatesDiscarded.WithLabelValues("search").Inc()
			continue
		}
		candidates = append(candidates, e.annotate(v, dist, now))
	}

	if q.Center != nil {
		sort.SliceStable(candidates, less(Nearest, candidates))
	}
	candidates = page(candidates, q.Skip, q.Limit)

	resultSize.WithLabelValues("search").Observe(float64(len(candidates)))
	return views(candidates), nil
}

// within computes the distance from center to v's home location and reports
// whether it is inside the radius.
func (e *Engine) within(v *models.Vendor, center models.GeoPoint, radius float64) (float64, bool) {
	if v.Location == nil || !v.Location.Valid() {
		e.logger.Debug("Discarding vendor without a usable location", zap.String("vendorId", v.ID))
		candidatesDiscarded.WithLabelValues("location").Inc()
		return 0, false
	}
	d := Distance(center, *v.Location)
	if d > radius {
		candidatesDiscarded.WithLabelValues("radius").Inc()
		return 0, false
	}
	return d, true
}

// annotate evaluates availability before any sorting so open-now can be a sort key.
// The vendor is copied; only the copy's location is replaced by the display location.
func (e *Engine) annotate(v *models.Vendor, dist *float64, now time.Time) candidate {
	status := e.availability.IsOpen(v, now)
	view := models.VendorView{Vendor: *v, IsOpen: status.Open, Distance: dist}
	if status.Location != nil {
		view.Location = status.Location
	}
	c := candidate{view: view}
	if dist != nil {
		c.distance = *dist
	}
	return c
}

func less(s Strategy, c []candidate) func(i, j int) bool {
	switch s {
	case Newest:
		return func(i, j int) bool {
			if c[i].distance != c[j].distance {
				return c[i].distance < c[j].distance
			}
			return c[i].view.CreatedAt.After(c[j].view.CreatedAt)
		}
	case MostPopular:
		return func(i, j int) bool {
			if c[i].view.Views != c[j].view.Views {
				return c[i].view.Views > c[j].view.Views
			}
			if c[i].view.IsOpen != c[j].view.IsOpen {
				return c[i].view.IsOpen
			}
			return c[i].distance < c[j].distance
		}
	case HighestRated:
		return func(i, j int) bool {
			if c[i].view.Rating != c[j].view.Rating {
				return c[i].view.Rating > c[j].view.Rating
			}
			if c[i].view.IsOpen != c[j].view.IsOpen {
				return c[i].view.IsOpen
			}
			return c[i].distance < c[j].distance
		}
	default: // Nearest, Favorited
		return func(i, j int) bool {
			return c[i].distance < c[j].distance
		}
	}
}

// checkArea applies the default radius only when none was given; an explicit
// zero is rejected like any other non-positive radius.
func checkArea(center *models.GeoPoint, radius *float64) (float64, error) {
	if center == nil || !center.Valid() {
		return 0, ErrCenterRequired
	}
	if radius == nil {
		return utils.DefaultRadiusMiles, nil
	}
	r := *radius
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, ErrInvalidRadius
	}
	return r, nil
}

// Miles is a convenience for building queries with an explicit radius.
func Miles(r float64) *float64 {
	return &r
}

func hasAnyTag(v *models.Vendor, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if v.HasTag(t) {
			return true
		}
	}
	return false
}

func matchesText(v *models.Vendor, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(v.Title), needle) {
		return true
	}
	for _, t := range v.Tags {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			return true
		}
	}
	return false
}

func page(c []candidate, skip, limit int) []candidate {
	if skip >= len(c) {
		return c[:0]
	}
	c = c[skip:]
	if limit > 0 && limit < len(c) {
		c = c[:limit]
	}
	return c
}

func views(c []candidate) []models.VendorView {
	out := make([]models.VendorView, len(c))
	for i := range c {
		out[i] = c[i].view
	}
	return out
}
