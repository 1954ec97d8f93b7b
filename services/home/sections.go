package home

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/ranking"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const cachePrefix = "home:"

func (s *DefaultHomeService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultHomeService) Sections(ctx context.Context, q Query, viewer *models.User) ([]Section, error) {
	if q.Center == nil || !q.Center.Valid() {
		return nil, ranking.ErrCenterRequired
	}
	if q.RadiusMiles == nil {
		q.RadiusMiles = ranking.Miles(utils.DefaultRadiusMiles)
	}

	results := make([][]models.VendorView, len(ranking.Strategies))
	g, gctx := errgroup.WithContext(ctx)
	for i, strategy := range ranking.Strategies {
		i, strategy := i, strategy
		rq := ranking.Query{
			Strategy:    strategy,
			Center:      q.Center,
			RadiusMiles: q.RadiusMiles,
			Tags:        q.Tags,
		}
		if strategy == ranking.Favorited {
			if viewer == nil || len(viewer.Favorites) == 0 {
				continue
			}
			rq.FavoriteIDs = viewer.Favorites
			g.Go(func() error {
				vs, err := s.Ranker.Rank(gctx, rq)
				results[i] = vs
				return err
			})
			continue
		}
		g.Go(func() error {
			vs, err := s.cachedRank(gctx, rq)
			results[i] = vs
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sections := make([]Section, 0, len(results))
	for i, vs := range results {
		if len(vs) == 0 {
			continue
		}
		sections = append(sections, Section{Title: titles[ranking.Strategies[i]], Vendors: vs})
	}
	if len(sections) == 0 {
		return nil, ErrNoVendorsFound
	}
	return sections, nil
}

// cachedRank serves a non-personal section from Redis when possible. Cache
// failures fall through to the ranker.
func (s *DefaultHomeService) cachedRank(ctx context.Context, q ranking.Query) ([]models.VendorView, error) {
	if s.Cache == nil || s.CacheTTL <= 0 {
		return s.Ranker.Rank(ctx, q)
	}
	key := cacheKey(q)

	raw, err := s.Cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var vs []models.VendorView
		if jsonErr := json.Unmarshal(raw, &vs); jsonErr == nil {
			return vs, nil
		}
		s.logger().Warn("discarding unreadable home cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		s.logger().Warn("home cache read failed", zap.String("key", key), zap.Error(err))
	}

	vs, err := s.Ranker.Rank(ctx, q)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(vs); err == nil {
		if err := s.Cache.Set(ctx, key, payload, s.CacheTTL).Err(); err != nil {
			s.logger().Warn("home cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return vs, nil
}

// cacheKey uses the exact center and radius. Cached entries carry distances and
// radius membership, so only identical queries may share one.
func cacheKey(q ranking.Query) string {
	tags := append([]string(nil), q.Tags...)
	sort.Strings(tags)
	radius := utils.DefaultRadiusMiles
	if q.RadiusMiles != nil {
		radius = *q.RadiusMiles
	}
	return fmt.Sprintf("%s%s:%s:%s:%s:%s",
		cachePrefix, q.Strategy, exact(q.Center.Lon()), exact(q.Center.Lat()), exact(radius), strings.Join(tags, ","))
}

func exact(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
