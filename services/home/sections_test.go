package home

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/ranking"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeRanker struct {
	mu      sync.Mutex
	calls   map[ranking.Strategy]int
	queries []ranking.Query
	results map[ranking.Strategy][]models.VendorView
	err     error
}

func newFakeRanker() *fakeRanker {
	return &fakeRanker{
		calls: map[ranking.Strategy]int{},
		results: map[ranking.Strategy][]models.VendorView{
			ranking.Favorited:    {view("fav")},
			ranking.Nearest:      {view("a"), view("b")},
			ranking.Newest:       {view("b"), view("a")},
			ranking.MostPopular:  {},
			ranking.HighestRated: {view("a")},
		},
	}
}

func view(id string) models.VendorView {
	return models.VendorView{Vendor: models.Vendor{ID: id, Title: id}}
}

func (f *fakeRanker) Rank(_ context.Context, q ranking.Query) ([]models.VendorView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[q.Strategy]++
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[q.Strategy], nil
}

func center() *models.GeoPoint {
	p := models.NewGeoPoint(-77.03, 38.90)
	return &p
}

func titlesOf(sections []Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.Title
	}
	return out
}

func TestSectionsOrderAndOmitEmpty(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := newFakeRanker()
	svc := &DefaultHomeService{Ranker: r}

	sections, err := svc.Sections(context.Background(), Query{Center: center()}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Nearest", "Newest", "Highest rated"}, titlesOf(sections))
	assert.Zero(t, r.calls[ranking.Favorited])
	for _, q := range r.queries {
		require.NotNil(t, q.RadiusMiles)
		assert.Equal(t, 50.0, *q.RadiusMiles)
	}
}

func TestSectionsLeadWithFavorites(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := newFakeRanker()
	svc := &DefaultHomeService{Ranker: r}
	viewer := &models.User{ID: "u1", Favorites: []string{"fav"}}

	sections, err := svc.Sections(context.Background(), Query{Center: center(), RadiusMiles: ranking.Miles(5), Tags: []string{"bbq"}}, viewer)
	require.NoError(t, err)

	require.Equal(t, "Favorites", sections[0].Title)
	assert.Equal(t, "fav", sections[0].Vendors[0].ID)
	assert.Equal(t, 1, r.calls[ranking.Favorited])
	for _, q := range r.queries {
		assert.Equal(t, []string{"bbq"}, q.Tags)
		if q.Strategy == ranking.Favorited {
			assert.Equal(t, []string{"fav"}, q.FavoriteIDs)
		}
	}
}

func TestSectionsErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := &DefaultHomeService{Ranker: newFakeRanker()}
	_, err := svc.Sections(context.Background(), Query{}, nil)
	assert.ErrorIs(t, err, ranking.ErrCenterRequired)

	empty := &fakeRanker{calls: map[ranking.Strategy]int{}}
	svc = &DefaultHomeService{Ranker: empty}
	_, err = svc.Sections(context.Background(), Query{Center: center()}, nil)
	assert.ErrorIs(t, err, ErrNoVendorsFound)

	failing := newFakeRanker()
	failing.err = errors.New("mongo down")
	svc = &DefaultHomeService{Ranker: failing}
	_, err = svc.Sections(context.Background(), Query{Center: center()}, nil)
	assert.EqualError(t, err, "mongo down")
}

func TestSectionsCacheSharedSectionsOnly(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	r := newFakeRanker()
	svc := &DefaultHomeService{Ranker: r, Cache: client, CacheTTL: time.Minute}
	viewer := &models.User{ID: "u1", Favorites: []string{"fav"}}
	ctx := context.Background()

	first, err := svc.Sections(ctx, Query{Center: center()}, viewer)
	require.NoError(t, err)
	second, err := svc.Sections(ctx, Query{Center: center()}, viewer)
	require.NoError(t, err)

	assert.Equal(t, titlesOf(first), titlesOf(second))
	assert.Equal(t, 1, r.calls[ranking.Nearest])
	assert.Equal(t, 1, r.calls[ranking.HighestRated])
	assert.Equal(t, 2, r.calls[ranking.Favorited])

	mr.FastForward(2 * time.Minute)
	_, err = svc.Sections(ctx, Query{Center: center()}, viewer)
	require.NoError(t, err)
	assert.Equal(t, 2, r.calls[ranking.Nearest])
}

func TestSectionsSurviveCacheOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	r := newFakeRanker()
	svc := &DefaultHomeService{Ranker: r, Cache: client, CacheTTL: time.Minute}

	sections, err := svc.Sections(context.Background(), Query{Center: center()}, nil)
	require.NoError(t, err)
	assert.Len(t, sections, 3)
}

func TestCacheKeyIgnoresTagOrder(t *testing.T) {
	a := cacheKey(ranking.Query{Strategy: ranking.Nearest, Center: center(), RadiusMiles: ranking.Miles(10), Tags: []string{"tacos", "bbq"}})
	b := cacheKey(ranking.Query{Strategy: ranking.Nearest, Center: center(), RadiusMiles: ranking.Miles(10), Tags: []string{"bbq", "tacos"}})
	assert.Equal(t, a, b)
	assert.Equal(t, "home:nearest:-77.03:38.9:10:bbq,tacos", a)
}

func TestNearbyCentersDoNotShareCacheEntries(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	r := newFakeRanker()
	svc := &DefaultHomeService{Ranker: r, Cache: client, CacheTTL: time.Minute}
	ctx := context.Background()

	first := models.NewGeoPoint(0, 0.00014)
	second := models.NewGeoPoint(0, 0.00011)
	_, err := svc.Sections(ctx, Query{Center: &first, RadiusMiles: ranking.Miles(10)}, nil)
	require.NoError(t, err)
	_, err = svc.Sections(ctx, Query{Center: &second, RadiusMiles: ranking.Miles(10)}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, r.calls[ranking.Nearest], "each center is ranked on its own")
	assert.NotEqual(t,
		cacheKey(ranking.Query{Strategy: ranking.Nearest, Center: &first, RadiusMiles: ranking.Miles(10)}),
		cacheKey(ranking.Query{Strategy: ranking.Nearest, Center: &second, RadiusMiles: ranking.Miles(10)}))
}

func TestDefaultRadiusSharesCacheWithExplicitFifty(t *testing.T) {
	a := cacheKey(ranking.Query{Strategy: ranking.Newest, Center: center()})
	b := cacheKey(ranking.Query{Strategy: ranking.Newest, Center: center(), RadiusMiles: ranking.Miles(50)})
	assert.Equal(t, a, b)
}
