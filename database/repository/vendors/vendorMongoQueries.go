package vendorRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// nearbyPipeline builds the $geoNear aggregation. The center is passed as a legacy
// [lon, lat] pair so maxDistance is in radians and distanceMultiplier turns the
// computed distance into miles.
func nearbyPipeline(center models.GeoPoint, radiusMiles float64, filter CandidateFilter) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$geoNear", Value: bson.D{
			{Key: "near", Value: bson.A{center.Lon(), center.Lat()}},
			{Key: "spherical", Value: true},
			{Key: "distanceField", Value: "distance"},
			{Key: "key", Value: "location"},
			{Key: "distanceMultiplier", Value: utils.EarthRadiusMiles},
			{Key: "maxDistance", Value: radiusMiles / utils.EarthRadiusMiles},
			{Key: "query", Value: filter.match()},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "distance", Value: 1}}}},
	}
}

// Nearby returns vendors within radiusMiles of center, nearest first.
func (r *MongoVendorRepo) Nearby(ctx context.Context, center models.GeoPoint, radiusMiles float64, filter CandidateFilter) ([]models.Vendor, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, nearbyPipeline(center, radiusMiles, filter))
	if err != nil {
		return nil, fmt.Errorf("geo aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	vendors := []models.Vendor{}
	if err := cursor.All(ctx, &vendors); err != nil {
		return nil, fmt.Errorf("failed to decode vendors: %w", err)
	}
	return vendors, nil
}

// Matching returns vendors matching filter, newest first.
func (r *MongoVendorRepo) Matching(ctx context.Context, filter CandidateFilter) ([]models.Vendor, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter.match(), opts)
	if err != nil {
		return nil, fmt.Errorf("vendor query failed: %w", err)
	}
	defer cursor.Close(ctx)

	vendors := []models.Vendor{}
	if err := cursor.All(ctx, &vendors); err != nil {
		return nil, fmt.Errorf("failed to decode vendors: %w", err)
	}
	return vendors, nil
}

// reviewsByUserPipeline flattens the embedded reviews written by userID.
func reviewsByUserPipeline(userID string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"reviews.userId": userID}}},
		{{Key: "$unwind", Value: "$reviews"}},
		{{Key: "$match", Value: bson.M{"reviews.userId": userID}}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$reviews"}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}
}

// ReviewsByUser returns every review written by userID.
func (r *MongoVendorRepo) ReviewsByUser(ctx context.Context, userID string) ([]models.Review, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, reviewsByUserPipeline(userID))
	if err != nil {
		return nil, fmt.Errorf("review aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}
