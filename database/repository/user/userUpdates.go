package userRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/RobbieBendick/curb-companion-backend/models"

	"go.mongodb.org/mongo-driver/bson"
)

// guarded runs a conditional update. When the condition fails it tells a missing
// user (ErrNotFound) apart from a failed condition (failErr).
func (r *MongoUserRepo) guarded(ctx context.Context, id string, cond bson.M, update interface{}, failErr error) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	for k, v := range cond {
		filter[k] = v
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", id, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	if len(cond) == 0 {
		return ErrNotFound
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to look up user with id %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return failErr
}

// SetTokenHash stores the hash of the user's current token.
func (r *MongoUserRepo) SetTokenHash(ctx context.Context, id, hash string) error {
	return r.guarded(ctx, id, nil, bson.M{"$set": bson.M{"tokenHash": hash}}, nil)
}

// AddFavorite adds vendorID to the favorites set.
func (r *MongoUserRepo) AddFavorite(ctx context.Context, id, vendorID string) error {
	return r.guarded(ctx, id,
		bson.M{"favorites": bson.M{"$ne": vendorID}},
		bson.M{"$push": bson.M{"favorites": vendorID}},
		ErrAlreadyPresent,
	)
}

// RemoveFavorite removes vendorID from the favorites set.
func (r *MongoUserRepo) RemoveFavorite(ctx context.Context, id, vendorID string) error {
	return r.guarded(ctx, id,
		bson.M{"favorites": vendorID},
		bson.M{"$pull": bson.M{"favorites": vendorID}},
		ErrNotPresent,
	)
}

// RemoveFavoriteEverywhere drops vendorID from every user's favorites and history.
func (r *MongoUserRepo) RemoveFavoriteEverywhere(ctx context.Context, vendorID string) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.UpdateMany(ctx,
		bson.M{"$or": bson.A{bson.M{"favorites": vendorID}, bson.M{"recentlyViewedVendors": vendorID}}},
		bson.M{"$pull": bson.M{"favorites": vendorID, "recentlyViewedVendors": vendorID}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove vendor %s from users: %w", vendorID, err)
	}
	return nil
}

// recentlyViewedUpdate is a pipeline update that puts vendorID first, drops any
// older entry for it and trims the list, in one atomic write.
func recentlyViewedUpdate(vendorID string) bson.A {
	rest := bson.M{"$filter": bson.M{
		"input": bson.M{"$ifNull": bson.A{"$recentlyViewedVendors", bson.A{}}},
		"cond":  bson.M{"$ne": bson.A{"$$this", vendorID}},
	}}
	return bson.A{
		bson.M{"$set": bson.M{"recentlyViewedVendors": bson.M{"$slice": bson.A{
			bson.M{"$concatArrays": bson.A{bson.A{vendorID}, rest}},
			models.MaxRecentlyViewed,
		}}}},
	}
}

// PushRecentlyViewed moves vendorID to the front of the recently viewed list.
func (r *MongoUserRepo) PushRecentlyViewed(ctx context.Context, id, vendorID string) error {
	return r.guarded(ctx, id, nil, recentlyViewedUpdate(vendorID), nil)
}

// SetLocation replaces the current location. previous, when given, is kept in
// savedLocations unless a location with its coordinates is already saved.
func (r *MongoUserRepo) SetLocation(ctx context.Context, id string, location models.GeoPoint, previous *models.GeoPoint) error {
	if err := r.guarded(ctx, id, nil, bson.M{"$set": bson.M{"location": location}}, nil); err != nil {
		return err
	}
	if previous == nil || previous.SamePlace(location) {
		return nil
	}
	if err := r.AddSavedLocation(ctx, id, *previous); err != nil && err != ErrAlreadyPresent {
		return err
	}
	return nil
}

// AddSavedLocation saves location unless one with the same coordinates exists.
func (r *MongoUserRepo) AddSavedLocation(ctx context.Context, id string, location models.GeoPoint) error {
	return r.guarded(ctx, id,
		bson.M{"savedLocations": bson.M{"$not": bson.M{"$elemMatch": bson.M{"coordinates": location.Coordinates}}}},
		bson.M{"$push": bson.M{"savedLocations": location}},
		ErrAlreadyPresent,
	)
}

// RemoveSavedLocation removes the saved location with the same coordinates.
func (r *MongoUserRepo) RemoveSavedLocation(ctx context.Context, id string, location models.GeoPoint) error {
	return r.guarded(ctx, id,
		bson.M{"savedLocations": bson.M{"$elemMatch": bson.M{"coordinates": location.Coordinates}}},
		bson.M{"$pull": bson.M{"savedLocations": bson.M{"coordinates": location.Coordinates}}},
		ErrNotPresent,
	)
}

// SetProfileImage replaces the profile image.
func (r *MongoUserRepo) SetProfileImage(ctx context.Context, id string, image models.Image) error {
	return r.guarded(ctx, id, nil, bson.M{"$set": bson.M{"profileImage": image}}, nil)
}

// AddImage appends to the gallery.
func (r *MongoUserRepo) AddImage(ctx context.Context, id string, image models.Image) error {
	return r.guarded(ctx, id, nil, bson.M{"$push": bson.M{"images": image}}, nil)
}
