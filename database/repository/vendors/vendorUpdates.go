package vendorRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RobbieBendick/curb-companion-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// updateOne runs a single conditional update and reports whether it matched.
func (r *MongoVendorRepo) updateOne(ctx context.Context, filter, update bson.M) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// IncrementViews adds one to the view counter.
func (r *MongoVendorRepo) IncrementViews(ctx context.Context, id string) error {
	ok, err := r.updateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment views for vendor %s: %w", id, err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// IncrementFavorites adds delta to the favorites counter.
func (r *MongoVendorRepo) IncrementFavorites(ctx context.Context, id string, delta int64) error {
	ok, err := r.updateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"favorites": delta}})
	if err != nil {
		return fmt.Errorf("failed to update favorites for vendor %s: %w", id, err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// StartLive sets the live session only while "live" is null, so two concurrent
// calls cannot both attach a session.
func (r *MongoVendorRepo) StartLive(ctx context.Context, id string, session models.LiveSession) error {
	ok, err := r.updateOne(ctx,
		bson.M{"id": id, "live": nil},
		bson.M{"$set": bson.M{"live": session}},
	)
	if err != nil {
		return fmt.Errorf("failed to start live session for vendor %s: %w", id, err)
	}
	if ok {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrLiveExists
}

// DetachLive clears "live" and returns the session that was removed.
func (r *MongoVendorRepo) DetachLive(ctx context.Context, id, sessionID string) (*models.LiveSession, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "live": bson.M{"$ne": nil}}
	if sessionID != "" {
		filter["live.id"] = sessionID
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.Before).
		SetProjection(bson.M{"live": 1})

	var before struct {
		Live *models.LiveSession `bson:"live"`
	}
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": bson.M{"live": nil}}, opts).Decode(&before)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotLive
		}
		return nil, fmt.Errorf("failed to end live session for vendor %s: %w", id, err)
	}
	if before.Live == nil {
		return nil, ErrNotLive
	}
	return before.Live, nil
}

// AppendLiveHistory records a concluded session id on the vendor.
func (r *MongoVendorRepo) AppendLiveHistory(ctx context.Context, id, historyID string) error {
	ok, err := r.updateOne(ctx, bson.M{"id": id}, bson.M{"$push": bson.M{"liveHistory": historyID}})
	if err != nil {
		return fmt.Errorf("failed to append live history for vendor %s: %w", id, err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// AddReview is conditioned on the review count the caller computed rating from.
func (r *MongoVendorRepo) AddReview(ctx context.Context, id string, review models.Review, expectedCount int, rating float64) error {
	filter := bson.M{
		"id":             id,
		"reviews":        bson.M{"$size": expectedCount},
		"reviews.userId": bson.M{"$ne": review.UserID},
	}
	update := bson.M{
		"$push": bson.M{"reviews": review},
		"$set":  bson.M{"rating": rating},
	}
	ok, err := r.updateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to add review to vendor %s: %w", id, err)
	}
	if !ok {
		return ErrConflict
	}
	return nil
}

// RemoveReview is conditioned on the review count the caller computed rating from.
func (r *MongoVendorRepo) RemoveReview(ctx context.Context, id, userID string, expectedCount int, rating float64) error {
	filter := bson.M{
		"id":             id,
		"reviews":        bson.M{"$size": expectedCount},
		"reviews.userId": userID,
	}
	update := bson.M{
		"$pull": bson.M{"reviews": bson.M{"userId": userID}},
		"$set":  bson.M{"rating": rating},
	}
	ok, err := r.updateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to remove review from vendor %s: %w", id, err)
	}
	if !ok {
		return ErrConflict
	}
	return nil
}

// AddOccurrence appends a schedule occurrence.
func (r *MongoVendorRepo) AddOccurrence(ctx context.Context, id string, occurrence models.Occurrence) error {
	ok, err := r.updateOne(ctx, bson.M{"id": id}, bson.M{"$push": bson.M{"schedule": occurrence}})
	if err != nil {
		return fmt.Errorf("failed to add occurrence to vendor %s: %w", id, err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// RemoveOccurrence pulls a schedule occurrence. ErrNotFound covers both a missing
// vendor and a missing occurrence.
func (r *MongoVendorRepo) RemoveOccurrence(ctx context.Context, id, occurrenceID string) error {
	ok, err := r.updateOne(ctx,
		bson.M{"id": id, "schedule.id": occurrenceID},
		bson.M{"$pull": bson.M{"schedule": bson.M{"id": occurrenceID}}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove occurrence from vendor %s: %w", id, err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// SetProfileImage replaces the vendor profile image.
func (r *MongoVendorRepo) SetProfileImage(ctx context.Context, id string, image models.Image) error {
	ok, err := r.updateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"profileImage": image}})
	if err != nil {
		return fmt.Errorf("failed to set profile image for vendor %s: %w", id, err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// AddImage appends to the vendor gallery.
func (r *MongoVendorRepo) AddImage(ctx context.Context, id string, image models.Image) error {
	ok, err := r.updateOne(ctx, bson.M{"id": id}, bson.M{"$push": bson.M{"images": image}})
	if err != nil {
		return fmt.Errorf("failed to add image to vendor %s: %w", id, err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// SetMenuItemImage replaces the image of one menu item.
func (r *MongoVendorRepo) SetMenuItemImage(ctx context.Context, id, itemID string, image models.Image) error {
	ok, err := r.updateOne(ctx,
		bson.M{"id": id, "menu.id": itemID},
		bson.M{"$set": bson.M{"menu.$.image": image}},
	)
	if err != nil {
		return fmt.Errorf("failed to set image on menu item %s: %w", itemID, err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
