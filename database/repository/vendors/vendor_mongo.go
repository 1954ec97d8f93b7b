package vendorRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RobbieBendick/curb-companion-backend/database"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoVendorRepo implements VendorRepository using MongoDB.
type MongoVendorRepo struct {
	coll *mongo.Collection
}

// NewMongoVendorRepo creates a new instance of VendorRepository using MongoDB.
func NewMongoVendorRepo() VendorRepository {
	repo := &MongoVendorRepo{coll: database.Collection("vendors")}

	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("failed to create vendor indexes", zap.Error(err))
	}
	return repo
}

// newContext derives a bounded context from the caller's.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// Create inserts a new vendor document.
func (r *MongoVendorRepo) Create(ctx context.Context, vendor *models.Vendor) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if vendor.CreatedAt.IsZero() {
		vendor.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, vendor); err != nil {
		return fmt.Errorf("failed to create vendor: %w", err)
	}
	return nil
}

// GetByID retrieves a vendor by its unique ID.
func (r *MongoVendorRepo) GetByID(ctx context.Context, id string) (*models.Vendor, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var vendor models.Vendor
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&vendor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch vendor with id %s: %w", id, err)
	}
	return &vendor, nil
}

// GetByOwner lists the vendors owned by ownerID.
func (r *MongoVendorRepo) GetByOwner(ctx context.Context, ownerID string) ([]models.Vendor, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve vendors for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	vendors := []models.Vendor{}
	if err := cursor.All(ctx, &vendors); err != nil {
		return nil, fmt.Errorf("failed to decode vendors: %w", err)
	}
	return vendors, nil
}

// Update applies fields with $set and returns the document after the update.
func (r *MongoVendorRepo) Update(ctx context.Context, id string, fields bson.M) (*models.Vendor, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var vendor models.Vendor
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": fields}, opts).Decode(&vendor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update vendor with id %s: %w", id, err)
	}
	return &vendor, nil
}

// Delete removes a vendor document by its ID.
func (r *MongoVendorRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete vendor with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
