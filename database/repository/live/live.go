package liveRepo

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

// ErrNotFound is returned when no history record matches.
var ErrNotFound = errors.New("live history not found")

// LiveHistoryRepository stores concluded live sessions. Records are written once
// and never updated.
type LiveHistoryRepository interface {
	Create(ctx context.Context, record models.LiveHistory) (string, error)
	GetByID(ctx context.Context, id string) (*models.LiveHistory, error)
	GetByVendorID(ctx context.Context, vendorID string) ([]models.LiveHistory, error)
}

type mongoLiveHistoryRepo struct {
	coll *mongo.Collection
}

// NewMongoLiveHistoryRepo returns a LiveHistoryRepository backed by MongoDB.
func NewMongoLiveHistoryRepo() LiveHistoryRepository {
	repo := &mongoLiveHistoryRepo{coll: database.Collection("live_history")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "vendorId", Value: 1}, {Key: "start", Value: -1}}},
	})
	if err != nil {
		utils.GetLogger().Error("failed to create live history indexes", zap.Error(err))
	}
	return repo
}

// Create inserts a new record and returns its ID.
func (r *mongoLiveHistoryRepo) Create(ctx context.Context, record models.LiveHistory) (string, error) {
	if record.ID == "" {
		return "", errors.New("live history record needs an id")
	}
	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return "", fmt.Errorf("failed to insert live history: %w", err)
	}
	return record.ID, nil
}

// GetByID returns a record by its ID.
func (r *mongoLiveHistoryRepo) GetByID(ctx context.Context, id string) (*models.LiveHistory, error) {
	var record models.LiveHistory
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch live history %s: %w", id, err)
	}
	return &record, nil
}

// GetByVendorID lists a vendor's sessions, most recent first.
func (r *mongoLiveHistoryRepo) GetByVendorID(ctx context.Context, vendorID string) ([]models.LiveHistory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"vendorId": vendorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query live history: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.LiveHistory{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode live history: %w", err)
	}
	return records, nil
}
