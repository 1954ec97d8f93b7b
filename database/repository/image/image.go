package imageRepo

import (
	"context"
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

// ImageRepository records uploaded images and who owns them.
type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	// NameTaken reports whether an image with this object name is recorded.
	NameTaken(ctx context.Context, name string) (bool, error)
}

type mongoImageRepo struct {
	coll *mongo.Collection
}

func NewMongoImageRepo() ImageRepository {
	repo := &mongoImageRepo{coll: database.Collection("images")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner", Value: 1}}},
	})
	if err != nil {
		utils.GetLogger().Error("failed to create image indexes", zap.Error(err))
	}
	return repo
}

func (r *mongoImageRepo) Create(ctx context.Context, image *models.Image) error {
	if _, err := r.coll.InsertOne(ctx, image); err != nil {
		return fmt.Errorf("failed to record image: %w", err)
	}
	return nil
}

func (r *mongoImageRepo) NameTaken(ctx context.Context, name string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"name": name}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to look up image name: %w", err)
	}
	return n > 0, nil
}
