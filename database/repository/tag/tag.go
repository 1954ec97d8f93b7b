package tagRepo

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

var (
	ErrNotFound  = errors.New("tag not found")
	ErrDuplicate = errors.New("tag already exists")
)

// TagRepository defines methods for tag data access.
type TagRepository interface {
	GetAll(ctx context.Context) ([]models.Tag, error)
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	// GetByTitles returns the tags whose titles are listed, in no particular order.
	GetByTitles(ctx context.Context, titles []string) ([]models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
	SetImage(ctx context.Context, id string, image models.Image) error
}

type mongoTagRepo struct {
	coll *mongo.Collection
}

// NewMongoTagRepo returns a TagRepository backed by MongoDB.
func NewMongoTagRepo() TagRepository {
	repo := &mongoTagRepo{coll: database.Collection("tags")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "title", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		utils.GetLogger().Error("failed to create tag indexes", zap.Error(err))
	}
	return repo
}

func (r *mongoTagRepo) GetAll(ctx context.Context) ([]models.Tag, error) {
	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *mongoTagRepo) GetByTitles(ctx context.Context, titles []string) ([]models.Tag, error) {
	if len(titles) == 0 {
		return []models.Tag{}, nil
	}
	return r.find(ctx, bson.M{"title": bson.M{"$in": titles}}, options.Find())
}

func (r *mongoTagRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Tag, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer cursor.Close(ctx)

	tags := []models.Tag{}
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return tags, nil
}

func (r *mongoTagRepo) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&tag); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch tag %s: %w", id, err)
	}
	return &tag, nil
}

func (r *mongoTagRepo) Create(ctx context.Context, tag *models.Tag) error {
	if _, err := r.coll.InsertOne(ctx, tag); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

func (r *mongoTagRepo) SetImage(ctx context.Context, id string, image models.Image) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"image": image}})
	if err != nil {
		return fmt.Errorf("failed to set tag image: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
