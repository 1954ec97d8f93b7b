package cateringRepo

import (
	"context"
	"fmt"

	"github.com/RobbieBendick/curb-companion-backend/database"
	"github.com/RobbieBendick/curb-companion-backend/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CateringRepository persists catering requests.
type CateringRepository interface {
	Create(ctx context.Context, req *models.CateringRequest) error
}

type mongoCateringRepo struct {
	coll *mongo.Collection
}

func NewMongoCateringRepo() CateringRepository {
	return &mongoCateringRepo{coll: database.Collection("catering_requests")}
}

func (r *mongoCateringRepo) Create(ctx context.Context, req *models.CateringRequest) error {
	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create catering request: %w", err)
	}
	return nil
}
