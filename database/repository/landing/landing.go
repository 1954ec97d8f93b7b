package landingRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/RobbieBendick/curb-companion-backend/database"
	"github.com/RobbieBendick/curb-companion-backend/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// LandingRepository persists landing-page vendor sign-ups.
type LandingRepository interface {
	Create(ctx context.Context, v *models.LandingVendor) error
}

type mongoLandingRepo struct {
	coll *mongo.Collection
}

func NewMongoLandingRepo() LandingRepository {
	return &mongoLandingRepo{coll: database.Collection("landing_vendors")}
}

func (r *mongoLandingRepo) Create(ctx context.Context, v *models.LandingVendor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, v); err != nil {
		return fmt.Errorf("failed to create landing vendor: %w", err)
	}
	return nil
}
