package storage

import (
	"context"
	"fmt"
	"time"

	imageRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/image"
	"github.com/RobbieBendick/curb-companion-backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxImageBytes bounds a single upload.
const MaxImageBytes = 10 << 20

// ImageService stores uploads and records who owns them.
type ImageService interface {
	// Save stores upload under images/{route}/ and records an Image owned by owner.
	Save(ctx context.Context, upload *Upload, route, owner, ownerType, uploaderID string) (*models.Image, error)
}

type DefaultImageService struct {
	Store  ImageStore
	Repo   imageRepo.ImageRepository
	Logger *zap.Logger
}

func NewImageService(store ImageStore, repo imageRepo.ImageRepository, logger *zap.Logger) *DefaultImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultImageService{Store: store, Repo: repo, Logger: logger}
}

func (s *DefaultImageService) Save(ctx context.Context, upload *Upload, route, owner, ownerType, uploaderID string) (*models.Image, error) {
	if upload == nil || upload.Body == nil || upload.Size == 0 {
		return nil, ErrNoFile
	}
	if upload.Size > MaxImageBytes {
		return nil, ErrImageTooLarge
	}
	ext, contentType, err := ImageExtension(upload.Filename)
	if err != nil {
		return nil, err
	}

	name, err := s.freeName(ctx, ext)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("images/%s/%s", route, name)

	url, err := s.Store.Put(ctx, key, contentType, upload.Body, upload.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	image := &models.Image{
		ID:         uuid.New().String(),
		Name:       name,
		ImageURL:   url,
		Owner:      owner,
		OwnerType:  ownerType,
		Uploader:   uploaderID,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, image); err != nil {
		// The object is orphaned without its record.
		if rmErr := s.Store.Remove(ctx, key); rmErr != nil {
			s.Logger.Warn("failed to remove orphaned image", zap.String("key", key), zap.Error(rmErr))
		}
		return nil, err
	}
	s.Logger.Info("image stored", zap.String("key", key), zap.String("owner", owner), zap.String("ownerType", ownerType))
	return image, nil
}

// freeName draws object names until one is unused.
func (s *DefaultImageService) freeName(ctx context.Context, ext string) (string, error) {
	for i := 0; i < 3; i++ {
		name := uuid.New().String() + ext
		taken, err := s.Repo.NameTaken(ctx, name)
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
	}
	return "", fmt.Errorf("failed to find a free image name")
}
