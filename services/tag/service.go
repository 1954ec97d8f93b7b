// Package tag manages the vendor tag catalogue.
package tag

import (
	"context"
	"errors"
	"strings"

	tagRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/tag"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/storage"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrTagAlreadyExists = utils.NewAppError(409, "tagAlreadyExists", "Tag already exists")
	ErrTagNotFound      = utils.NewAppError(404, "tagNotFound", "Tag not found")
)

type TagService interface {
	List(ctx context.Context) ([]models.Tag, error)
	Create(ctx context.Context, actor *models.User, title string) (*models.Tag, error)
	UploadImage(ctx context.Context, actor *models.User, id string, upload *storage.Upload) (*models.Image, error)
}

type DefaultTagService struct {
	Repo   tagRepo.TagRepository
	Images storage.ImageService
	Logger *zap.Logger
}

func (s *DefaultTagService) List(ctx context.Context) ([]models.Tag, error) {
	return s.Repo.GetAll(ctx)
}

func (s *DefaultTagService) Create(ctx context.Context, actor *models.User, title string) (*models.Tag, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, utils.ErrForbidden
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, utils.ErrValidation.WithDetails("title is required")
	}

	t := &models.Tag{ID: uuid.New().String(), Title: title}
	if err := s.Repo.Create(ctx, t); err != nil {
		if errors.Is(err, tagRepo.ErrDuplicate) {
			return nil, ErrTagAlreadyExists
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("tag created", zap.String("tagId", t.ID), zap.String("title", t.Title))
	}
	return t, nil
}

func (s *DefaultTagService) UploadImage(ctx context.Context, actor *models.User, id string, upload *storage.Upload) (*models.Image, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, utils.ErrForbidden
	}
	t, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, tagRepo.ErrNotFound) {
		return nil, ErrTagNotFound
	}
	if err != nil {
		return nil, err
	}

	img, err := s.Images.Save(ctx, upload, "tags/"+t.ID, t.ID, models.ImageOwnerTag, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetImage(ctx, t.ID, *img); err != nil {
		if errors.Is(err, tagRepo.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return img, nil
}
