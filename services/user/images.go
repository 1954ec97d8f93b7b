package user

import (
	"context"

	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/storage"
	"github.com/RobbieBendick/curb-companion-backend/utils"
)

func (s *DefaultUserService) UploadProfileImage(ctx context.Context, actor *models.User, id string, upload *storage.Upload) (*models.User, error) {
	img, err := s.saveImage(ctx, actor, id, upload)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetProfileImage(ctx, id, *img); err != nil {
		return nil, mapNotFound(err)
	}
	return s.GetUser(ctx, id)
}

func (s *DefaultUserService) UploadImage(ctx context.Context, actor *models.User, id string, upload *storage.Upload) (*models.User, error) {
	img, err := s.saveImage(ctx, actor, id, upload)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.AddImage(ctx, id, *img); err != nil {
		return nil, mapNotFound(err)
	}
	return s.GetUser(ctx, id)
}

// saveImage stores upload under images/users/{id}/ once the actor is known to
// be that user.
func (s *DefaultUserService) saveImage(ctx context.Context, actor *models.User, id string, upload *storage.Upload) (*models.Image, error) {
	if !self(actor, id) {
		return nil, utils.ErrForbidden
	}
	if _, err := s.GetUser(ctx, id); err != nil {
		return nil, err
	}
	return s.Images.Save(ctx, upload, "users/"+id, id, models.ImageOwnerUser, actor.ID)
}
