package vendors

import (
	"context"
	"errors"

	vendorRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/vendors"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/storage"
	"github.com/RobbieBendick/curb-companion-backend/utils"
)

func (s *DefaultVendorService) UploadProfileImage(ctx context.Context, actor *models.User, id string, upload *storage.Upload) (*models.Image, error) {
	v, err := s.ownedBy(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	img, err := s.Images.Save(ctx, upload, "vendors/"+v.ID, v.ID, models.ImageOwnerVendor, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetProfileImage(ctx, v.ID, *img); err != nil {
		return nil, notFoundAs(err, utils.ErrVendorNotFound)
	}
	return img, nil
}

func (s *DefaultVendorService) UploadImage(ctx context.Context, actor *models.User, id string, upload *storage.Upload) (*models.Image, error) {
	v, err := s.ownedBy(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	img, err := s.Images.Save(ctx, upload, "vendors/"+v.ID, v.ID, models.ImageOwnerVendor, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.AddImage(ctx, v.ID, *img); err != nil {
		return nil, notFoundAs(err, utils.ErrVendorNotFound)
	}
	return img, nil
}

func (s *DefaultVendorService) UploadMenuItemImage(ctx context.Context, actor *models.User, id, itemID string, upload *storage.Upload) (*models.Image, error) {
	v, err := s.ownedBy(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	found := false
	for _, m := range v.Menu {
		if m.ID == itemID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrMenuItemNotFound
	}

	img, err := s.Images.Save(ctx, upload, "vendors/"+v.ID+"/menu", itemID, models.ImageOwnerMenuItem, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetMenuItemImage(ctx, v.ID, itemID, *img); err != nil {
		return nil, notFoundAs(err, ErrMenuItemNotFound)
	}
	return img, nil
}

func (s *DefaultVendorService) ownedBy(ctx context.Context, actor *models.User, id string) (*models.Vendor, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isOwner(actor, v) {
		return nil, utils.ErrForbidden
	}
	return v, nil
}

func notFoundAs(err error, appErr *utils.AppError) error {
	if errors.Is(err, vendorRepo.ErrNotFound) {
		return appErr
	}
	return err
}
