package vendors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	vendorRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/vendors"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/ranking"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (s *DefaultVendorService) load(ctx context.Context, id string) (*models.Vendor, error) {
	v, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, vendorRepo.ErrNotFound) {
		return nil, utils.ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// view derives open-now status and the display location. v is not modified.
func (s *DefaultVendorService) view(v *models.Vendor) models.VendorView {
	out := models.VendorView{Vendor: *v}
	if s.Availability == nil {
		return out
	}
	status := s.Availability.IsOpen(v, s.now())
	out.IsOpen = status.Open
	out.Location = status.Location
	return out
}

func (s *DefaultVendorService) GetVendor(ctx context.Context, id string, viewer *models.User) (*models.VendorView, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if viewer != nil && viewer.ID != v.OwnerID {
		if err := s.Repo.IncrementViews(ctx, id); err != nil {
			s.logger().Warn("failed to count vendor view", zap.String("vendorId", id), zap.Error(err))
		} else {
			v.Views++
		}
		if err := s.Users.PushRecentlyViewed(ctx, viewer.ID, id); err != nil {
			s.logger().Warn("failed to update recently viewed", zap.String("userId", viewer.ID), zap.Error(err))
		}
	}

	out := s.view(v)
	return &out, nil
}

func (s *DefaultVendorService) GetVendorsByOwner(ctx context.Context, ownerID string) ([]models.VendorView, error) {
	vs, err := s.Repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]models.VendorView, len(vs))
	for i := range vs {
		out[i] = s.view(&vs[i])
	}
	return out, nil
}

func (s *DefaultVendorService) SearchVendors(ctx context.Context, q ranking.SearchQuery) ([]models.VendorView, error) {
	return s.Search.Search(ctx, q)
}

func (s *DefaultVendorService) CreateVendor(ctx context.Context, actor *models.User, in models.VendorInput) (*models.VendorView, error) {
	if actor == nil {
		return nil, utils.ErrUnauthorized
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, utils.ErrValidation.WithDetails("title is required")
	}
	if len(in.Description) > models.DescriptionMaxLength {
		return nil, utils.ErrValidation.WithDetails(fmt.Sprintf("description must be at most %d characters", models.DescriptionMaxLength))
	}
	if in.Location == nil || !in.Location.Valid() {
		return nil, ErrLocationRequired
	}

	tags, err := s.resolveTags(ctx, in.Tags)
	if err != nil {
		return nil, err
	}

	now := s.now()
	v := &models.Vendor{
		ID:          uuid.New().String(),
		Title:       title,
		OwnerID:     actor.ID,
		Email:       in.Email,
		Website:     in.Website,
		PhoneNumber: in.PhoneNumber,
		IsCatering:  in.IsCatering,
		Description: in.Description,
		Tags:        tags,
		Location:    normalizedPoint(*in.Location),
		Images:      []models.Image{},
		Reviews:     []models.Review{},
		Schedule:    []models.Occurrence{},
		LiveHistory: []string{},
		CreatedAt:   now,
	}
	v.Menu, err = appendMenu(nil, v.ID, in.Menu, now)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, v); err != nil {
		return nil, err
	}

	if !actor.HasRole(models.RoleVendorOwner) {
		roles := append(append([]string{}, actor.Roles...), models.RoleVendorOwner)
		if _, err := s.Users.UpdateSetDocument(ctx, actor.ID, bson.M{"roles": roles}); err != nil {
			s.logger().Warn("failed to grant vendor owner role", zap.String("userId", actor.ID), zap.Error(err))
		}
	}

	s.logger().Info("vendor created", zap.String("vendorId", v.ID), zap.String("ownerId", actor.ID))
	out := s.view(v)
	return &out, nil
}

func (s *DefaultVendorService) UpdateVendor(ctx context.Context, actor *models.User, id string, in models.VendorUpdate) (*models.VendorView, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, v) {
		return nil, utils.ErrForbidden
	}

	fields := bson.M{}
	if t := strings.TrimSpace(in.Title); t != "" {
		fields["title"] = t
	}
	if in.Email != "" {
		fields["email"] = in.Email
	}
	if in.Website != "" {
		fields["website"] = in.Website
	}
	if in.PhoneNumber != "" {
		fields["phoneNumber"] = in.PhoneNumber
	}
	if in.Description != "" {
		if len(in.Description) > models.DescriptionMaxLength {
			return nil, utils.ErrValidation.WithDetails(fmt.Sprintf("description must be at most %d characters", models.DescriptionMaxLength))
		}
		fields["description"] = in.Description
	}
	if in.IsCatering != nil {
		fields["isCatering"] = *in.IsCatering
	}
	if in.Location != nil {
		if !in.Location.Valid() {
			return nil, ErrLocationRequired
		}
		fields["location"] = normalizedPoint(*in.Location)
	}
	if len(in.Tags) > 0 {
		tags, err := s.toggleTags(ctx, v.Tags, in.Tags)
		if err != nil {
			return nil, err
		}
		fields["tags"] = tags
	}
	if len(in.Menu) > 0 {
		menu, err := appendMenu(v.Menu, v.ID, in.Menu, s.now())
		if err != nil {
			return nil, err
		}
		fields["menu"] = menu
	}
	if len(in.Schedule) > 0 {
		schedule := append([]models.Occurrence{}, v.Schedule...)
		for _, o := range in.Schedule {
			occ, err := s.newOccurrence(o)
			if err != nil {
				return nil, err
			}
			schedule = append(schedule, *occ)
		}
		fields["schedule"] = schedule
	}
	if len(fields) == 0 {
		return nil, utils.ErrValidation.WithDetails("no fields to update")
	}

	updated, err := s.Repo.Update(ctx, id, fields)
	if errors.Is(err, vendorRepo.ErrNotFound) {
		return nil, utils.ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}
	out := s.view(updated)
	return &out, nil
}

func (s *DefaultVendorService) DeleteVendor(ctx context.Context, actor *models.User, id string) error {
	v, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(actor, v) {
		return utils.ErrForbidden
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, vendorRepo.ErrNotFound) {
			return utils.ErrVendorNotFound
		}
		return err
	}
	if err := s.Users.RemoveFavoriteEverywhere(ctx, id); err != nil {
		s.logger().Warn("failed to drop deleted vendor from favorites", zap.String("vendorId", id), zap.Error(err))
	}
	s.logger().Info("vendor deleted", zap.String("vendorId", id), zap.String("by", actor.ID))
	return nil
}

func (s *DefaultVendorService) resolveTags(ctx context.Context, titles []string) ([]models.Tag, error) {
	if len(titles) == 0 {
		return []models.Tag{}, nil
	}
	found, err := s.Tags.GetByTitles(ctx, titles)
	if err != nil {
		return nil, err
	}
	byTitle := make(map[string]models.Tag, len(found))
	for _, t := range found {
		byTitle[t.Title] = t
	}
	out := make([]models.Tag, 0, len(titles))
	seen := map[string]bool{}
	for _, title := range titles {
		t, ok := byTitle[title]
		if !ok {
			return nil, ErrTagNotFound.WithDetails(title)
		}
		if !seen[title] {
			seen[title] = true
			out = append(out, t)
		}
	}
	return out, nil
}

// toggleTags removes titles the vendor carries and adds the ones it does not.
func (s *DefaultVendorService) toggleTags(ctx context.Context, current []models.Tag, titles []string) ([]models.Tag, error) {
	drop := map[string]bool{}
	var add []string
	held := map[string]bool{}
	for _, t := range current {
		held[t.Title] = true
	}
	for _, title := range titles {
		if held[title] {
			drop[title] = true
		} else {
			add = append(add, title)
		}
	}

	added, err := s.resolveTags(ctx, add)
	if err != nil {
		return nil, err
	}
	out := make([]models.Tag, 0, len(current)+len(added))
	for _, t := range current {
		if !drop[t.Title] {
			out = append(out, t)
		}
	}
	return append(out, added...), nil
}

// normalizedPoint returns a copy of p with the GeoJSON type set.
func normalizedPoint(p models.GeoPoint) *models.GeoPoint {
	out := p.Clone()
	out.Type = "Point"
	return &out
}
