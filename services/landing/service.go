// Package landing records vendor sign-ups from the marketing site.
package landing

import (
	"context"
	"strings"
	"time"

	landingRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/landing"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminNotifier fans a message out to every admin.
type AdminNotifier interface {
	NotifyAdmins(ctx context.Context, title, body, route string) error
}

type LandingService interface {
	CreateVendor(ctx context.Context, in models.LandingVendorInput) (*models.LandingVendor, error)
}

type DefaultLandingService struct {
	Repo     landingRepo.LandingRepository
	Notifier AdminNotifier
	Logger   *zap.Logger
	Now      func() time.Time
}

func (s *DefaultLandingService) CreateVendor(ctx context.Context, in models.LandingVendorInput) (*models.LandingVendor, error) {
	v := &models.LandingVendor{
		Title:        strings.TrimSpace(in.Title),
		ProfileImage: strings.TrimSpace(in.ProfileImage),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		Website:      strings.TrimSpace(in.Website),
		Street:       strings.TrimSpace(in.Street),
		City:         strings.TrimSpace(in.City),
		State:        strings.TrimSpace(in.State),
		PostalCode:   strings.TrimSpace(in.PostalCode),
	}
	if v.Title == "" || v.Street == "" || v.City == "" || v.State == "" || v.PostalCode == "" {
		return nil, utils.ErrValidation.WithDetails("title, street, city, state and postalCode are required")
	}
	if in.Catering == nil {
		return nil, utils.ErrValidation.WithDetails("catering is required")
	}
	v.Catering = *in.Catering

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	v.ID = uuid.New().String()
	v.CreatedAt = now.UTC()

	if err := s.Repo.Create(ctx, v); err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		body := v.Title + " in " + v.City + ", " + v.State
		if err := s.Notifier.NotifyAdmins(ctx, "New vendor sign-up", body, "/landing/"+v.ID); err != nil && s.Logger != nil {
			s.Logger.Error("failed to notify admins of vendor sign-up", zap.String("landingVendorId", v.ID), zap.Error(err))
		}
	}
	return v, nil
}
