// Package catering records catering requests and alerts admins about them.
package catering

import (
	"context"
	"net/mail"
	"strings"
	"time"

	cateringRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/catering"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminNotifier fans a message out to every admin.
type AdminNotifier interface {
	NotifyAdmins(ctx context.Context, title, body, route string) error
}

type CateringService interface {
	CreateRequest(ctx context.Context, in models.CateringInput) (*models.CateringRequest, error)
}

type DefaultCateringService struct {
	Repo     cateringRepo.CateringRepository
	Notifier AdminNotifier
	Logger   *zap.Logger
	Now      func() time.Time
}

// CreateRequest persists the request, then notifies admins. A failed
// notification is logged and does not fail the request.
func (s *DefaultCateringService) CreateRequest(ctx context.Context, in models.CateringInput) (*models.CateringRequest, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	subject := strings.TrimSpace(in.Subject)
	description := strings.TrimSpace(in.Description)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, utils.ErrValidation.WithDetails("a valid email is required")
	}
	if subject == "" || description == "" {
		return nil, utils.ErrValidation.WithDetails("subject and description are required")
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	req := &models.CateringRequest{
		ID:          uuid.New().String(),
		Email:       email,
		Subject:     subject,
		Description: description,
		CreatedAt:   now.UTC(),
	}
	if err := s.Repo.Create(ctx, req); err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		title := "New catering request"
		body := subject + " from " + email
		if err := s.Notifier.NotifyAdmins(ctx, title, body, "/catering/"+req.ID); err != nil && s.Logger != nil {
			s.Logger.Error("failed to notify admins of catering request", zap.String("requestId", req.ID), zap.Error(err))
		}
	}
	return req, nil
}
