package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	notificationRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/notification"
	userRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/user"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultNotificationService) List(ctx context.Context, actor *models.User) ([]models.Notification, error) {
	if actor == nil {
		return nil, utils.ErrUnauthorized
	}
	ns, err := s.Repo.ListForUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range ns {
		ns[i].Age = ns[i].HumanAge(now)
	}
	if ns == nil {
		ns = []models.Notification{}
	}
	return ns, nil
}

func (s *DefaultNotificationService) Read(ctx context.Context, actor *models.User, id string) (*models.Notification, error) {
	if actor == nil {
		return nil, utils.ErrUnauthorized
	}
	n, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, notificationRepo.ErrNotFound) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	if n.UserID != actor.ID {
		return nil, utils.ErrForbidden
	}
	if !n.Read {
		if err := s.Repo.MarkRead(ctx, id); err != nil {
			return nil, err
		}
		n.Read = true
	}
	n.Age = n.HumanAge(s.now())
	return n, nil
}

// Send stores the notification before pushing it. The stored notification is
// returned alongside any push error.
func (s *DefaultNotificationService) Send(ctx context.Context, actor *models.User, in models.NotificationInput) (*models.Notification, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, utils.ErrForbidden
	}
	n, err := s.build(in.UserID, in.Title, in.Body, in.Route)
	if err != nil {
		return nil, err
	}

	recipient, err := s.Users.GetByID(ctx, in.UserID)
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, utils.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, n); err != nil {
		return nil, err
	}
	if recipient.DeviceToken == "" {
		return n, ErrDeviceTokenNotFound
	}
	if err := s.push(ctx, recipient.DeviceToken, n); err != nil {
		return n, err
	}
	return n, nil
}

func (s *DefaultNotificationService) NotifyAdmins(ctx context.Context, title, body, route string) error {
	admins, err := s.Users.GetAdmins(ctx)
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		s.logger().Warn("no admins to notify", zap.String("title", title))
		return nil
	}

	batch := make([]models.Notification, 0, len(admins))
	for _, a := range admins {
		n, err := s.build(a.ID, title, body, route)
		if err != nil {
			return err
		}
		batch = append(batch, *n)
	}
	if err := s.Repo.CreateMany(ctx, batch); err != nil {
		return err
	}

	for i, a := range admins {
		if a.DeviceToken == "" {
			continue
		}
		if err := s.push(ctx, a.DeviceToken, &batch[i]); err != nil {
			s.logger().Warn("failed to push admin notification", zap.String("userId", a.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultNotificationService) build(userID, title, body, route string) (*models.Notification, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return nil, utils.ErrValidation.WithDetails("title and body are required")
	}
	if len([]rune(title)) > models.NotificationTitleMax {
		return nil, utils.ErrValidation.WithDetails(fmt.Sprintf("title must be at most %d characters", models.NotificationTitleMax))
	}
	if len([]rune(body)) > models.NotificationBodyMax {
		return nil, utils.ErrValidation.WithDetails(fmt.Sprintf("body must be at most %d characters", models.NotificationBodyMax))
	}
	return &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		Route:     route,
		CreatedAt: s.now(),
	}, nil
}

func (s *DefaultNotificationService) push(ctx context.Context, token string, n *models.Notification) error {
	if s.Pusher == nil {
		s.logger().Debug("push disabled, notification stored only", zap.String("notificationId", n.ID))
		return nil
	}
	if err := s.Pusher.Push(ctx, token, n); err != nil {
		return err
	}
	s.logger().Info("notification pushed", zap.String("notificationId", n.ID), zap.String("userId", n.UserID))
	return nil
}
