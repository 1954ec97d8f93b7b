// Package notification persists in-app notifications and pushes them to devices.
package notification

import (
	"context"
	"time"

	notificationRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/notification"
	userRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/user"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"go.uber.org/zap"
)

var (
	ErrNotificationNotFound = utils.NewAppError(404, "notificationNotFound", "Notification not found")
	ErrDeviceTokenNotFound  = utils.NewAppError(404, "deviceTokenNotFound", "User has no device token")
)

// NotificationService defines methods for in-app notifications and FCM pushes.
type NotificationService interface {
	// List returns the actor's notifications, newest first, each with its age.
	List(ctx context.Context, actor *models.User) ([]models.Notification, error)
	// Read marks a notification read. Only its recipient may read it.
	Read(ctx context.Context, actor *models.User, id string) (*models.Notification, error)
	// Send persists a notification for a user and pushes it to their device.
	Send(ctx context.Context, actor *models.User, in models.NotificationInput) (*models.Notification, error)
	// NotifyAdmins persists and pushes the same message to every admin.
	NotifyAdmins(ctx context.Context, title, body, route string) error
}

// DefaultNotificationService is the production implementation. Pusher may be nil
// when Firebase is not configured; notifications are then only persisted.
type DefaultNotificationService struct {
	Repo   notificationRepo.NotificationRepository
	Users  userRepo.UserRepository
	Pusher Pusher
	Logger *zap.Logger
	Now    func() time.Time
}

func (s *DefaultNotificationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *DefaultNotificationService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
