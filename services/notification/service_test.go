package notification

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	notificationRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/notification"
	userRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/user"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPusher struct {
	mock.Mock
}

func (m *MockPusher) Push(ctx context.Context, token string, n *models.Notification) error {
	return m.Called(ctx, token, n).Error(0)
}

type memNotifications struct {
	notificationRepo.NotificationRepository
	items []models.Notification
}

func (m *memNotifications) Create(_ context.Context, n *models.Notification) error {
	m.items = append(m.items, *n)
	return nil
}

func (m *memNotifications) CreateMany(_ context.Context, ns []models.Notification) error {
	m.items = append(m.items, ns...)
	return nil
}

func (m *memNotifications) ListForUser(_ context.Context, userID string) ([]models.Notification, error) {
	var out []models.Notification
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].UserID == userID {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *memNotifications) GetByID(_ context.Context, id string) (*models.Notification, error) {
	for _, n := range m.items {
		if n.ID == id {
			cp := n
			return &cp, nil
		}
	}
	return nil, notificationRepo.ErrNotFound
}

func (m *memNotifications) MarkRead(_ context.Context, id string) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Read = true
		}
	}
	return nil
}

type memUsers struct {
	userRepo.UserRepository
	users map[string]models.User
}

func (m *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) GetAdmins(context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		if u.IsAdmin() {
			out = append(out, u)
		}
	}
	return out, nil
}

var (
	now   = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	admin = models.User{ID: "admin", Roles: []string{models.RoleAdmin}, DeviceToken: "admin-device"}
	alice = models.User{ID: "alice", DeviceToken: "alice-device"}
	bob   = models.User{ID: "bob"}
)

func newService() (*DefaultNotificationService, *memNotifications, *MockPusher) {
	repo := &memNotifications{}
	pusher := &MockPusher{}
	svc := &DefaultNotificationService{
		Repo:   repo,
		Users:  &memUsers{users: map[string]models.User{"admin": admin, "alice": alice, "bob": bob}},
		Pusher: pusher,
		Now:    func() time.Time { return now },
	}
	return svc, repo, pusher
}

func TestSendPersistsThenPushes(t *testing.T) {
	svc, repo, pusher := newService()
	pusher.On("Push", mock.Anything, "alice-device", mock.AnythingOfType("*models.Notification")).Return(nil).Once()

	n, err := svc.Send(context.Background(), &admin, models.NotificationInput{UserID: "alice", Title: "Hi", Body: "Tacos nearby", Route: "/vendors/v1"})
	require.NoError(t, err)

	assert.Equal(t, "alice", n.UserID)
	assert.Len(t, repo.items, 1)
	pusher.AssertExpectations(t)
}

func TestSendWithoutDeviceStillPersists(t *testing.T) {
	svc, repo, pusher := newService()

	n, err := svc.Send(context.Background(), &admin, models.NotificationInput{UserID: "bob", Title: "Hi", Body: "There"})
	assert.ErrorIs(t, err, ErrDeviceTokenNotFound)
	require.NotNil(t, n)
	assert.Len(t, repo.items, 1)
	pusher.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendValidation(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	_, err := svc.Send(ctx, &alice, models.NotificationInput{UserID: "bob", Title: "x", Body: "y"})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = svc.Send(ctx, &admin, models.NotificationInput{UserID: "bob", Title: strings.Repeat("t", 65), Body: "y"})
	assert.ErrorIs(t, err, utils.ErrValidation)

	_, err = svc.Send(ctx, &admin, models.NotificationInput{UserID: "bob", Title: "t", Body: strings.Repeat("b", 501)})
	assert.ErrorIs(t, err, utils.ErrValidation)

	_, err = svc.Send(ctx, &admin, models.NotificationInput{UserID: "nobody", Title: "t", Body: "b"})
	assert.ErrorIs(t, err, utils.ErrUserNotFound)

	assert.Empty(t, repo.items)
}

func TestSendReturnsPushFailure(t *testing.T) {
	svc, repo, pusher := newService()
	pusher.On("Push", mock.Anything, "alice-device", mock.Anything).Return(errors.New("unregistered"))

	n, err := svc.Send(context.Background(), &admin, models.NotificationInput{UserID: "alice", Title: "Hi", Body: "There"})
	require.Error(t, err)
	assert.NotNil(t, n)
	assert.Len(t, repo.items, 1)
}

func TestListAndRead(t *testing.T) {
	svc, repo, _ := newService()
	repo.items = []models.Notification{
		{ID: "n1", UserID: "alice", Title: "old", CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "n2", UserID: "bob", Title: "other", CreatedAt: now},
		{ID: "n3", UserID: "alice", Title: "new", CreatedAt: now.Add(-30 * time.Second)},
	}
	ctx := context.Background()

	list, err := svc.List(ctx, &alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "n3", list[0].ID)
	assert.Equal(t, "Just now", list[0].Age)
	assert.Equal(t, "3 hours ago", list[1].Age)

	_, err = svc.Read(ctx, &alice, "n2")
	assert.ErrorIs(t, err, utils.ErrForbidden)
	_, err = svc.Read(ctx, &alice, "missing")
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	n, err := svc.Read(ctx, &alice, "n1")
	require.NoError(t, err)
	assert.True(t, n.Read)
	assert.True(t, repo.items[0].Read)
}

func TestNotifyAdmins(t *testing.T) {
	svc, repo, pusher := newService()
	pusher.On("Push", mock.Anything, "admin-device", mock.Anything).Return(nil).Once()

	require.NoError(t, svc.NotifyAdmins(context.Background(), "Catering request", "Wedding for 80", "/catering"))

	require.Len(t, repo.items, 1)
	assert.Equal(t, "admin", repo.items[0].UserID)
	pusher.AssertExpectations(t)
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("tok", &models.Notification{ID: "n1", Title: "Hi", Body: "There", Route: "/home"})

	assert.Equal(t, "tok", msg.Token)
	assert.Equal(t, "Hi", msg.Notification.Title)
	assert.Equal(t, "/home", msg.Data["route"])
	assert.Equal(t, "n1", msg.Data["notificationId"])
	assert.Equal(t, "high", msg.Android.Priority)
	assert.Equal(t, "alert", msg.APNS.Headers["apns-push-type"])
}
