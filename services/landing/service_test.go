package landing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type memLanding struct {
	saved []*models.LandingVendor
	err   error
}

func (m *memLanding) Create(_ context.Context, v *models.LandingVendor) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, v)
	return nil
}

type recordingNotifier struct {
	bodies, routes []string
	err            error
}

func (r *recordingNotifier) NotifyAdmins(_ context.Context, _, body, route string) error {
	r.bodies = append(r.bodies, body)
	r.routes = append(r.routes, route)
	return r.err
}

func input() models.LandingVendorInput {
	no := false
	return models.LandingVendorInput{
		Title: " Taco Truck ", Street: "1 Main St", City: "Orlando", State: "FL", PostalCode: "32801", Catering: &no,
	}
}

func TestCreateVendorStoresAndNotifies(t *testing.T) {
	repo := &memLanding{}
	notifier := &recordingNotifier{}
	fixed := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	svc := &DefaultLandingService{Repo: repo, Notifier: notifier, Now: func() time.Time { return fixed }}

	v, err := svc.CreateVendor(context.Background(), input())
	require.NoError(t, err)

	assert.Equal(t, "Taco Truck", v.Title)
	assert.False(t, v.Catering)
	assert.Equal(t, fixed, v.CreatedAt)
	assert.NotEmpty(t, v.ID)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, []string{"Taco Truck in Orlando, FL"}, notifier.bodies)
	assert.Equal(t, []string{"/landing/" + v.ID}, notifier.routes)
}

func TestCreateVendorValidation(t *testing.T) {
	repo := &memLanding{}
	svc := &DefaultLandingService{Repo: repo}
	ctx := context.Background()

	in := input()
	in.City = "  "
	_, err := svc.CreateVendor(ctx, in)
	assert.ErrorIs(t, err, utils.ErrValidation)

	in = input()
	in.Catering = nil
	_, err = svc.CreateVendor(ctx, in)
	assert.ErrorIs(t, err, utils.ErrValidation)

	assert.Empty(t, repo.saved)
}

func TestCreateVendorSurvivesNotifyFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	svc := &DefaultLandingService{
		Repo:     &memLanding{},
		Notifier: &recordingNotifier{err: errors.New("fcm down")},
		Logger:   zap.New(core),
	}

	_, err := svc.CreateVendor(context.Background(), input())
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("failed to notify admins of vendor sign-up").Len())
}

func TestCreateVendorReturnsStoreError(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := &DefaultLandingService{Repo: &memLanding{err: errors.New("mongo down")}, Notifier: notifier}

	_, err := svc.CreateVendor(context.Background(), input())
	assert.EqualError(t, err, "mongo down")
	assert.Empty(t, notifier.bodies)
}
