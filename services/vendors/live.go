package vendors

import (
	"context"
	"errors"
	"fmt"

	vendorRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/vendors"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/tasks"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GoLive starts a live session at location, or at the home location when nil.
// Only one session can be attached; a concurrent second call gets ErrLiveAlreadyStarted.
func (s *DefaultVendorService) GoLive(ctx context.Context, actor *models.User, id string, location *models.GeoPoint) (*models.LiveSession, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isOwner(actor, v) {
		return nil, utils.ErrForbidden
	}
	if v.Live != nil {
		return nil, ErrLiveAlreadyStarted
	}

	at := location
	if at == nil {
		at = v.Location
	}
	if at == nil || !at.Valid() {
		return nil, ErrLocationRequired
	}

	session := models.LiveSession{
		ID:       uuid.New().String(),
		VendorID: v.ID,
		Location: *normalizedPoint(*at),
		Start:    s.now(),
	}
	switch err := s.Repo.StartLive(ctx, id, session); {
	case errors.Is(err, vendorRepo.ErrLiveExists):
		return nil, ErrLiveAlreadyStarted
	case errors.Is(err, vendorRepo.ErrNotFound):
		return nil, utils.ErrVendorNotFound
	case err != nil:
		return nil, err
	}

	if s.Scheduler != nil && s.LiveMaxDuration > 0 {
		payload := tasks.LiveExpiryPayload{VendorID: v.ID, SessionID: session.ID}
		if err := s.Scheduler.ScheduleLiveExpiry(ctx, payload, session.Start.Add(s.LiveMaxDuration)); err != nil {
			s.logger().Error("failed to schedule live expiry", zap.String("vendorId", v.ID), zap.String("sessionId", session.ID), zap.Error(err))
		}
	}

	s.logger().Info("vendor went live", zap.String("vendorId", v.ID), zap.String("sessionId", session.ID))
	return &session, nil
}

func (s *DefaultVendorService) EndLive(ctx context.Context, actor *models.User, id string) (*models.LiveHistory, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isOwner(actor, v) {
		return nil, utils.ErrForbidden
	}
	record, err := s.conclude(ctx, id, "")
	if errors.Is(err, vendorRepo.ErrNotLive) {
		return nil, ErrVendorNotLive
	}
	return record, err
}

func (s *DefaultVendorService) ExpireLive(ctx context.Context, vendorID, sessionID string) error {
	_, err := s.conclude(ctx, vendorID, sessionID)
	if errors.Is(err, vendorRepo.ErrNotLive) || errors.Is(err, vendorRepo.ErrNotFound) {
		s.logger().Debug("live session already ended", zap.String("vendorId", vendorID), zap.String("sessionId", sessionID))
		return nil
	}
	return err
}

// conclude detaches the live session and writes its history record. The detach is
// atomic, so only one caller gets the session and writes history for it.
func (s *DefaultVendorService) conclude(ctx context.Context, vendorID, sessionID string) (*models.LiveHistory, error) {
	session, err := s.Repo.DetachLive(ctx, vendorID, sessionID)
	if err != nil {
		return nil, err
	}

	record := models.LiveHistory{
		ID:       uuid.New().String(),
		VendorID: vendorID,
		Location: session.Location,
		Start:    session.Start,
		End:      s.now(),
	}
	if _, err := s.History.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record live history: %w", err)
	}
	if err := s.Repo.AppendLiveHistory(ctx, vendorID, record.ID); err != nil {
		return nil, err
	}

	s.logger().Info("live session ended",
		zap.String("vendorId", vendorID),
		zap.String("sessionId", session.ID),
		zap.Duration("duration", record.End.Sub(record.Start)),
	)
	return &record, nil
}
