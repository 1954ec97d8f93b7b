package vendors

import (
	"context"
	"errors"

	vendorRepo "github.com/RobbieBendick/curb-companion-backend/database/repository/vendors"
	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/utils"

	"github.com/google/uuid"
)

// newOccurrence validates in. An empty recurrence list is stored as given; such an
// occurrence never opens the vendor.
func (s *DefaultVendorService) newOccurrence(in models.OccurrenceInput) (*models.Occurrence, error) {
	if in.Start.IsZero() || in.End.IsZero() {
		return nil, utils.ErrValidation.WithDetails("start and end are required")
	}
	if in.Location != nil && !in.Location.Valid() {
		return nil, ErrLocationRequired
	}
	if len(in.Recurrence) > 0 && s.Rules != nil {
		if err := s.Rules.Validate(in.Recurrence); err != nil {
			return nil, ErrInvalidRecurrence.WithDetails(err.Error())
		}
	}
	occ := &models.Occurrence{
		ID:         uuid.New().String(),
		Start:      in.Start.UTC(),
		End:        in.End.UTC(),
		Recurrence: append([]string{}, in.Recurrence...),
	}
	if in.Location != nil {
		occ.Location = normalizedPoint(*in.Location)
	}
	return occ, nil
}

func (s *DefaultVendorService) AddOccurrence(ctx context.Context, actor *models.User, id string, in models.OccurrenceInput) (*models.Occurrence, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, v) {
		return nil, utils.ErrForbidden
	}
	occ, err := s.newOccurrence(in)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.AddOccurrence(ctx, id, *occ); err != nil {
		if errors.Is(err, vendorRepo.ErrNotFound) {
			return nil, utils.ErrVendorNotFound
		}
		return nil, err
	}
	return occ, nil
}

func (s *DefaultVendorService) RemoveOccurrence(ctx context.Context, actor *models.User, id, occurrenceID string) error {
	v, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(actor, v) {
		return utils.ErrForbidden
	}
	err = s.Repo.RemoveOccurrence(ctx, id, occurrenceID)
	if errors.Is(err, vendorRepo.ErrNotFound) {
		return ErrOccurrenceNotFound
	}
	return err
}
