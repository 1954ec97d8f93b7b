// Package availability decides whether a vendor is open at a given instant and
// which location should be shown for it.
package availability

import (
	"time"

	"github.com/RobbieBendick/curb-companion-backend/models"
	"github.com/RobbieBendick/curb-companion-backend/services/recurrence"

	"go.uber.org/zap"
)

// Recurrence expands schedule rule sets. *recurrence.Engine satisfies it.
type Recurrence interface {
	Parse(lines []string, defaultStart time.Time) (recurrence.RuleSet, error)
	OccurrencesBetween(rs recurrence.RuleSet, start, end time.Time) []time.Time
}

// Status is the outcome of an evaluation. Location is a copy owned by the caller;
// it is nil when the vendor has no location at all.
type Status struct {
	Open     bool             `json:"open"`
	Location *models.GeoPoint `json:"location,omitempty"`
}

// Engine evaluates vendor availability. It never mutates the vendors it is given.
type Engine struct {
	recurrence Recurrence
	logger     *zap.Logger
}

func NewEngine(r Recurrence, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{recurrence: r, logger: logger}
}

// IsOpen reports whether v is open at now.
//
// An active live session wins outright and supplies the location. Otherwise the
// schedule is scanned in order and the first occurrence whose window contains now
// makes the vendor open, showing that occurrence's location (home location if unset).
// With no match the vendor is closed at its home location.
func (e *Engine) IsOpen(v *models.Vendor, now time.Time) Status {
	if v == nil {
		return Status{}
	}
	if v.Live != nil {
		loc := v.Live.Location
		if !loc.Valid() && v.Location != nil {
			loc = *v.Location
		}
		return Status{Open: true, Location: clonePoint(&loc)}
	}

	now = now.UTC()
	windowStart, windowEnd := window(now)
	for i := range v.Schedule {
		occ := &v.Schedule[i]
		if e.occurrenceOpen(v.ID, occ, now, windowStart, windowEnd) {
			if occ.Location != nil {
				return Status{Open: true, Location: clonePoint(occ.Location)}
			}
			return Status{Open: true, Location: clonePoint(v.Location)}
		}
	}
	return Status{Open: false, Location: clonePoint(v.Location)}
}

func (e *Engine) occurrenceOpen(vendorID string, occ *models.Occurrence, now, windowStart, windowEnd time.Time) bool {
	// An occurrence without recurrence lines is never open. It may have been meant
	// as a one-off date, but nothing defines which date, so it is left closed.
	if len(occ.Recurrence) == 0 {
		return false
	}

	rs, err := e.recurrence.Parse(occ.Recurrence, windowStart)
	if err != nil {
		e.logger.Warn("Skipping occurrence with malformed recurrence",
			zap.String("vendorId", vendorID),
			zap.String("occurrenceId", occ.ID),
			zap.Strings("recurrence", occ.Recurrence),
			zap.Error(err),
		)
		return false
	}

	if rs.DTStart().After(now) {
		return false
	}
	if until, ok := rs.Until(); ok && until.Before(now) {
		return false
	}

	start := occ.Start.UTC()
	end := occ.End.UTC()
	overnight := secondsOfDay(end) < secondsOfDay(start)

	for _, day := range e.recurrence.OccurrencesBetween(rs, windowStart, windowEnd) {
		day = day.UTC()
		openAt := overlay(day, start)
		closeDay := day
		if overnight {
			closeDay = day.AddDate(0, 0, 1)
		}
		closeAt := overlay(closeDay, end)
		if !now.Before(openAt) && !now.After(closeAt) {
			return true
		}
	}
	return false
}

// window spans yesterday 00:00:00 through tomorrow 23:59:59 UTC, so spans that
// cross midnight in either direction are seen.
func window(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -1)
	end := today.AddDate(0, 0, 1).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return start, end
}

func overlay(day, clock time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
}

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

func clonePoint(p *models.GeoPoint) *models.GeoPoint {
	if p == nil {
		return nil
	}
	c := p.Clone()
	return &c
}
