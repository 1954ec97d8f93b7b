package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestParseBareRuleUsesDefaultStart(t *testing.T) {
	e := NewEngine()
	start := date(2024, time.March, 4, 0, 0) // Monday

	rs, err := e.Parse([]string{"FREQ=WEEKLY;BYDAY=TU"}, start)
	require.NoError(t, err)
	assert.Equal(t, start, rs.DTStart().UTC())

	_, bounded := rs.Until()
	assert.False(t, bounded)

	got := e.OccurrencesBetween(rs, start, date(2024, time.March, 6, 23, 59))
	require.Len(t, got, 1)
	assert.Equal(t, time.Tuesday, got[0].Weekday())
	assert.Equal(t, 5, got[0].Day())
}

func TestParseExplicitStartAndUntil(t *testing.T) {
	e := NewEngine()
	rs, err := e.Parse([]string{
		"DTSTART:20240101T000000Z\nRRULE:FREQ=DAILY;UNTIL=20240110T000000Z",
	}, date(2030, time.January, 1, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, date(2024, time.January, 1, 0, 0), rs.DTStart().UTC())
	until, ok := rs.Until()
	require.True(t, ok)
	assert.Equal(t, date(2024, time.January, 10, 0, 0), until.UTC())

	got := e.OccurrencesBetween(rs, date(2024, time.January, 9, 0, 0), date(2024, time.January, 12, 0, 0))
	assert.Len(t, got, 2)
}

func TestOccurrencesBetweenInclusive(t *testing.T) {
	e := NewEngine()
	start := date(2024, time.March, 4, 0, 0)
	rs, err := e.Parse([]string{"RRULE:FREQ=DAILY"}, start)
	require.NoError(t, err)

	got := e.OccurrencesBetween(rs, start, date(2024, time.March, 6, 0, 0))
	assert.Len(t, got, 3)
}

func TestParseRejects(t *testing.T) {
	e := NewEngine()
	now := date(2024, time.March, 4, 0, 0)

	cases := []struct {
		name  string
		lines []string
	}{
		{"empty", nil},
		{"blank lines", []string{"", "  "}},
		{"garbage frequency", []string{"FREQ=SOMETIMES"}},
		{"two starts", []string{"DTSTART:20240101T000000Z", "DTSTART:20240102T000000Z", "FREQ=DAILY"}},
		{"unknown property", []string{"FOO:BAR"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Parse(tc.lines, now)
			assert.Error(t, err)
		})
	}
}

func TestOccurrencesBetweenReversedWindow(t *testing.T) {
	e := NewEngine()
	rs, err := e.Parse([]string{"FREQ=DAILY"}, date(2024, time.March, 4, 0, 0))
	require.NoError(t, err)
	assert.Empty(t, e.OccurrencesBetween(rs, date(2024, time.March, 6, 0, 0), date(2024, time.March, 5, 0, 0)))
}

func TestParseRejectsExclusionsOnly(t *testing.T) {
	_, err := NewEngine().Parse([]string{"EXDATE:20240105T000000Z"}, date(2024, time.March, 4, 0, 0))
	assert.ErrorIs(t, err, ErrEmptyRuleSet)
}

func TestParseUnknownPropertyIsTyped(t *testing.T) {
	_, err := NewEngine().Parse([]string{"FREQ=DAILY", "FOO:BAR"}, date(2024, time.March, 4, 0, 0))
	assert.ErrorIs(t, err, ErrUnknownProperty)
}

func TestExclusionDropsInstance(t *testing.T) {
	e := NewEngine()
	start := date(2024, time.March, 4, 0, 0)
	rs, err := e.Parse([]string{"RRULE:FREQ=DAILY", "EXDATE:20240305T000000Z"}, start)
	require.NoError(t, err)

	got := e.OccurrencesBetween(rs, start, date(2024, time.March, 6, 0, 0))
	assert.Equal(t, []time.Time{start, date(2024, time.March, 6, 0, 0)}, utc(got))
}

func utc(ts []time.Time) []time.Time {
	out := make([]time.Time, len(ts))
	for i, t := range ts {
		out[i] = t.UTC()
	}
	return out
}

func TestSeveralRulesAreUnioned(t *testing.T) {
	e := NewEngine()
	start := date(2024, time.March, 4, 0, 0) // Monday
	rs, err := e.Parse([]string{"FREQ=WEEKLY;BYDAY=TU", "FREQ=WEEKLY;BYDAY=TH"}, start)
	require.NoError(t, err)

	got := utc(e.OccurrencesBetween(rs, start, date(2024, time.March, 10, 23, 59)))
	assert.Equal(t, []time.Time{date(2024, time.March, 5, 0, 0), date(2024, time.March, 7, 0, 0)}, got)
}

func TestOverlappingRulesDoNotDuplicate(t *testing.T) {
	e := NewEngine()
	start := date(2024, time.March, 4, 0, 0)
	rs, err := e.Parse([]string{"RRULE:FREQ=DAILY", "RRULE:FREQ=WEEKLY;BYDAY=TU", "RDATE:20240305T000000Z"}, start)
	require.NoError(t, err)

	got := e.OccurrencesBetween(rs, start, date(2024, time.March, 6, 0, 0))
	assert.Len(t, got, 3)
}

func TestExclusionAppliesToEveryRule(t *testing.T) {
	e := NewEngine()
	start := date(2024, time.March, 4, 0, 0)
	rs, err := e.Parse([]string{"FREQ=WEEKLY;BYDAY=TU", "FREQ=WEEKLY;BYDAY=TH", "EXDATE:20240307T000000Z"}, start)
	require.NoError(t, err)

	got := utc(e.OccurrencesBetween(rs, start, date(2024, time.March, 10, 0, 0)))
	assert.Equal(t, []time.Time{date(2024, time.March, 5, 0, 0)}, got)
}

func TestUntilAcrossRules(t *testing.T) {
	e := NewEngine()
	start := date(2024, time.January, 1, 0, 0)

	rs, err := e.Parse([]string{
		"RRULE:FREQ=DAILY;UNTIL=20240110T000000Z",
		"RRULE:FREQ=WEEKLY;UNTIL=20240301T000000Z",
	}, start)
	require.NoError(t, err)
	until, ok := rs.Until()
	require.True(t, ok)
	assert.Equal(t, date(2024, time.March, 1, 0, 0), until.UTC())

	rs, err = e.Parse([]string{"RRULE:FREQ=DAILY;UNTIL=20240110T000000Z", "RRULE:FREQ=WEEKLY"}, start)
	require.NoError(t, err)
	_, ok = rs.Until()
	assert.False(t, ok)
}
