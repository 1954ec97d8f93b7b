// Package recurrence expands RFC 5545 recurrence rule sets into concrete dates.
package recurrence

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// ErrEmptyRuleSet indicates the rule set contains no RRULE or RDATE lines.
var ErrEmptyRuleSet = errors.New("recurrence: rule set has no recurrence lines")

// ErrMultipleStarts indicates the rule set declares DTSTART more than once.
var ErrMultipleStarts = errors.New("recurrence: rule set declares more than one DTSTART")

// ErrUnknownProperty indicates a line that is not DTSTART, RRULE, RDATE or EXDATE.
var ErrUnknownProperty = errors.New("recurrence: unsupported property")

const dtstartLayout = "20060102T150405Z"

// RuleSet is a parsed, immutable recurrence rule set. Each RRULE line is kept in
// its own set sharing DTSTART and the RDATE/EXDATE lines; instances are the union.
type RuleSet struct {
	sets []*rrule.Set
	// unbounded is set when some generator has no UNTIL.
	unbounded bool
	until     time.Time
}

// DTStart is the first instant the rule set may produce.
func (rs RuleSet) DTStart() time.Time {
	if len(rs.sets) == 0 {
		return time.Time{}
	}
	return rs.sets[0].GetDTStart()
}

// Until returns the latest UNTIL bound across the rules. It reports false when
// any rule runs without one.
func (rs RuleSet) Until() (time.Time, bool) {
	if len(rs.sets) == 0 || rs.unbounded {
		return time.Time{}, false
	}
	return rs.until, true
}

// Engine parses and expands rule sets. It holds no state, so one value can be
// shared by every request.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Parse builds a RuleSet from recurrence lines. Bare "FREQ=..." lines are read as
// RRULE lines. When no DTSTART line is present the set starts at defaultStart, which
// keeps expansion independent of the wall clock.
func (e *Engine) Parse(lines []string, defaultStart time.Time) (RuleSet, error) {
	p, err := normalize(lines, defaultStart)
	if err != nil {
		return RuleSet{}, err
	}

	var groups [][]string
	for _, r := range p.rrules {
		groups = append(groups, p.with(r))
	}
	if len(p.rdates) > 0 {
		groups = append(groups, p.with(p.rdates...))
	}

	var rs RuleSet
	for _, g := range groups {
		set, err := rrule.StrSliceToRRuleSet(g)
		if err != nil {
			return RuleSet{}, fmt.Errorf("recurrence: failed to parse rule set: %w", err)
		}
		rs.sets = append(rs.sets, set)

		r := set.GetRRule()
		if r == nil || r.OrigOptions.Until.IsZero() {
			// RDATE-only sets carry no UNTIL either.
			rs.unbounded = true
			continue
		}
		if r.OrigOptions.Until.After(rs.until) {
			rs.until = r.OrigOptions.Until
		}
	}
	return rs, nil
}

// OccurrencesBetween returns every instance in [start, end], both ends inclusive,
// in ascending order without duplicates.
func (e *Engine) OccurrencesBetween(rs RuleSet, start, end time.Time) []time.Time {
	if len(rs.sets) == 0 || end.Before(start) {
		return nil
	}
	if len(rs.sets) == 1 {
		return rs.sets[0].Between(start, end, true)
	}

	var all []time.Time
	for _, set := range rs.sets {
		all = append(all, set.Between(start, end, true)...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Before(all[j]) })

	out := all[:0]
	for i, t := range all {
		if i > 0 && t.Equal(out[len(out)-1]) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Validate reports whether lines form a parseable rule set.
func (e *Engine) Validate(lines []string) error {
	_, err := e.Parse(lines, time.Now().UTC())
	return err
}

type parsedLines struct {
	dtstart string
	rrules  []string
	rdates  []string
	exdates []string
}

func (p parsedLines) with(generators ...string) []string {
	out := make([]string, 0, 1+len(generators)+len(p.exdates))
	out = append(out, p.dtstart)
	out = append(out, generators...)
	return append(out, p.exdates...)
}

func normalize(lines []string, defaultStart time.Time) (parsedLines, error) {
	var p parsedLines
	for _, raw := range lines {
		for _, line := range strings.Split(raw, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			upper := strings.ToUpper(line)
			switch {
			case strings.HasPrefix(upper, "DTSTART"):
				if p.dtstart != "" {
					return parsedLines{}, ErrMultipleStarts
				}
				p.dtstart = line
			case strings.HasPrefix(upper, "FREQ="), !strings.ContainsAny(line, ":"):
				p.rrules = append(p.rrules, "RRULE:"+line)
			case strings.HasPrefix(upper, "RRULE"):
				p.rrules = append(p.rrules, line)
			case strings.HasPrefix(upper, "RDATE"):
				p.rdates = append(p.rdates, line)
			case strings.HasPrefix(upper, "EXDATE"):
				p.exdates = append(p.exdates, line)
			default:
				return parsedLines{}, fmt.Errorf("%w: %q", ErrUnknownProperty, line)
			}
		}
	}
	if len(p.rrules) == 0 && len(p.rdates) == 0 {
		return parsedLines{}, ErrEmptyRuleSet
	}
	if p.dtstart == "" {
		p.dtstart = "DTSTART:" + defaultStart.UTC().Format(dtstartLayout)
	}
	return p, nil
}
