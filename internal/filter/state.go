// Package filter turns a declarative filter state plus a date range into
// a derived subset of trades. Evaluation is pure and order-preserving:
// the same inputs always produce the same output slice.
package filter

import (
	"time"

	"tradejournal/internal/models"
)

// Logic is the cross-category combination policy.
type Logic string

const (
	LogicAnd Logic = "and"
	LogicOr  Logic = "or"
)

// Range is an inclusive numeric interval. A nil bound leaves that side
// unconstrained; both nil means the range does not participate.
type Range struct {
	Min *float64
	Max *float64
}

// Active reports whether the range constrains anything.
func (r Range) Active() bool {
	return r.Min != nil || r.Max != nil
}

// Contains reports whether v falls inside the range, bounds inclusive.
func (r Range) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// TimeRange is an inclusive time-of-day window in zero-padded 24h
// "HH:MM" form. Lexical comparison is chronological for that format.
type TimeRange struct {
	From string
	To   string
}

// Active reports whether either bound is set.
func (t TimeRange) Active() bool {
	return t.From != "" || t.To != ""
}

// Contains reports whether the wall-clock time falls inside the window.
func (t TimeRange) Contains(hhmm string) bool {
	if t.From != "" && hhmm < t.From {
		return false
	}
	if t.To != "" && hhmm > t.To {
		return false
	}
	return true
}

// DateRange gates trades by entry calendar day before any category logic
// runs. Nil bounds mean all time.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// State is the full filter specification: independent category specs
// plus the three mode flags. Zero value means "match everything".
type State struct {
	Outcomes    []models.Outcome
	Directions  []models.Direction
	PlaybookIDs []string

	RuleIDs        []string
	IncludeRules   bool // whether RuleIDs participate at all
	CrossPlaybooks bool // match rules by content signature across playbooks

	TagIDs   []string
	Weekdays []time.Weekday

	EntryTime TimeRange
	ExitTime  TimeRange
	Duration  Range // whole minutes between entry and exit

	Volume      Range
	PnL         Range
	RMultiple   Range
	StopSize    Range
	Risk        Range
	RiskPercent Range

	ExcludeMode bool // invert the combined category match
	Logic       Logic
}

// and reports whether categories combine conjunctively. An unset Logic
// defaults to AND.
func (s *State) and() bool {
	return s.Logic != LogicOr
}
