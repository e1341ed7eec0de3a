package filter

import (
	"time"

	"tradejournal/internal/analytics"
	"tradejournal/internal/models"
	"tradejournal/pkg/utils"
)

// predicate decides whether one trade satisfies one category.
type predicate func(models.Trade) bool

// category is one active filter dimension with its predicate closure.
type category struct {
	name  string
	match predicate
}

// Filter evaluates a State against a trade snapshot. The catalog, rate,
// multiplier, and clock are injected so evaluation touches no ambient
// state.
type Filter struct {
	State          State
	Dates          DateRange
	Catalog        *models.Catalog
	CommissionRate float64
	Multiplier     analytics.MultiplierFunc
	Clock          utils.Clock
}

// Apply returns the trades passing the date gate plus the combined
// category match, preserving the input order. With no active categories
// every date-gated trade passes; ExcludeMode inverts the category match
// but never the date gate.
func (f *Filter) Apply(trades []models.Trade) []models.Trade {
	if f.Catalog == nil {
		f.Catalog = &models.Catalog{}
	}
	if f.Multiplier == nil {
		f.Multiplier = analytics.DefaultMultiplier
	}

	categories := f.categories()
	and := f.State.and()

	out := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if !f.inDateRange(t) {
			continue
		}
		match := combine(categories, t, and)
		if f.State.ExcludeMode {
			match = !match
		}
		if match {
			out = append(out, t)
		}
	}
	return out
}

// combine folds the active categories under the AND/OR policy. Zero
// active categories is a no-op filter: everything matches.
func combine(categories []category, t models.Trade, and bool) bool {
	if len(categories) == 0 {
		return true
	}
	for _, c := range categories {
		matched := c.match(t)
		if and && !matched {
			return false
		}
		if !and && matched {
			return true
		}
	}
	return and
}

// inDateRange checks calendar-day containment on the journal clock.
func (f *Filter) inDateRange(t models.Trade) bool {
	day := f.Clock.Day(t.EntryTime)
	if f.Dates.Start != nil && day.Before(f.Clock.Day(*f.Dates.Start)) {
		return false
	}
	if f.Dates.End != nil && day.After(f.Clock.Day(*f.Dates.End)) {
		return false
	}
	return true
}

// categories builds the ordered list of active category predicates.
// Inactive categories are omitted entirely: they count neither as true
// under AND nor as false under OR.
func (f *Filter) categories() []category {
	st := &f.State
	and := st.and()
	var cats []category

	if len(st.Outcomes) > 0 {
		match := singleValued(st.Outcomes, and, func(t models.Trade) models.Outcome { return t.Outcome })
		cats = append(cats, category{name: "outcome", match: match})
	}
	if len(st.Directions) > 0 {
		match := singleValued(st.Directions, and, func(t models.Trade) models.Direction { return t.Direction })
		cats = append(cats, category{name: "direction", match: match})
	}
	if c, ok := f.playbookCategory(); ok {
		cats = append(cats, c)
	}
	if st.IncludeRules && len(st.RuleIDs) > 0 {
		cats = append(cats, category{name: "rules", match: f.rulePredicate()})
	}
	if len(st.TagIDs) > 0 {
		selected := stringSet(st.TagIDs)
		cats = append(cats, category{name: "tags", match: func(t models.Trade) bool {
			return matchSet(selected, stringSet(t.Tags), and)
		}})
	}
	if len(st.Weekdays) > 0 {
		days := make(map[time.Weekday]struct{}, len(st.Weekdays))
		for _, d := range st.Weekdays {
			days[d] = struct{}{}
		}
		cats = append(cats, category{name: "weekday", match: func(t models.Trade) bool {
			// Entry day-of-week in the trade's own representation,
			// not shifted onto the journal clock.
			_, ok := days[t.EntryTime.Weekday()]
			return ok
		}})
	}
	if st.EntryTime.Active() {
		window := st.EntryTime
		cats = append(cats, category{name: "entry-time", match: func(t models.Trade) bool {
			return window.Contains(f.Clock.HHMM(t.EntryTime))
		}})
	}
	if st.ExitTime.Active() {
		window := st.ExitTime
		cats = append(cats, category{name: "exit-time", match: func(t models.Trade) bool {
			if t.ExitTime == nil {
				return false
			}
			return window.Contains(f.Clock.HHMM(*t.ExitTime))
		}})
	}
	if st.Duration.Active() {
		r := st.Duration
		cats = append(cats, category{name: "duration", match: func(t models.Trade) bool {
			// Open trades fail duration filters closed.
			if t.ExitTime == nil {
				return false
			}
			minutes := float64(int64(t.ExitTime.Sub(t.EntryTime) / time.Minute))
			return r.Contains(minutes)
		}})
	}
	if st.Volume.Active() {
		r := st.Volume
		cats = append(cats, category{name: "volume", match: func(t models.Trade) bool {
			return r.Contains(t.Quantity)
		}})
	}
	if st.PnL.Active() {
		r := st.PnL
		cats = append(cats, category{name: "pnl", match: func(t models.Trade) bool {
			pnl, ok := analytics.NetPnL(t, f.CommissionRate)
			return ok && r.Contains(pnl)
		}})
	}
	if st.RMultiple.Active() {
		r := st.RMultiple
		cats = append(cats, category{name: "r-multiple", match: func(t models.Trade) bool {
			rm, ok := analytics.RMultiple(t, f.CommissionRate, f.Multiplier)
			return ok && r.Contains(rm)
		}})
	}
	if st.StopSize.Active() {
		r := st.StopSize
		cats = append(cats, category{name: "stop-size", match: func(t models.Trade) bool {
			return r.Contains(analytics.StopSize(t))
		}})
	}
	if st.Risk.Active() {
		r := st.Risk
		cats = append(cats, category{name: "risk", match: func(t models.Trade) bool {
			return r.Contains(analytics.RiskAmount(t, f.Multiplier))
		}})
	}
	if st.RiskPercent.Active() {
		r := st.RiskPercent
		cats = append(cats, category{name: "risk-percent", match: func(t models.Trade) bool {
			pct, ok := analytics.RiskPercent(t)
			return ok && r.Contains(pct)
		}})
	}

	return cats
}

// playbookCategory builds the playbook-id predicate. Playbooks that are
// only implicitly selected because one of their rules is checked are
// removed; with cross-playbook rule matching active the category is
// bypassed entirely in favor of signature matching.
func (f *Filter) playbookCategory() (category, bool) {
	st := &f.State
	if len(st.PlaybookIDs) == 0 {
		return category{}, false
	}
	rulesActive := st.IncludeRules && len(st.RuleIDs) > 0
	if rulesActive && st.CrossPlaybooks {
		return category{}, false
	}

	ids := st.PlaybookIDs
	if rulesActive {
		owners := playbooksOwningRules(f.Catalog, st.RuleIDs)
		kept := make([]string, 0, len(ids))
		for _, id := range ids {
			if _, implied := owners[id]; !implied {
				kept = append(kept, id)
			}
		}
		ids = kept
	}
	if len(ids) == 0 {
		return category{}, false
	}

	match := singleValued(ids, st.and(), func(t models.Trade) string { return t.PlaybookID })
	return category{name: "playbook", match: match}, true
}

// singleValued builds the membership predicate for a category whose
// backing trade field holds at most one value. Multi-select under AND is
// a contradiction: a trade cannot equal two distinct values at once, so
// the category yields no matches by definition.
func singleValued[T comparable](selected []T, and bool, value func(models.Trade) T) predicate {
	if and && len(selected) > 1 {
		return func(models.Trade) bool { return false }
	}
	set := make(map[T]struct{}, len(selected))
	for _, v := range selected {
		set[v] = struct{}{}
	}
	return func(t models.Trade) bool {
		_, ok := set[value(t)]
		return ok
	}
}
