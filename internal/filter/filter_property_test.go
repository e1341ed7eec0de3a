package filter

import (
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"tradejournal/internal/models"
	"tradejournal/pkg/utils"
)

// genTrades builds a deterministic trade set from a compact seed slice:
// each element drives the day offset, direction, outcome, tags, and
// whether the trade is still open.
func genTrades(seeds []int) []models.Trade {
	base := time.Date(2025, 2, 3, 9, 30, 0, 0, time.UTC)
	outcomes := []models.Outcome{models.Win, models.Loss, models.SmallWin, models.SmallLoss, models.BreakEven}
	trades := make([]models.Trade, 0, len(seeds))
	for i, seed := range seeds {
		if seed < 0 {
			seed = -seed
		}
		entry := base.AddDate(0, 0, seed%20).Add(time.Duration(seed%390) * time.Minute)
		tr := testTrade(fmt.Sprintf("t%d", i), entry, func(t *models.Trade) {
			t.Outcome = outcomes[seed%len(outcomes)]
			if seed%2 == 1 {
				t.Direction = models.Short
			}
			if seed%3 == 0 {
				t.Tags = []string{"a"}
			}
			if seed%5 == 0 {
				t.Tags = append(t.Tags, "b")
			}
			if seed%4 == 0 {
				// Leave the trade open.
				t.ExitPrice = nil
				t.ExitTime = nil
			}
		})
		trades = append(trades, tr)
	}
	return trades
}

func seedsGen() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, 1000))
}

// stateGen builds filter states over the dimensions genTrades populates.
func stateGen() gopter.Gen {
	return gen.IntRange(0, 63).Map(func(bits int) State {
		var s State
		if bits&1 != 0 {
			s.Outcomes = []models.Outcome{models.Win}
		}
		if bits&2 != 0 {
			s.Directions = []models.Direction{models.Long}
		}
		if bits&4 != 0 {
			s.TagIDs = []string{"a"}
		}
		if bits&8 != 0 {
			s.Weekdays = []time.Weekday{time.Monday, time.Wednesday}
		}
		if bits&16 != 0 {
			s.PnL = Range{Min: fptr(0)}
		}
		if bits&32 != 0 {
			s.EntryTime = TimeRange{From: "09:30", To: "12:00"}
		}
		return s
	})
}

func filterFor(state State) *Filter {
	return &Filter{State: state, Clock: utils.NewClock(0)}
}

func TestProperty_ApplyIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("filtering an already-filtered set changes nothing", prop.ForAll(
		func(seeds []int, state State) bool {
			f := filterFor(state)
			once := f.Apply(genTrades(seeds))
			twice := f.Apply(once)
			return sameIDs(twice, ids(once)...)
		},
		seedsGen(),
		stateGen(),
	))

	properties.TestingRun(t)
}

func TestProperty_AndSubsetOfOr(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("conjunctive matches are a subset of disjunctive ones", prop.ForAll(
		func(seeds []int, state State) bool {
			trades := genTrades(seeds)

			state.Logic = LogicAnd
			andMatched := filterFor(state).Apply(trades)
			state.Logic = LogicOr
			orMatched := stringSetOf(ids(filterFor(state).Apply(trades)))

			for _, tr := range andMatched {
				if _, ok := orMatched[tr.ID]; !ok {
					return false
				}
			}
			return true
		},
		seedsGen(),
		stateGen(),
	))

	properties.TestingRun(t)
}

func TestProperty_ExcludeModePartitions(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("include and exclude split the trade set exactly", prop.ForAll(
		func(seeds []int, state State) bool {
			trades := genTrades(seeds)

			state.ExcludeMode = false
			included := stringSetOf(ids(filterFor(state).Apply(trades)))
			state.ExcludeMode = true
			excluded := stringSetOf(ids(filterFor(state).Apply(trades)))

			if len(included)+len(excluded) != len(trades) {
				return false
			}
			for id := range included {
				if _, ok := excluded[id]; ok {
					return false
				}
			}
			return true
		},
		seedsGen(),
		stateGen(),
	))

	properties.TestingRun(t)
}

func TestProperty_DateRangeMonotonic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)
	base := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)

	properties.Property("widening the date range never loses matches", prop.ForAll(
		func(seeds []int, startOff, endOff int) bool {
			trades := genTrades(seeds)
			start := base.AddDate(0, 0, startOff)
			end := start.AddDate(0, 0, endOff)
			widerEnd := end.AddDate(0, 0, 5)

			narrow := &Filter{Dates: DateRange{Start: &start, End: &end}, Clock: utils.NewClock(0)}
			wide := &Filter{Dates: DateRange{Start: &start, End: &widerEnd}, Clock: utils.NewClock(0)}

			wideIDs := stringSetOf(ids(wide.Apply(trades)))
			for _, tr := range narrow.Apply(trades) {
				if _, ok := wideIDs[tr.ID]; !ok {
					return false
				}
			}
			return true
		},
		seedsGen(),
		gen.IntRange(0, 10),
		gen.IntRange(0, 15),
	))

	properties.TestingRun(t)
}

func stringSetOf(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
