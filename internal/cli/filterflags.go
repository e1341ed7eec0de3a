package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tradejournal/internal/filter"
	"tradejournal/internal/models"
)

// addFilterFlags registers the shared filter flag set used by
// `trade list`, `stats`, and `equity`.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD)")

	cmd.Flags().StringSlice("outcome", nil, "outcomes (win, small-win, break-even, small-loss, loss)")
	cmd.Flags().StringSlice("direction", nil, "directions (long, short)")
	cmd.Flags().StringSlice("playbook", nil, "playbook ids")
	cmd.Flags().StringSlice("rule", nil, "rule item ids (followed rules)")
	cmd.Flags().Bool("cross-playbooks", false, "match rules by group/text across playbooks")
	cmd.Flags().StringSlice("tag", nil, "tag ids")
	cmd.Flags().StringSlice("day", nil, "entry weekdays (sun..sat)")

	cmd.Flags().String("entry-after", "", "earliest entry time of day (HH:MM)")
	cmd.Flags().String("entry-before", "", "latest entry time of day (HH:MM)")
	cmd.Flags().String("exit-after", "", "earliest exit time of day (HH:MM)")
	cmd.Flags().String("exit-before", "", "latest exit time of day (HH:MM)")

	rangeFlags := []string{"duration", "qty", "pnl", "r", "stop", "risk", "risk-pct"}
	for _, name := range rangeFlags {
		cmd.Flags().Float64("min-"+name, 0, "minimum "+name)
		cmd.Flags().Float64("max-"+name, 0, "maximum "+name)
	}

	cmd.Flags().String("logic", "and", "combine filter categories with 'and' or 'or'")
	cmd.Flags().Bool("exclude", false, "invert the combined filter match")
}

// filterFromFlags builds the filter state plus date range from the
// common flag set. Malformed dates and times fail fast here.
func filterFromFlags(cmd *cobra.Command) (filter.State, filter.DateRange, error) {
	var st filter.State
	var dates filter.DateRange

	from, _ := cmd.Flags().GetString("from")
	if from != "" {
		t, err := ParseDate(from)
		if err != nil {
			return st, dates, err
		}
		dates.Start = &t
	}
	to, _ := cmd.Flags().GetString("to")
	if to != "" {
		t, err := ParseDate(to)
		if err != nil {
			return st, dates, err
		}
		dates.End = &t
	}

	outcomes, _ := cmd.Flags().GetStringSlice("outcome")
	for _, o := range outcomes {
		outcome, err := parseOutcome(o)
		if err != nil {
			return st, dates, err
		}
		st.Outcomes = append(st.Outcomes, outcome)
	}

	directions, _ := cmd.Flags().GetStringSlice("direction")
	for _, d := range directions {
		direction, err := parseDirection(d)
		if err != nil {
			return st, dates, err
		}
		st.Directions = append(st.Directions, direction)
	}

	st.PlaybookIDs, _ = cmd.Flags().GetStringSlice("playbook")
	st.RuleIDs, _ = cmd.Flags().GetStringSlice("rule")
	st.IncludeRules = len(st.RuleIDs) > 0
	st.CrossPlaybooks, _ = cmd.Flags().GetBool("cross-playbooks")
	st.TagIDs, _ = cmd.Flags().GetStringSlice("tag")

	days, _ := cmd.Flags().GetStringSlice("day")
	for _, d := range days {
		wd, err := parseWeekday(d)
		if err != nil {
			return st, dates, err
		}
		st.Weekdays = append(st.Weekdays, wd)
	}

	var err error
	if st.EntryTime, err = timeRangeFromFlags(cmd, "entry-after", "entry-before"); err != nil {
		return st, dates, err
	}
	if st.ExitTime, err = timeRangeFromFlags(cmd, "exit-after", "exit-before"); err != nil {
		return st, dates, err
	}

	st.Duration = rangeFromFlags(cmd, "duration")
	st.Volume = rangeFromFlags(cmd, "qty")
	st.PnL = rangeFromFlags(cmd, "pnl")
	st.RMultiple = rangeFromFlags(cmd, "r")
	st.StopSize = rangeFromFlags(cmd, "stop")
	st.Risk = rangeFromFlags(cmd, "risk")
	st.RiskPercent = rangeFromFlags(cmd, "risk-pct")

	logic, _ := cmd.Flags().GetString("logic")
	switch strings.ToLower(logic) {
	case "", "and":
		st.Logic = filter.LogicAnd
	case "or":
		st.Logic = filter.LogicOr
	default:
		return st, dates, fmt.Errorf("invalid logic %q (want 'and' or 'or')", logic)
	}
	st.ExcludeMode, _ = cmd.Flags().GetBool("exclude")

	return st, dates, nil
}

func rangeFromFlags(cmd *cobra.Command, name string) filter.Range {
	var r filter.Range
	if cmd.Flags().Changed("min-" + name) {
		v, _ := cmd.Flags().GetFloat64("min-" + name)
		r.Min = &v
	}
	if cmd.Flags().Changed("max-" + name) {
		v, _ := cmd.Flags().GetFloat64("max-" + name)
		r.Max = &v
	}
	return r
}

func timeRangeFromFlags(cmd *cobra.Command, fromFlag, toFlag string) (filter.TimeRange, error) {
	var tr filter.TimeRange
	from, _ := cmd.Flags().GetString(fromFlag)
	if from != "" {
		if err := validateHHMM(from); err != nil {
			return tr, err
		}
		tr.From = from
	}
	to, _ := cmd.Flags().GetString(toFlag)
	if to != "" {
		if err := validateHHMM(to); err != nil {
			return tr, err
		}
		tr.To = to
	}
	return tr, nil
}

func validateHHMM(s string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("invalid time %q (want HH:MM)", s)
	}
	return nil
}

func parseOutcome(s string) (models.Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "win":
		return models.Win, nil
	case "small-win", "smallwin":
		return models.SmallWin, nil
	case "break-even", "breakeven", "be":
		return models.BreakEven, nil
	case "small-loss", "smallloss":
		return models.SmallLoss, nil
	case "loss":
		return models.Loss, nil
	}
	return "", fmt.Errorf("invalid outcome %q", s)
}

func parseDirection(s string) (models.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long", "l":
		return models.Long, nil
	case "short", "s":
		return models.Short, nil
	}
	return "", fmt.Errorf("invalid direction %q", s)
}

func parseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sun", "sunday":
		return time.Sunday, nil
	case "mon", "monday":
		return time.Monday, nil
	case "tue", "tuesday":
		return time.Tuesday, nil
	case "wed", "wednesday":
		return time.Wednesday, nil
	case "thu", "thursday":
		return time.Thursday, nil
	case "fri", "friday":
		return time.Friday, nil
	case "sat", "saturday":
		return time.Saturday, nil
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}
