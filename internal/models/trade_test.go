package models

import (
	"testing"
	"time"
)

func validTrade() Trade {
	exit := 110.0
	entry := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	exitTime := entry.Add(time.Hour)
	return Trade{
		ID:         "t1",
		Symbol:     "AAPL",
		Direction:  Long,
		Outcome:    Win,
		EntryTime:  entry,
		ExitTime:   &exitTime,
		Quantity:   2,
		EntryPrice: 100,
		ExitPrice:  &exit,
		StopLoss:   95,
	}
}

func TestTradeValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Trade)
		ok   bool
	}{
		{"valid closed", func(tr *Trade) {}, true},
		{"valid open", func(tr *Trade) {
			tr.ExitPrice = nil
			tr.ExitTime = nil
			tr.Outcome = ""
		}, true},
		{"missing id", func(tr *Trade) { tr.ID = "" }, false},
		{"missing symbol", func(tr *Trade) { tr.Symbol = "" }, false},
		{"bad direction", func(tr *Trade) { tr.Direction = "SIDEWAYS" }, false},
		{"bad outcome", func(tr *Trade) { tr.Outcome = "MEH" }, false},
		{"zero quantity", func(tr *Trade) { tr.Quantity = 0 }, false},
		{"negative entry", func(tr *Trade) { tr.EntryPrice = -1 }, false},
		{"zero entry time", func(tr *Trade) { tr.EntryTime = time.Time{} }, false},
		{"exit before entry", func(tr *Trade) {
			early := tr.EntryTime.Add(-time.Minute)
			tr.ExitTime = &early
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := validTrade()
			tt.mut(&tr)
			err := tr.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("Validate accepted invalid trade")
			}
		})
	}
}

func TestDirectionSign(t *testing.T) {
	if Long.Sign() != 1 {
		t.Errorf("Long.Sign() = %v", Long.Sign())
	}
	if Short.Sign() != -1 {
		t.Errorf("Short.Sign() = %v", Short.Sign())
	}
}

func TestPlaybookRuleLookup(t *testing.T) {
	pb := Playbook{
		ID:   "pb1",
		Name: "Breakout",
		Groups: []RuleGroup{
			{ID: "g1", Name: "Entry", Items: []RuleItem{{ID: "r1", Text: "Waited for retest"}}},
		},
	}

	g, item := pb.Rule("r1")
	if g == nil || item == nil || g.Name != "Entry" || item.Text != "Waited for retest" {
		t.Errorf("Rule(r1) = %v, %v", g, item)
	}
	if g, item := pb.Rule("missing"); g != nil || item != nil {
		t.Error("Rule(missing) returned a match")
	}
}
