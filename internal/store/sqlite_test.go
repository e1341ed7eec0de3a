package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "tradejournal/internal/errors"
	"tradejournal/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "journal_test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
		os.Remove(dbPath)
	})
	return s
}

func sampleTrade(id string) *models.Trade {
	entry := time.Date(2025, 3, 3, 10, 15, 0, 0, time.UTC)
	exit := entry.Add(90 * time.Minute)
	exitPrice := 108.5
	commission := 2.5
	high := 110.0
	return &models.Trade{
		ID:            id,
		Symbol:        "AAPL",
		Direction:     models.Long,
		Outcome:       models.Win,
		EntryTime:     entry,
		ExitTime:      &exit,
		Quantity:      3,
		EntryPrice:    101.25,
		ExitPrice:     &exitPrice,
		Commission:    &commission,
		StopLoss:      99,
		HighestPrice:  &high,
		PlaybookID:    "pb1",
		RulesFollowed: []string{"r1", "r2"},
		Tags:          []string{"tag1"},
		Notes:         "clean breakout",
		CreatedAt:     entry,
	}
}

func TestTradeRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := sampleTrade("t1")
	if err := s.SaveTrade(ctx, want); err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}

	got, err := s.GetTrade(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTrade: %v", err)
	}

	if got.Symbol != want.Symbol || got.Direction != want.Direction || got.Outcome != want.Outcome {
		t.Errorf("identity fields mismatch: got %+v", got)
	}
	if !got.EntryTime.Equal(want.EntryTime) {
		t.Errorf("EntryTime = %v, want %v", got.EntryTime, want.EntryTime)
	}
	if got.ExitTime == nil || !got.ExitTime.Equal(*want.ExitTime) {
		t.Errorf("ExitTime = %v, want %v", got.ExitTime, want.ExitTime)
	}
	if got.ExitPrice == nil || *got.ExitPrice != *want.ExitPrice {
		t.Errorf("ExitPrice = %v, want %v", got.ExitPrice, *want.ExitPrice)
	}
	if got.Commission == nil || *got.Commission != *want.Commission {
		t.Errorf("Commission = %v, want %v", got.Commission, *want.Commission)
	}
	if got.HighestPrice == nil || *got.HighestPrice != *want.HighestPrice {
		t.Errorf("HighestPrice = %v, want %v", got.HighestPrice, *want.HighestPrice)
	}
	if got.LowestPrice != nil {
		t.Errorf("LowestPrice = %v, want nil", *got.LowestPrice)
	}
	if len(got.RulesFollowed) != 2 || got.RulesFollowed[0] != "r1" {
		t.Errorf("RulesFollowed = %v, want [r1 r2]", got.RulesFollowed)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "tag1" {
		t.Errorf("Tags = %v, want [tag1]", got.Tags)
	}
	if got.Notes != want.Notes {
		t.Errorf("Notes = %q, want %q", got.Notes, want.Notes)
	}
}

func TestOpenTradeRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	open := sampleTrade("open1")
	open.ExitPrice = nil
	open.ExitTime = nil
	open.Outcome = ""
	open.Commission = nil
	open.HighestPrice = nil
	if err := s.SaveTrade(ctx, open); err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}

	got, err := s.GetTrade(ctx, "open1")
	if err != nil {
		t.Fatalf("GetTrade: %v", err)
	}
	if got.Closed() {
		t.Error("open trade came back closed")
	}
	if got.ExitTime != nil || got.Commission != nil {
		t.Errorf("nullable fields not nil: %+v", got)
	}
}

func TestSaveTradeRejectsInvalid(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bad := sampleTrade("bad1")
	bad.Quantity = 0
	if err := s.SaveTrade(ctx, bad); !apperrors.Is(err, apperrors.ErrInputValidation) {
		t.Errorf("SaveTrade error = %v, want a validation error", err)
	}
}

func TestSaveTradeReplacesExisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade("t1")
	if err := s.SaveTrade(ctx, trade); err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}
	trade.Notes = "updated"
	if err := s.SaveTrade(ctx, trade); err != nil {
		t.Fatalf("SaveTrade update: %v", err)
	}

	got, err := s.GetTrade(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTrade: %v", err)
	}
	if got.Notes != "updated" {
		t.Errorf("Notes = %q, want %q", got.Notes, "updated")
	}

	trades, err := s.GetTrades(ctx, TradeQuery{})
	if err != nil {
		t.Fatalf("GetTrades: %v", err)
	}
	if len(trades) != 1 {
		t.Errorf("trade count after replace = %d, want 1", len(trades))
	}
}

func TestGetTradesOrderAndFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	specs := []struct {
		id     string
		symbol string
		dir    models.Direction
		offset time.Duration
	}{
		{"c", "AAPL", models.Long, 48 * time.Hour},
		{"a", "AAPL", models.Long, 0},
		{"b", "TSLA", models.Short, 24 * time.Hour},
	}
	for _, spec := range specs {
		tr := sampleTrade(spec.id)
		tr.Symbol = spec.symbol
		tr.Direction = spec.dir
		tr.EntryTime = base.Add(spec.offset)
		exit := tr.EntryTime.Add(time.Hour)
		tr.ExitTime = &exit
		if err := s.SaveTrade(ctx, tr); err != nil {
			t.Fatalf("SaveTrade %s: %v", spec.id, err)
		}
	}

	trades, err := s.GetTrades(ctx, TradeQuery{})
	if err != nil {
		t.Fatalf("GetTrades: %v", err)
	}
	if len(trades) != 3 || trades[0].ID != "a" || trades[1].ID != "b" || trades[2].ID != "c" {
		t.Errorf("order = %v, want [a b c] by entry time", tradeIDs(trades))
	}

	trades, err = s.GetTrades(ctx, TradeQuery{Symbol: "AAPL"})
	if err != nil {
		t.Fatalf("GetTrades symbol: %v", err)
	}
	if len(trades) != 2 {
		t.Errorf("symbol filter returned %v", tradeIDs(trades))
	}

	trades, err = s.GetTrades(ctx, TradeQuery{Direction: models.Short})
	if err != nil {
		t.Fatalf("GetTrades direction: %v", err)
	}
	if len(trades) != 1 || trades[0].ID != "b" {
		t.Errorf("direction filter returned %v", tradeIDs(trades))
	}

	trades, err = s.GetTrades(ctx, TradeQuery{StartDate: base.Add(12 * time.Hour), Limit: 1})
	if err != nil {
		t.Fatalf("GetTrades dates: %v", err)
	}
	if len(trades) != 1 || trades[0].ID != "b" {
		t.Errorf("start date + limit returned %v", tradeIDs(trades))
	}
}

func tradeIDs(trades []models.Trade) []string {
	out := make([]string, len(trades))
	for i, t := range trades {
		out[i] = t.ID
	}
	return out
}

func TestDeleteTrade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveTrade(ctx, sampleTrade("t1")); err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}
	if err := s.DeleteTrade(ctx, "t1"); err != nil {
		t.Fatalf("DeleteTrade: %v", err)
	}
	if _, err := s.GetTrade(ctx, "t1"); !apperrors.Is(err, apperrors.ErrTradeNotFound) {
		t.Errorf("GetTrade after delete = %v, want ErrTradeNotFound", err)
	}
	if err := s.DeleteTrade(ctx, "t1"); !apperrors.Is(err, apperrors.ErrTradeNotFound) {
		t.Errorf("second delete = %v, want ErrTradeNotFound", err)
	}
}

func TestPlaybookRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pb := &models.Playbook{
		ID:   "pb1",
		Name: "Breakout",
		Groups: []models.RuleGroup{
			{
				ID:   "g1",
				Name: "Entry",
				Items: []models.RuleItem{
					{ID: "r1", Text: "Waited for the retest"},
					{ID: "r2", Text: "Volume above average"},
				},
			},
			{
				ID:    "g2",
				Name:  "Exit",
				Items: []models.RuleItem{{ID: "r3", Text: "Moved to breakeven"}},
			},
		},
	}
	if err := s.SavePlaybook(ctx, pb); err != nil {
		t.Fatalf("SavePlaybook: %v", err)
	}

	playbooks, err := s.GetPlaybooks(ctx)
	if err != nil {
		t.Fatalf("GetPlaybooks: %v", err)
	}
	if len(playbooks) != 1 {
		t.Fatalf("playbook count = %d, want 1", len(playbooks))
	}
	got := playbooks[0]
	if got.Name != "Breakout" || len(got.Groups) != 2 {
		t.Errorf("playbook = %+v", got)
	}
	if g, item := got.Rule("r3"); g == nil || g.Name != "Exit" || item.Text != "Moved to breakeven" {
		t.Errorf("Rule(r3) = %v, %v", g, item)
	}

	if err := s.DeletePlaybook(ctx, "pb1"); err != nil {
		t.Fatalf("DeletePlaybook: %v", err)
	}
	playbooks, err = s.GetPlaybooks(ctx)
	if err != nil {
		t.Fatalf("GetPlaybooks after delete: %v", err)
	}
	if len(playbooks) != 0 {
		t.Errorf("playbooks after delete = %v", playbooks)
	}
}

func TestTagsAndCategories(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat := &models.TagCategory{ID: "c1", Name: "Mistakes"}
	if err := s.SaveTagCategory(ctx, cat); err != nil {
		t.Fatalf("SaveTagCategory: %v", err)
	}
	if err := s.SaveTag(ctx, &models.Tag{ID: "tag1", Name: "FOMO entry", CategoryID: "c1"}); err != nil {
		t.Fatalf("SaveTag: %v", err)
	}
	if err := s.SaveTag(ctx, &models.Tag{ID: "tag2", Name: "Chased", CategoryID: "c1"}); err != nil {
		t.Fatalf("SaveTag: %v", err)
	}

	tags, err := s.GetTags(ctx)
	if err != nil {
		t.Fatalf("GetTags: %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("tag count = %d, want 2", len(tags))
	}

	if err := s.DeleteTag(ctx, "tag2"); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}
	tags, err = s.GetTags(ctx)
	if err != nil {
		t.Fatalf("GetTags after delete: %v", err)
	}
	if len(tags) != 1 || tags[0].ID != "tag1" {
		t.Errorf("tags after delete = %v", tags)
	}
}

func TestCatalogSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pb := &models.Playbook{ID: "pb1", Name: "Breakout"}
	if err := s.SavePlaybook(ctx, pb); err != nil {
		t.Fatalf("SavePlaybook: %v", err)
	}
	if err := s.SaveTagCategory(ctx, &models.TagCategory{ID: "c1", Name: "Setup"}); err != nil {
		t.Fatalf("SaveTagCategory: %v", err)
	}
	if err := s.SaveTag(ctx, &models.Tag{ID: "tag1", Name: "Gap up", CategoryID: "c1"}); err != nil {
		t.Fatalf("SaveTag: %v", err)
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if catalog.Playbook("pb1") == nil {
		t.Error("catalog missing playbook pb1")
	}
	if catalog.Tag("tag1") == nil {
		t.Error("catalog missing tag tag1")
	}
	if catalog.Category("c1") == nil {
		t.Error("catalog missing category c1")
	}
	if catalog.Playbook("nope") != nil || catalog.Tag("nope") != nil {
		t.Error("catalog lookup invented an entity")
	}
}
