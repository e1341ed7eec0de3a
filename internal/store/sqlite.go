package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tradejournal/internal/errors"
	"tradejournal/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Trades table, one row per logged position
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		symbol TEXT NOT NULL,
		direction TEXT NOT NULL,
		outcome TEXT,
		entry_time DATETIME NOT NULL,
		exit_time DATETIME,
		quantity REAL NOT NULL,
		entry_price REAL NOT NULL,
		exit_price REAL,
		commission REAL,
		stop_loss REAL NOT NULL,
		highest_price REAL,
		lowest_price REAL,
		playbook_id TEXT,
		rules_followed TEXT,
		tags TEXT,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_trades_entry_time ON trades(entry_time);
	CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);

	-- Playbooks with rule groups serialized as JSON
	CREATE TABLE IF NOT EXISTS playbooks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		rule_groups TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Tag taxonomy
	CREATE TABLE IF NOT EXISTS tag_categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS tags (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category_id TEXT NOT NULL,
		FOREIGN KEY (category_id) REFERENCES tag_categories(id)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveTrade inserts or replaces a trade.
func (s *SQLiteStore) SaveTrade(ctx context.Context, trade *models.Trade) error {
	if err := trade.Validate(); err != nil {
		return err
	}
	rules, _ := json.Marshal(trade.RulesFollowed)
	tags, _ := json.Marshal(trade.Tags)

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO trades (id, symbol, direction, outcome, entry_time, exit_time, quantity, entry_price, exit_price, commission, stop_loss, highest_price, lowest_price, playbook_id, rules_followed, tags, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, trade.ID, trade.Symbol, string(trade.Direction), string(trade.Outcome), trade.EntryTime,
		nullTime(trade.ExitTime), trade.Quantity, trade.EntryPrice, nullFloat(trade.ExitPrice),
		nullFloat(trade.Commission), trade.StopLoss, nullFloat(trade.HighestPrice),
		nullFloat(trade.LowestPrice), trade.PlaybookID, string(rules), string(tags),
		trade.Notes, trade.CreatedAt)
	if err != nil {
		return errors.NewStoreError("trade", trade.ID, "save", err)
	}
	return nil
}

// GetTrade retrieves a single trade by id.
func (s *SQLiteStore) GetTrade(ctx context.Context, id string) (*models.Trade, error) {
	rows, err := s.db.QueryContext(ctx, tradeSelect+" WHERE id = ?", id)
	if err != nil {
		return nil, errors.NewStoreError("trade", id, "get", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, errors.NewStoreError("trade", id, "get", err)
		}
		return nil, errors.ErrTradeNotFound
	}
	t, err := scanTrade(rows)
	if err != nil {
		return nil, errors.NewStoreError("trade", id, "scan", err)
	}
	return t, nil
}

const tradeSelect = `SELECT id, symbol, direction, outcome, entry_time, exit_time, quantity, entry_price, exit_price, commission, stop_loss, highest_price, lowest_price, playbook_id, rules_followed, tags, notes, created_at FROM trades`

// GetTrades retrieves trades matching the coarse query, ordered by entry
// time ascending so the analytics see a time-ordered snapshot.
func (s *SQLiteStore) GetTrades(ctx context.Context, query TradeQuery) ([]models.Trade, error) {
	q := tradeSelect + " WHERE 1=1"
	args := []interface{}{}

	if query.Symbol != "" {
		q += " AND symbol = ?"
		args = append(args, query.Symbol)
	}
	if query.Direction != "" {
		q += " AND direction = ?"
		args = append(args, string(query.Direction))
	}
	if !query.StartDate.IsZero() {
		q += " AND entry_time >= ?"
		args = append(args, query.StartDate)
	}
	if !query.EndDate.IsZero() {
		q += " AND entry_time <= ?"
		args = append(args, query.EndDate)
	}

	q += " ORDER BY entry_time ASC"
	if query.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, query.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.NewStoreError("trade", "", "query", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, errors.NewStoreError("trade", "", "scan", err)
		}
		trades = append(trades, *t)
	}
	return trades, rows.Err()
}

// DeleteTrade removes a trade by id.
func (s *SQLiteStore) DeleteTrade(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trades WHERE id = ?", id)
	if err != nil {
		return errors.NewStoreError("trade", id, "delete", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrTradeNotFound
	}
	return nil
}

func scanTrade(rows *sql.Rows) (*models.Trade, error) {
	var t models.Trade
	var outcome, playbookID, rulesJSON, tagsJSON, notes sql.NullString
	var exitTime sql.NullTime
	var exitPrice, commission, highest, lowest sql.NullFloat64

	if err := rows.Scan(&t.ID, &t.Symbol, (*string)(&t.Direction), &outcome, &t.EntryTime,
		&exitTime, &t.Quantity, &t.EntryPrice, &exitPrice, &commission, &t.StopLoss,
		&highest, &lowest, &playbookID, &rulesJSON, &tagsJSON, &notes, &t.CreatedAt); err != nil {
		return nil, err
	}

	t.Outcome = models.Outcome(outcome.String)
	t.PlaybookID = playbookID.String
	t.Notes = notes.String
	if exitTime.Valid {
		v := exitTime.Time
		t.ExitTime = &v
	}
	t.ExitPrice = fromNullFloat(exitPrice)
	t.Commission = fromNullFloat(commission)
	t.HighestPrice = fromNullFloat(highest)
	t.LowestPrice = fromNullFloat(lowest)
	if rulesJSON.Valid {
		json.Unmarshal([]byte(rulesJSON.String), &t.RulesFollowed)
	}
	if tagsJSON.Valid {
		json.Unmarshal([]byte(tagsJSON.String), &t.Tags)
	}
	return &t, nil
}

// SavePlaybook inserts or replaces a playbook with its rule groups.
func (s *SQLiteStore) SavePlaybook(ctx context.Context, pb *models.Playbook) error {
	if err := pb.Validate(); err != nil {
		return err
	}
	groups, _ := json.Marshal(pb.Groups)
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO playbooks (id, name, rule_groups) VALUES (?, ?, ?)
	`, pb.ID, pb.Name, string(groups))
	if err != nil {
		return errors.NewStoreError("playbook", pb.ID, "save", err)
	}
	return nil
}

// GetPlaybooks returns every playbook ordered by name.
func (s *SQLiteStore) GetPlaybooks(ctx context.Context) ([]models.Playbook, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, rule_groups FROM playbooks ORDER BY name")
	if err != nil {
		return nil, errors.NewStoreError("playbook", "", "query", err)
	}
	defer rows.Close()

	var playbooks []models.Playbook
	for rows.Next() {
		var pb models.Playbook
		var groupsJSON sql.NullString
		if err := rows.Scan(&pb.ID, &pb.Name, &groupsJSON); err != nil {
			return nil, errors.NewStoreError("playbook", "", "scan", err)
		}
		if groupsJSON.Valid {
			json.Unmarshal([]byte(groupsJSON.String), &pb.Groups)
		}
		playbooks = append(playbooks, pb)
	}
	return playbooks, rows.Err()
}

// DeletePlaybook removes a playbook by id.
func (s *SQLiteStore) DeletePlaybook(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM playbooks WHERE id = ?", id)
	if err != nil {
		return errors.NewStoreError("playbook", id, "delete", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrPlaybookNotFound
	}
	return nil
}

// SaveTagCategory inserts or replaces a tag category.
func (s *SQLiteStore) SaveTagCategory(ctx context.Context, cat *models.TagCategory) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO tag_categories (id, name) VALUES (?, ?)
	`, cat.ID, cat.Name)
	if err != nil {
		return errors.NewStoreError("tag_category", cat.ID, "save", err)
	}
	return nil
}

// GetTagCategories returns every tag category ordered by name.
func (s *SQLiteStore) GetTagCategories(ctx context.Context) ([]models.TagCategory, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM tag_categories ORDER BY name")
	if err != nil {
		return nil, errors.NewStoreError("tag_category", "", "query", err)
	}
	defer rows.Close()

	var cats []models.TagCategory
	for rows.Next() {
		var c models.TagCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, errors.NewStoreError("tag_category", "", "scan", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// SaveTag inserts or replaces a tag.
func (s *SQLiteStore) SaveTag(ctx context.Context, tag *models.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO tags (id, name, category_id) VALUES (?, ?, ?)
	`, tag.ID, tag.Name, tag.CategoryID)
	if err != nil {
		return errors.NewStoreError("tag", tag.ID, "save", err)
	}
	return nil
}

// GetTags returns every tag ordered by name.
func (s *SQLiteStore) GetTags(ctx context.Context) ([]models.Tag, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, category_id FROM tags ORDER BY name")
	if err != nil {
		return nil, errors.NewStoreError("tag", "", "query", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CategoryID); err != nil {
			return nil, errors.NewStoreError("tag", "", "scan", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// DeleteTag removes a tag by id.
func (s *SQLiteStore) DeleteTag(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id)
	if err != nil {
		return errors.NewStoreError("tag", id, "delete", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrTagNotFound
	}
	return nil
}

// Catalog assembles a read-only snapshot of playbooks and tags for one
// filter evaluation.
func (s *SQLiteStore) Catalog(ctx context.Context) (*models.Catalog, error) {
	playbooks, err := s.GetPlaybooks(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.GetTagCategories(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := s.GetTags(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Catalog{
		Playbooks:  playbooks,
		Categories: categories,
		Tags:       tags,
	}, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}
