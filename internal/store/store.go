// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"tradejournal/internal/models"
)

// DataStore defines the interface for journal persistence. The analytics
// core never talks to it directly; callers fetch a snapshot and hand the
// slice over.
type DataStore interface {
	// Trades
	SaveTrade(ctx context.Context, trade *models.Trade) error
	GetTrade(ctx context.Context, id string) (*models.Trade, error)
	GetTrades(ctx context.Context, query TradeQuery) ([]models.Trade, error)
	DeleteTrade(ctx context.Context, id string) error

	// Playbooks
	SavePlaybook(ctx context.Context, pb *models.Playbook) error
	GetPlaybooks(ctx context.Context) ([]models.Playbook, error)
	DeletePlaybook(ctx context.Context, id string) error

	// Tags
	SaveTagCategory(ctx context.Context, cat *models.TagCategory) error
	GetTagCategories(ctx context.Context) ([]models.TagCategory, error)
	SaveTag(ctx context.Context, tag *models.Tag) error
	GetTags(ctx context.Context) ([]models.Tag, error)
	DeleteTag(ctx context.Context, id string) error

	// Catalog assembles a read-only snapshot of playbooks and tags.
	Catalog(ctx context.Context) (*models.Catalog, error)

	// Lifecycle
	Close() error
}

// TradeQuery is the coarse store-level query. Fine-grained slicing
// happens in the filter package over the returned snapshot.
type TradeQuery struct {
	Symbol    string
	Direction models.Direction
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}
