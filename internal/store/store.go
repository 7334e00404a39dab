// Package store defines the datastore abstraction for the collectopedia
// catalog. Business logic depends on the Store interface, never on concrete
// implementations, so it can be tested against mocks.
package store

import (
	"context"
	"errors"
	"time"

	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

// ErrNotFound is returned when a requested catalog item does not exist.
var ErrNotFound = errors.New("not found")

// Store defines all data access operations for the catalog.
type Store interface {
	// Items
	CreateItem(ctx context.Context, item *domain.Item) error
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	ListItems(ctx context.Context, q *ItemQuery) ([]domain.Item, int, error)
	UpdateItemValue(ctx context.Context, id string, value int, at time.Time) error
	DeleteItem(ctx context.Context, id string) error

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
