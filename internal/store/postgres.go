package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PostgresOption configures the connection pool.
type PostgresOption func(*pgxpool.Config)

// WithMaxConns caps the pool size. Values below 1 keep the default of 10.
func WithMaxConns(n int) PostgresOption {
	return func(cfg *pgxpool.Config) {
		if n > 0 {
			cfg.MaxConns = int32(min(n, math.MaxInt32)) //nolint:gosec // bounded above
		}
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(
	ctx context.Context,
	connString string,
	opts ...PostgresOption,
) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// CreateItem inserts a catalog item and fills in its generated fields.
func (s *PostgresStore) CreateItem(ctx context.Context, item *domain.Item) error {
	args := pgx.NamedArgs{
		"name":         item.Name,
		"search_term":  item.SearchTerm,
		"condition":    string(item.Condition),
		"region":       string(item.Region),
		"listing_type": string(item.ListingType),
	}

	if err := s.pool.QueryRow(ctx, queryInsertItem, args).Scan(
		&item.ID, &item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return fmt.Errorf("creating item: %w", err)
	}
	return nil
}

// GetItem retrieves a catalog item by ID.
func (s *PostgresStore) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	item := &domain.Item{}
	err := scanItem(s.pool.QueryRow(ctx, queryGetItem, id), item)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems queries catalog items with optional filters, returning one page
// and the total count matching the filters.
func (s *PostgresStore) ListItems(
	ctx context.Context,
	q *ItemQuery,
) ([]domain.Item, int, error) {
	if q == nil {
		q = &ItemQuery{}
	}
	dataSQL, countSQL, args := q.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting items: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		var item domain.Item
		if err := scanItem(rows, &item); err != nil {
			return nil, 0, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating items: %w", err)
	}

	return items, total, nil
}

// UpdateItemValue records a refreshed value for an item.
func (s *PostgresStore) UpdateItemValue(
	ctx context.Context,
	id string,
	value int,
	at time.Time,
) error {
	tag, err := s.pool.Exec(ctx, queryUpdateItemValue, pgx.NamedArgs{
		"id":               id,
		"value":            value,
		"price_updated_at": at,
	})
	if err != nil {
		return fmt.Errorf("updating item value: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteItem removes a catalog item.
func (s *PostgresStore) DeleteItem(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, queryDeleteItem, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// scannable is satisfied by both pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanItem(row scannable, item *domain.Item) error {
	return row.Scan(
		&item.ID, &item.Name, &item.SearchTerm, &item.Condition,
		&item.Region, &item.ListingType, &item.Value, &item.PriceUpdatedAt,
		&item.CreatedAt, &item.UpdatedAt,
	)
}
