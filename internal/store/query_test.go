package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestItemQuery_ToSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		query         ItemQuery
		wantCountSQL  string
		wantArgs      []any
		wantDataHas   []string
		wantDataNotIn []string
	}{
		{
			name:  "empty query uses defaults",
			query: ItemQuery{},
			wantDataHas: []string{
				"FROM catalog_items",
				"ORDER BY created_at ASC, id ASC",
				"LIMIT 50",
				"OFFSET 0",
			},
			wantDataNotIn: []string{"WHERE"},
			wantCountSQL:  "SELECT COUNT(*) FROM catalog_items",
		},
		{
			name:         "region filter",
			query:        ItemQuery{Region: ptr("US")},
			wantDataHas:  []string{"WHERE region = $1"},
			wantCountSQL: "SELECT COUNT(*) FROM catalog_items WHERE region = $1",
			wantArgs:     []any{"US"},
		},
		{
			name:         "search wraps in wildcards",
			query:        ItemQuery{Search: ptr("optimus")},
			wantDataHas:  []string{`WHERE name ILIKE $1 ESCAPE '\'`},
			wantCountSQL: `SELECT COUNT(*) FROM catalog_items WHERE name ILIKE $1 ESCAPE '\'`,
			wantArgs:     []any{"%optimus%"},
		},
		{
			name:         "search escapes like wildcards",
			query:        ItemQuery{Search: ptr(`50%_off\`)},
			wantDataHas:  []string{`WHERE name ILIKE $1 ESCAPE '\'`},
			wantCountSQL: `SELECT COUNT(*) FROM catalog_items WHERE name ILIKE $1 ESCAPE '\'`,
			wantArgs:     []any{`%50\%\_off\\%`},
		},
		{
			name: "all filters numbered in order",
			query: ItemQuery{
				Region:      ptr("UK"),
				ListingType: ptr("sold"),
				Search:      ptr("prime"),
			},
			wantDataHas: []string{
				`WHERE region = $1 AND listing_type = $2 AND name ILIKE $3 ESCAPE '\'`,
			},
			wantCountSQL: `SELECT COUNT(*) FROM catalog_items WHERE region = $1 AND listing_type = $2 AND name ILIKE $3 ESCAPE '\'`,
			wantArgs:     []any{"UK", "sold", "%prime%"},
		},
		{
			name:         "stale ordering",
			query:        ItemQuery{OrderBy: "price_updated_at"},
			wantDataHas:  []string{"ORDER BY price_updated_at ASC NULLS FIRST, id ASC"},
			wantCountSQL: "SELECT COUNT(*) FROM catalog_items",
		},
		{
			name:          "unknown ordering falls back",
			query:         ItemQuery{OrderBy: "id; DROP TABLE catalog_items"},
			wantDataHas:   []string{"ORDER BY created_at ASC, id ASC"},
			wantDataNotIn: []string{"DROP"},
			wantCountSQL:  "SELECT COUNT(*) FROM catalog_items",
		},
		{
			name:         "limit is clamped and offset floored",
			query:        ItemQuery{Limit: 10_000, Offset: -5},
			wantDataHas:  []string{"LIMIT 500", "OFFSET 0"},
			wantCountSQL: "SELECT COUNT(*) FROM catalog_items",
		},
		{
			name:         "explicit page",
			query:        ItemQuery{Limit: 25, Offset: 75},
			wantDataHas:  []string{"LIMIT 25", "OFFSET 75"},
			wantCountSQL: "SELECT COUNT(*) FROM catalog_items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dataSQL, countSQL, args := tt.query.ToSQL()

			for _, s := range tt.wantDataHas {
				assert.Contains(t, dataSQL, s)
			}
			for _, s := range tt.wantDataNotIn {
				assert.NotContains(t, dataSQL, s)
			}
			assert.Equal(t, tt.wantCountSQL, countSQL)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestItemQuery_EffectiveLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 50, (&ItemQuery{}).EffectiveLimit())
	assert.Equal(t, 50, (&ItemQuery{Limit: -1}).EffectiveLimit())
	assert.Equal(t, 25, (&ItemQuery{Limit: 25}).EffectiveLimit())
	assert.Equal(t, 500, (&ItemQuery{Limit: 501}).EffectiveLimit())
}
