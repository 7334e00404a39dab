package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	orderByCreated = "created_at"
	orderByName    = "name"
	orderByValue   = "value"
	orderByStale   = "price_updated_at"
)

// ItemQuery defines optional filters for listing catalog items.
type ItemQuery struct {
	Region      *string
	ListingType *string
	Search      *string // case-insensitive match on name
	Limit       int     // default 50
	Offset      int
	OrderBy     string // "created_at", "name", "value", "price_updated_at"
}

// validOrderBy maps allowed OrderBy values to their SQL column expressions.
// Every entry ends in id so offset paging is stable.
var validOrderBy = map[string]string{
	orderByCreated: "created_at ASC, id ASC",
	orderByName:    "name ASC, id ASC",
	orderByValue:   "value DESC NULLS LAST, id ASC",
	orderByStale:   "price_updated_at ASC NULLS FIRST, id ASC",
}

const defaultOrderBy = "created_at ASC, id ASC"

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const (
	baseItemsSelect  = "SELECT " + itemColumns + " FROM catalog_items"
	countItemsSelect = "SELECT COUNT(*) FROM catalog_items"
)

// ToSQL builds the data and count queries for q along with their positional
// parameters. Limit and offset are clamped and inlined.
func (q *ItemQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.Region != nil {
		conditions = append(conditions, fmt.Sprintf("region = $%d", paramIdx))
		args = append(args, *q.Region)
		paramIdx++
	}

	if q.ListingType != nil {
		conditions = append(conditions, fmt.Sprintf("listing_type = $%d", paramIdx))
		args = append(args, *q.ListingType)
		paramIdx++
	}

	if q.Search != nil {
		conditions = append(conditions, fmt.Sprintf(`name ILIKE $%d ESCAPE '\'`, paramIdx))
		args = append(args, "%"+likeEscaper.Replace(*q.Search)+"%")
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := defaultOrderBy
	if col, ok := validOrderBy[q.OrderBy]; ok {
		orderClause = col
	}

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseItemsSelect, whereClause, orderClause, q.EffectiveLimit(), max(q.Offset, 0),
	)

	countSQL = countItemsSelect + whereClause

	return dataSQL, countSQL, args
}

// EffectiveLimit returns the page size ToSQL uses.
func (q *ItemQuery) EffectiveLimit() int {
	switch {
	case q.Limit <= 0:
		return defaultLimit
	case q.Limit > maxLimit:
		return maxLimit
	default:
		return q.Limit
	}
}
