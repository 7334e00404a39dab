package store

// SQL query constants. PostgresStore methods reference these.

const itemColumns = `id, name, search_term, condition, region, listing_type,
	value, price_updated_at, created_at, updated_at`

const (
	queryInsertItem = `
		INSERT INTO catalog_items (
			name, search_term, condition, region, listing_type
		) VALUES (
			@name, @search_term, @condition, @region, @listing_type
		)
		RETURNING id, created_at, updated_at`

	queryGetItem = `
		SELECT ` + itemColumns + `
		FROM catalog_items
		WHERE id = $1`

	queryUpdateItemValue = `
		UPDATE catalog_items SET
			value = @value,
			price_updated_at = @price_updated_at,
			updated_at = now()
		WHERE id = @id`

	queryDeleteItem = `DELETE FROM catalog_items WHERE id = $1`
)
