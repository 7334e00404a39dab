package client

import (
	"context"
	"net/url"
	"strconv"

	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

// ItemListParams holds optional filters for listing catalog items.
type ItemListParams struct {
	Region      string
	ListingType string
	Search      string
	Limit       int
	Offset      int
	OrderBy     string
}

// ItemListResponse is one page of catalog items.
type ItemListResponse struct {
	Items  []domain.Item `json:"items"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// itemRequest contains only the fields the API accepts on create.
type itemRequest struct {
	Name        string             `json:"name"`
	SearchTerm  string             `json:"search_term,omitempty"`
	Condition   domain.Condition   `json:"condition,omitempty"`
	Region      domain.Region      `json:"region,omitempty"`
	ListingType domain.ListingType `json:"listing_type,omitempty"`
}

// ListItems returns one page of catalog items.
func (c *Client) ListItems(ctx context.Context, p *ItemListParams) (*ItemListResponse, error) {
	path := "/api/v1/items"
	if p != nil {
		q := url.Values{}
		if p.Region != "" {
			q.Set("region", p.Region)
		}
		if p.ListingType != "" {
			q.Set("listing_type", p.ListingType)
		}
		if p.Search != "" {
			q.Set("search", p.Search)
		}
		if p.Limit > 0 {
			q.Set("limit", strconv.Itoa(p.Limit))
		}
		if p.Offset > 0 {
			q.Set("offset", strconv.Itoa(p.Offset))
		}
		if p.OrderBy != "" {
			q.Set("order_by", p.OrderBy)
		}
		if len(q) > 0 {
			path += "?" + q.Encode()
		}
	}

	var resp ItemListResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetItem returns a single catalog item.
func (c *Client) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	var item domain.Item
	if err := c.get(ctx, "/api/v1/items/"+url.PathEscape(id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem adds an item to the catalog.
func (c *Client) CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	req := itemRequest{
		Name:        item.Name,
		SearchTerm:  item.SearchTerm,
		Condition:   item.Condition,
		Region:      item.Region,
		ListingType: item.ListingType,
	}

	var created domain.Item
	if err := c.post(ctx, "/api/v1/items", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteItem removes an item from the catalog.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.del(ctx, "/api/v1/items/"+url.PathEscape(id), nil)
}
