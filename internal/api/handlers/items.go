package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/donaldgifford/collectopedia/internal/store"
	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

// ItemsHandler handles catalog item CRUD.
type ItemsHandler struct {
	store store.Store
}

// NewItemsHandler creates a new ItemsHandler.
func NewItemsHandler(s store.Store) *ItemsHandler {
	return &ItemsHandler{store: s}
}

// --- Input/Output types ---

// ListItemsInput is the input for listing catalog items.
type ListItemsInput struct {
	Region      string `query:"region"       doc:"Filter by region"`
	ListingType string `query:"listing_type" doc:"Filter by listing type"        enum:"listed,sold"`
	Search      string `query:"search"       doc:"Case-insensitive name match"`
	Limit       int    `query:"limit"        doc:"Number of results (default 50)"                      minimum:"0" maximum:"500"`
	Offset      int    `query:"offset"       doc:"Pagination offset"                                   minimum:"0"`
	OrderBy     string `query:"order_by"     doc:"Sort field"                    enum:"created_at,name,value,price_updated_at"`
}

// ListItemsOutput is the response for listing catalog items.
type ListItemsOutput struct {
	Body struct {
		Items  []domain.Item `json:"items"`
		Total  int           `json:"total"`
		Limit  int           `json:"limit"`
		Offset int           `json:"offset"`
	}
}

// ItemIDInput identifies a single item.
type ItemIDInput struct {
	ID string `path:"id" doc:"Item UUID"`
}

// ItemOutput is the response for a single item.
type ItemOutput struct {
	Body domain.Item
}

// CreateItemInput is the input for adding an item to the catalog.
type CreateItemInput struct {
	Body struct {
		Name        string `json:"name"                  doc:"Display name"                      minLength:"1" maxLength:"300" example:"Optimus Prime"`
		SearchTerm  string `json:"search_term,omitempty" doc:"Search keywords, the name when empty"              maxLength:"300" example:"Optimus Prime G1"`
		Condition   string `json:"condition,omitempty"   doc:"Condition filter"                  enum:"New,Used"`
		Region      string `json:"region,omitempty"      doc:"Marketplace region"                                                example:"UK"`
		ListingType string `json:"listing_type,omitempty" doc:"Which listings value the item"     enum:"listed,sold"`
	}
}

// --- Handlers ---

// ListItems returns one page of catalog items.
func (h *ItemsHandler) ListItems(
	ctx context.Context,
	input *ListItemsInput,
) (*ListItemsOutput, error) {
	q := &store.ItemQuery{
		Limit:   input.Limit,
		Offset:  input.Offset,
		OrderBy: input.OrderBy,
	}
	if input.Region != "" {
		region := string(domain.ParseRegion(input.Region))
		q.Region = &region
	}
	if input.ListingType != "" {
		q.ListingType = &input.ListingType
	}
	if input.Search != "" {
		q.Search = &input.Search
	}

	items, total, err := h.store.ListItems(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing items failed: " + err.Error())
	}
	if items == nil {
		items = []domain.Item{}
	}

	resp := &ListItemsOutput{}
	resp.Body.Items = items
	resp.Body.Total = total
	resp.Body.Limit = q.EffectiveLimit()
	resp.Body.Offset = q.Offset
	return resp, nil
}

// GetItem returns a single item.
func (h *ItemsHandler) GetItem(ctx context.Context, input *ItemIDInput) (*ItemOutput, error) {
	if _, err := uuid.Parse(input.ID); err != nil {
		return nil, huma.Error404NotFound("item not found")
	}

	item, err := h.store.GetItem(ctx, input.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("item not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("getting item failed: " + err.Error())
	}

	return &ItemOutput{Body: *item}, nil
}

// CreateItem adds an item to the catalog.
func (h *ItemsHandler) CreateItem(
	ctx context.Context,
	input *CreateItemInput,
) (*ItemOutput, error) {
	item := domain.Item{
		Name:        input.Body.Name,
		SearchTerm:  input.Body.SearchTerm,
		Condition:   domain.Condition(input.Body.Condition),
		Region:      domain.ParseRegion(input.Body.Region),
		ListingType: domain.ListingType(input.Body.ListingType),
	}
	if item.Region == "" {
		item.Region = domain.DefaultRegion
	}
	if item.ListingType == "" {
		item.ListingType = domain.ListingSold
	}

	if err := h.store.CreateItem(ctx, &item); err != nil {
		return nil, huma.Error500InternalServerError("creating item failed: " + err.Error())
	}

	return &ItemOutput{Body: item}, nil
}

// DeleteItem removes an item from the catalog.
func (h *ItemsHandler) DeleteItem(ctx context.Context, input *ItemIDInput) (*struct{}, error) {
	if _, err := uuid.Parse(input.ID); err != nil {
		return nil, huma.Error404NotFound("item not found")
	}

	err := h.store.DeleteItem(ctx, input.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("item not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("deleting item failed: " + err.Error())
	}
	return nil, nil
}

// RegisterItemRoutes registers catalog item endpoints with the Huma API.
func RegisterItemRoutes(api huma.API, h *ItemsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-items",
		Method:      http.MethodGet,
		Path:        "/api/v1/items",
		Summary:     "List catalog items",
		Description: "Returns catalog items with optional filters and pagination.",
		Tags:        []string{"items"},
	}, h.ListItems)

	huma.Register(api, huma.Operation{
		OperationID: "get-item",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{id}",
		Summary:     "Get a catalog item",
		Tags:        []string{"items"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetItem)

	huma.Register(api, huma.Operation{
		OperationID:   "create-item",
		Method:        http.MethodPost,
		Path:          "/api/v1/items",
		Summary:       "Add a catalog item",
		Tags:          []string{"items"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateItem)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-item",
		Method:        http.MethodDelete,
		Path:          "/api/v1/items/{id}",
		Summary:       "Delete a catalog item",
		Tags:          []string{"items"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, h.DeleteItem)
}
