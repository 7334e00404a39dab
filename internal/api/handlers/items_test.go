package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/collectopedia/internal/api/handlers"
	"github.com/donaldgifford/collectopedia/internal/store"
	storeMocks "github.com/donaldgifford/collectopedia/internal/store/mocks"
	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

const testItemID = "0b4c2f1e-8d7a-4a53-9f0e-3c1d2b6a7e90"

func newItemsAPI(t *testing.T, s *storeMocks.MockStore) humatest.TestAPI {
	t.Helper()

	_, api := humatest.New(t)
	handlers.RegisterItemRoutes(api, handlers.NewItemsHandler(s))
	return api
}

func TestItemsHandler_ListItems(t *testing.T) {
	t.Parallel()

	value := 55
	tests := []struct {
		name       string
		path       string
		setupMock  func(*storeMocks.MockStore)
		wantStatus int
		wantTotal  int
		wantLimit  int
	}{
		{
			name: "defaults",
			path: "/api/v1/items",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListItems(mock.Anything, mock.MatchedBy(func(q *store.ItemQuery) bool {
						return q.Region == nil && q.ListingType == nil && q.Search == nil &&
							q.Limit == 0 && q.Offset == 0
					})).
					Return([]domain.Item{{ID: testItemID, Name: "Optimus Prime", Value: &value}}, 1, nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantTotal:  1,
			wantLimit:  50,
		},
		{
			name: "filters passed through",
			path: "/api/v1/items?region=us&listing_type=listed&search=prime&limit=10&offset=20&order_by=value",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListItems(mock.Anything, mock.MatchedBy(func(q *store.ItemQuery) bool {
						return q.Region != nil && *q.Region == "US" &&
							q.ListingType != nil && *q.ListingType == "listed" &&
							q.Search != nil && *q.Search == "prime" &&
							q.Limit == 10 && q.Offset == 20 && q.OrderBy == "value"
					})).
					Return(nil, 0, nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantTotal:  0,
			wantLimit:  10,
		},
		{
			name:       "invalid order_by",
			path:       "/api/v1/items?order_by=random",
			setupMock:  func(_ *storeMocks.MockStore) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "limit above maximum",
			path:       "/api/v1/items?limit=1000",
			setupMock:  func(_ *storeMocks.MockStore) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "store error",
			path: "/api/v1/items",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListItems(mock.Anything, mock.Anything).
					Return(nil, 0, errors.New("connection refused")).
					Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := storeMocks.NewMockStore(t)
			tt.setupMock(m)

			resp := newItemsAPI(t, m).Get(tt.path)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var body struct {
				Items []domain.Item `json:"items"`
				Total int           `json:"total"`
				Limit int           `json:"limit"`
			}
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.NotNil(t, body.Items)
			assert.Equal(t, tt.wantTotal, body.Total)
			assert.Equal(t, tt.wantLimit, body.Limit)
		})
	}
}

func TestItemsHandler_GetItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		id         string
		setupMock  func(*storeMocks.MockStore)
		wantStatus int
	}{
		{
			name: "found",
			id:   testItemID,
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					GetItem(mock.Anything, testItemID).
					Return(&domain.Item{ID: testItemID, Name: "Megatron"}, nil).
					Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			id:   testItemID,
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					GetItem(mock.Anything, testItemID).
					Return(nil, store.ErrNotFound).
					Once()
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed id",
			id:         "not-a-uuid",
			setupMock:  func(_ *storeMocks.MockStore) {},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "store error",
			id:   testItemID,
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					GetItem(mock.Anything, testItemID).
					Return(nil, errors.New("timeout")).
					Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := storeMocks.NewMockStore(t)
			tt.setupMock(m)

			resp := newItemsAPI(t, m).Get("/api/v1/items/" + tt.id)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, resp.Body.String(), `"name":"Megatron"`)
			}
		})
	}
}

func TestItemsHandler_CreateItem(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		body       map[string]any
		setupMock  func(*storeMocks.MockStore)
		wantStatus int
		wantItem   domain.Item
	}{
		{
			name: "defaults applied",
			body: map[string]any{"name": "Optimus Prime"},
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					CreateItem(mock.Anything, mock.MatchedBy(func(it *domain.Item) bool {
						return it.Name == "Optimus Prime" &&
							it.Region == domain.RegionUK &&
							it.ListingType == domain.ListingSold
					})).
					RunAndReturn(func(_ context.Context, it *domain.Item) error {
						it.ID = testItemID
						it.CreatedAt = created
						it.UpdatedAt = created
						return nil
					}).
					Once()
			},
			wantStatus: http.StatusCreated,
			wantItem: domain.Item{
				ID:          testItemID,
				Name:        "Optimus Prime",
				Region:      domain.RegionUK,
				ListingType: domain.ListingSold,
				CreatedAt:   created,
				UpdatedAt:   created,
			},
		},
		{
			name: "all fields",
			body: map[string]any{
				"name":         "Soundwave",
				"search_term":  "G1 Soundwave boxed",
				"condition":    "Used",
				"region":       "us",
				"listing_type": "listed",
			},
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					CreateItem(mock.Anything, mock.Anything).
					RunAndReturn(func(_ context.Context, it *domain.Item) error {
						it.ID = testItemID
						return nil
					}).
					Once()
			},
			wantStatus: http.StatusCreated,
			wantItem: domain.Item{
				ID:          testItemID,
				Name:        "Soundwave",
				SearchTerm:  "G1 Soundwave boxed",
				Condition:   domain.ConditionUsed,
				Region:      domain.RegionUS,
				ListingType: domain.ListingListed,
			},
		},
		{
			name:       "missing name",
			body:       map[string]any{"region": "UK"},
			setupMock:  func(_ *storeMocks.MockStore) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "invalid condition",
			body:       map[string]any{"name": "Jazz", "condition": "Mint"},
			setupMock:  func(_ *storeMocks.MockStore) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "store error",
			body: map[string]any{"name": "Jazz"},
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					CreateItem(mock.Anything, mock.Anything).
					Return(errors.New("duplicate key")).
					Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := storeMocks.NewMockStore(t)
			tt.setupMock(m)

			resp := newItemsAPI(t, m).Post("/api/v1/items", tt.body)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantStatus != http.StatusCreated {
				return
			}

			var got domain.Item
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
			assert.Equal(t, tt.wantItem, got)
		})
	}
}

func TestItemsHandler_DeleteItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		id         string
		storeErr   error
		callsStore bool
		wantStatus int
	}{
		{name: "deleted", id: testItemID, callsStore: true, wantStatus: http.StatusNoContent},
		{
			name:       "not found",
			id:         testItemID,
			storeErr:   store.ErrNotFound,
			callsStore: true,
			wantStatus: http.StatusNotFound,
		},
		{name: "malformed id", id: "42", wantStatus: http.StatusNotFound},
		{
			name:       "store error",
			id:         testItemID,
			storeErr:   errors.New("connection reset"),
			callsStore: true,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := storeMocks.NewMockStore(t)
			if tt.callsStore {
				m.EXPECT().DeleteItem(mock.Anything, tt.id).Return(tt.storeErr).Once()
			}

			resp := newItemsAPI(t, m).Delete("/api/v1/items/" + tt.id)
			assert.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
		})
	}
}
