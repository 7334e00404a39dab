package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/collectopedia/internal/api/handlers"
	"github.com/donaldgifford/collectopedia/internal/api/handlers/mocks"
	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

func TestPricesHandler_GetPrices(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       map[string]any
		strict     bool
		setupMock  func(*mocks.MockPriceLooker)
		wantStatus int
		wantBody   string
	}{
		{
			name: "sold lookup with defaults",
			body: map[string]any{"searchTerm": "Optimus Prime G1", "listingType": "sold"},
			setupMock: func(m *mocks.MockPriceLooker) {
				m.EXPECT().
					GetPrices(mock.Anything, domain.PriceQuery{
						SearchTerm:  "Optimus Prime G1",
						ListingType: domain.ListingSold,
						Region:      domain.RegionUK,
					}).
					Return(domain.PriceStats{
						Lowest: 45, Median: 55, Highest: 1000, ListingType: domain.ListingSold,
					}).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"lowest":45,"median":55,"highest":1000,"listingType":"sold"}`,
		},
		{
			name: "all fields passed through",
			body: map[string]any{
				"searchTerm":   "Megatron",
				"listingType":  "listed",
				"condition":    "Used",
				"region":       "us",
				"includeItems": true,
			},
			setupMock: func(m *mocks.MockPriceLooker) {
				m.EXPECT().
					GetPrices(mock.Anything, domain.PriceQuery{
						SearchTerm:   "Megatron",
						ListingType:  domain.ListingListed,
						Condition:    domain.ConditionUsed,
						Region:       domain.RegionUS,
						IncludeItems: true,
					}).
					Return(domain.PriceStats{
						Lowest: 1, Median: 1, Highest: 1, ListingType: domain.ListingListed,
						Items: []json.RawMessage{json.RawMessage(`{"itemId":"1"}`)},
					}).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody: `{"lowest":1,"median":1,"highest":1,"listingType":"listed",` +
				`"items":[{"itemId":"1"}]}`,
		},
		{
			name: "degraded result is still 200",
			body: map[string]any{"searchTerm": "Megatron", "listingType": "listed"},
			setupMock: func(m *mocks.MockPriceLooker) {
				m.EXPECT().
					GetPrices(mock.Anything, mock.Anything).
					Return(domain.PriceStats{
						ListingType: domain.ListingListed,
						Error:       "Failed to fetch active listing prices",
						Details:     "eBay API error (status 500)",
					}).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody: `{"lowest":0,"median":0,"highest":0,"listingType":"listed",` +
				`"error":"Failed to fetch active listing prices","details":"eBay API error (status 500)"}`,
		},
		{
			name: "unknown region falls back by default",
			body: map[string]any{"searchTerm": "Jazz", "listingType": "sold", "region": "FR"},
			setupMock: func(m *mocks.MockPriceLooker) {
				m.EXPECT().
					GetPrices(mock.Anything, mock.MatchedBy(func(q domain.PriceQuery) bool {
						return q.Region == "FR"
					})).
					Return(domain.PriceStats{ListingType: domain.ListingSold, Message: "No sold items data"}).
					Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "unknown region rejected in strict mode",
			body:   map[string]any{"searchTerm": "Jazz", "listingType": "sold", "region": "FR"},
			strict: true,
			setupMock: func(m *mocks.MockPriceLooker) {
				m.EXPECT().HasRegion(domain.Region("FR")).Return(false).Once()
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `unknown region FR`,
		},
		{
			name:       "missing search term",
			body:       map[string]any{"listingType": "sold"},
			setupMock:  func(_ *mocks.MockPriceLooker) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "empty search term",
			body:       map[string]any{"searchTerm": "", "listingType": "sold"},
			setupMock:  func(_ *mocks.MockPriceLooker) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "invalid listing type",
			body:       map[string]any{"searchTerm": "Jazz", "listingType": "auction"},
			setupMock:  func(_ *mocks.MockPriceLooker) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "invalid condition",
			body:       map[string]any{"searchTerm": "Jazz", "listingType": "sold", "condition": "Mint"},
			setupMock:  func(_ *mocks.MockPriceLooker) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := mocks.NewMockPriceLooker(t)
			tt.setupMock(m)

			h := handlers.NewPricesHandler(m, handlers.WithStrictRegions(tt.strict))

			_, api := humatest.New(t)
			handlers.RegisterPriceRoutes(api, h)

			resp := api.Post("/api/v1/prices", tt.body)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())

			switch {
			case tt.wantStatus == http.StatusOK && tt.wantBody != "":
				assert.JSONEq(t, tt.wantBody, withoutSchema(t, resp.Body.Bytes()))
			case tt.wantBody != "":
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestPricesHandler_OmitsItemsKey(t *testing.T) {
	t.Parallel()

	m := mocks.NewMockPriceLooker(t)
	m.EXPECT().
		GetPrices(mock.Anything, mock.Anything).
		Return(domain.PriceStats{Lowest: 5, Median: 12.495, Highest: 19.99, ListingType: domain.ListingSold}).
		Once()

	_, api := humatest.New(t)
	handlers.RegisterPriceRoutes(api, handlers.NewPricesHandler(m))

	resp := api.Post("/api/v1/prices", map[string]any{"searchTerm": "x", "listingType": "sold"})
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotContains(t, body, "items")
	assert.NotContains(t, body, "message")
	assert.InDelta(t, 12.495, body["median"], 1e-9)
}

// withoutSchema drops the $schema link huma adds to object bodies.
func withoutSchema(t *testing.T, body []byte) string {
	t.Helper()

	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m))
	delete(m, "$schema")
	out, err := json.Marshal(m)
	require.NoError(t, err)
	return string(out)
}
