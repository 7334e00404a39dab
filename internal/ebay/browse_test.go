package ebay_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/collectopedia/internal/ebay"
	"github.com/donaldgifford/collectopedia/internal/ebay/mocks"
	"github.com/donaldgifford/collectopedia/internal/quota"
	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

const emptyBrowseResponse = `{"itemSummaries":[],"total":0,"offset":0,"limit":100}`

func TestBrowseClient_SearchListed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		req        domain.ListedSearch
		handler    http.HandlerFunc
		tokenErr   error
		wantErr    bool
		errContain string
		wantPrices []*float64
	}{
		{
			name: "successful search with results",
			req: domain.ListedSearch{
				Query:         "Optimus Prime G1",
				Sort:          "price",
				Limit:         100,
				MarketplaceID: "EBAY_GB",
			},
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
				assert.Equal(t, "EBAY_GB", r.Header.Get("X-EBAY-C-MARKETPLACE-ID"))
				assert.Equal(t, "Optimus Prime G1", r.URL.Query().Get("q"))

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{
					"itemSummaries": [
						{"itemId": "v1|1|0", "title": "Optimus 1", "price": {"value": "10.00", "currency": "GBP"}},
						{"itemId": "v1|2|0", "title": "Optimus 2", "price": {"value": "20.50", "currency": "GBP"}},
						{"itemId": "v1|3|0", "title": "Optimus 3"}
					],
					"total": 3
				}`))
			},
			wantPrices: []*float64{floatPtr(10), floatPtr(20.5), nil},
		},
		{
			name: "empty results",
			req:  domain.ListedSearch{Query: "nonexistent item xyz"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(emptyBrowseResponse))
			},
			wantPrices: []*float64{},
		},
		{
			name: "missing itemSummaries key",
			req:  domain.ListedSearch{Query: "nothing"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"total":0}`))
			},
			wantPrices: []*float64{},
		},
		{
			name: "401 unauthorized response",
			req:  domain.ListedSearch{Query: "test"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"errors": [{"message": "Invalid access token"}]}`))
			},
			wantErr:    true,
			errContain: "status 401",
		},
		{
			name: "429 rate limited response",
			req:  domain.ListedSearch{Query: "test"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"errors": [{"message": "Rate limit exceeded"}]}`))
			},
			wantErr:    true,
			errContain: "status 429",
		},
		{
			name: "500 server error response",
			req:  domain.ListedSearch{Query: "test"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr:    true,
			errContain: "status 500",
		},
		{
			name:       "token provider error",
			req:        domain.ListedSearch{Query: "test"},
			handler:    func(_ http.ResponseWriter, _ *http.Request) {},
			tokenErr:   errors.New("token fetch failed"),
			wantErr:    true,
			errContain: "getting auth token",
		},
		{
			name: "invalid JSON response",
			req:  domain.ListedSearch{Query: "test"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte("not valid json"))
			},
			wantErr:    true,
			errContain: "parsing search response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			mockTokens := mocks.NewMockTokenProvider(t)
			if tt.tokenErr != nil {
				mockTokens.EXPECT().
					Token(mock.Anything).
					Return("", tt.tokenErr)
			} else {
				mockTokens.EXPECT().
					Token(mock.Anything).
					Return("test-token", nil)
			}

			client := ebay.NewBrowseClient(
				mockTokens,
				ebay.WithBrowseURL(srv.URL),
			)

			items, err := client.SearchListed(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}

			require.NoError(t, err)
			require.Len(t, items, len(tt.wantPrices))
			for i, want := range tt.wantPrices {
				assert.Equal(t, want, items[i].Price, "item %d", i)
				assert.NotEmpty(t, items[i].Raw)
			}
		})
	}
}

func TestBrowseClient_SearchListed_PreservesRawItem(t *testing.T) {
	t.Parallel()

	const item = `{"itemId":"v1|9|0","title":"Megatron","price":{"value":"45.00","currency":"GBP"},"seller":{"username":"bob"}}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"itemSummaries":[` + item + `],"total":1}`))
	}))
	defer srv.Close()

	mockTokens := mocks.NewMockTokenProvider(t)
	mockTokens.EXPECT().Token(mock.Anything).Return("test-token", nil)

	client := ebay.NewBrowseClient(mockTokens, ebay.WithBrowseURL(srv.URL))
	items, err := client.SearchListed(context.Background(), domain.ListedSearch{Query: "Megatron"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.JSONEq(t, item, string(items[0].Raw))
	assert.Equal(t, floatPtr(45), items[0].Price)
}

func TestBrowseClient_SearchListed_RateLimited(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(emptyBrowseResponse))
	}))
	defer srv.Close()

	mockTokens := mocks.NewMockTokenProvider(t)
	mockTokens.EXPECT().
		Token(mock.Anything).
		Return("test-token", nil).
		Maybe()

	// Quota of a single call.
	client := ebay.NewBrowseClient(
		mockTokens,
		ebay.WithBrowseURL(srv.URL),
		ebay.WithRateLimiter(quota.New("ebay_browse", 100, 10, 1)),
	)

	_, err := client.SearchListed(context.Background(), domain.ListedSearch{Query: "test"})
	require.NoError(t, err)

	_, err = client.SearchListed(context.Background(), domain.ListedSearch{Query: "test"})
	require.ErrorIs(t, err, quota.ErrExhausted)
	assert.Contains(t, err.Error(), "rate limit:")
}

func TestBrowseClient_SearchListed_HTMLResponse(t *testing.T) {
	t.Parallel()

	// eBay occasionally answers with an HTML error page.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write(
			[]byte(`<!DOCTYPE html><html><body><h1>Service Unavailable</h1></body></html>`),
		)
	}))
	defer srv.Close()

	mockTokens := mocks.NewMockTokenProvider(t)
	mockTokens.EXPECT().
		Token(mock.Anything).
		Return("test-token", nil)

	client := ebay.NewBrowseClient(mockTokens, ebay.WithBrowseURL(srv.URL))
	_, err := client.SearchListed(context.Background(), domain.ListedSearch{Query: "test"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing search response")
}

func TestBrowseClient_SearchListed_QueryParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		req        domain.ListedSearch
		wantQuery  map[string]string
		wantAbsent []string
		wantMarket string
	}{
		{
			name: "defaults",
			req:  domain.ListedSearch{Query: "Grimlock"},
			wantQuery: map[string]string{
				"q":     "Grimlock",
				"limit": "100",
			},
			wantAbsent: []string{"sort", "filter"},
			wantMarket: "EBAY_GB",
		},
		{
			name: "sort, limit and filter",
			req: domain.ListedSearch{
				Query:         "Soundwave",
				Sort:          "price",
				Limit:         100,
				Filter:        "deliveryCountry:US,itemLocationCountry:US,conditions:USED",
				MarketplaceID: "EBAY_US",
			},
			wantQuery: map[string]string{
				"q":      "Soundwave",
				"sort":   "price",
				"limit":  "100",
				"filter": "deliveryCountry:US,itemLocationCountry:US,conditions:USED",
			},
			wantMarket: "EBAY_US",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, http.MethodGet, r.Method)
					for k, v := range tt.wantQuery {
						assert.Equalf(t, v, r.URL.Query().Get(k), "query param %q", k)
					}
					for _, k := range tt.wantAbsent {
						assert.Falsef(t, r.URL.Query().Has(k), "query param %q should be absent", k)
					}
					assert.Equal(t, tt.wantMarket, r.Header.Get("X-EBAY-C-MARKETPLACE-ID"))
					w.Header().Set("Content-Type", "application/json")
					_, _ = w.Write([]byte(emptyBrowseResponse))
				}),
			)
			defer srv.Close()

			mockTokens := mocks.NewMockTokenProvider(t)
			mockTokens.EXPECT().
				Token(mock.Anything).
				Return("test-token", nil)

			client := ebay.NewBrowseClient(
				mockTokens,
				ebay.WithBrowseURL(srv.URL),
			)

			_, err := client.SearchListed(context.Background(), tt.req)
			require.NoError(t, err)
		})
	}
}

func TestBrowseClient_Configured(t *testing.T) {
	t.Parallel()

	withCreds := mocks.NewMockTokenProvider(t)
	withCreds.EXPECT().HasCredentials().Return(true)
	assert.True(t, ebay.NewBrowseClient(withCreds).Configured())

	without := mocks.NewMockTokenProvider(t)
	without.EXPECT().HasCredentials().Return(false)
	assert.False(t, ebay.NewBrowseClient(without).Configured())

	assert.False(t, ebay.NewBrowseClient(nil).Configured())
}

func floatPtr(f float64) *float64 {
	return &f
}
