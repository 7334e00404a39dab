package ebay_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/collectopedia/internal/ebay"
	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

func writeToken(w http.ResponseWriter, token string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w,
		`{"access_token":%q,"expires_in":7200,"token_type":"Application Access Token"}`,
		token,
	)
}

// tokenServer serves a fixed token and counts how often it was asked.
type tokenServer struct {
	*httptest.Server
	hits atomic.Int32
}

func newTokenServer(t *testing.T, token string) *tokenServer {
	t.Helper()
	ts := &tokenServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		ts.hits.Add(1)
		writeToken(w, token)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestOAuthTokenProvider_Token(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantToken  string
		errContain string
		wantStatus int
	}{
		{
			name:      "token issued",
			handler:   func(w http.ResponseWriter, _ *http.Request) { writeToken(w, "v^1.1#i^1") },
			wantToken: "v^1.1#i^1",
		},
		{
			name: "client rejected",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"client authentication failed"}`))
			},
			errContain: "invalid_client - client authentication failed",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "upstream outage with html body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(`<html>bad gateway</html>`))
			},
			errContain: "token request failed (status 502)",
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "no access token in body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"expires_in":7200}`))
			},
			errContain: "missing access_token",
		},
		{
			name: "body is not json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
			errContain: "parsing token response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			provider := ebay.NewOAuthTokenProvider("app", "cert", ebay.WithTokenURL(srv.URL))
			token, err := provider.Token(context.Background())

			if tt.errContain == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContain)

			var tokenErr *ebay.TokenError
			if tt.wantStatus != 0 {
				require.ErrorAs(t, err, &tokenErr)
				assert.Equal(t, tt.wantStatus, tokenErr.StatusCode)
			} else {
				assert.NotErrorAs(t, err, &tokenErr)
			}
		})
	}
}

func TestOAuthTokenProvider_RequestShape(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		// base64("my-app-id:my-cert-id")
		assert.Equal(t, "Basic bXktYXBwLWlkOm15LWNlcnQtaWQ=", r.Header.Get("Authorization"))

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "https://api.ebay.com/oauth/api_scope", r.PostForm.Get("scope"))

		writeToken(w, "shaped")
	}))
	defer srv.Close()

	provider := ebay.NewOAuthTokenProvider("my-app-id", "my-cert-id", ebay.WithTokenURL(srv.URL))
	token, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "shaped", token)
}

func TestOAuthTokenProvider_Caching(t *testing.T) {
	t.Parallel()

	var (
		mu  sync.Mutex
		now = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		now = now.Add(d)
		mu.Unlock()
	}

	ts := newTokenServer(t, "cached")
	provider := ebay.NewOAuthTokenProvider("app", "cert",
		ebay.WithTokenURL(ts.URL),
		ebay.WithNowFunc(clock),
	)

	for range 3 {
		token, err := provider.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "cached", token)
	}
	assert.Equal(t, int32(1), ts.hits.Load(), "reused while fresh")

	// 7200s lifetime minus the 60s margin.
	advance(7139 * time.Second)
	_, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), ts.hits.Load())

	advance(2 * time.Second)
	_, err = provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), ts.hits.Load(), "refetched inside the expiry margin")
}

func TestOAuthTokenProvider_Invalidate(t *testing.T) {
	t.Parallel()

	ts := newTokenServer(t, "fresh")
	provider := ebay.NewOAuthTokenProvider("app", "cert", ebay.WithTokenURL(ts.URL))

	_, err := provider.Token(context.Background())
	require.NoError(t, err)
	provider.Invalidate()
	_, err = provider.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), ts.hits.Load())
}

func TestOAuthTokenProvider_ConcurrentCallersShareFetch(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		time.Sleep(10 * time.Millisecond)
		writeToken(w, "shared")
	}))
	defer srv.Close()

	provider := ebay.NewOAuthTokenProvider("app", "cert", ebay.WithTokenURL(srv.URL))

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := provider.Token(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "shared", token)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
}

func TestOAuthTokenProvider_MissingCredentials(t *testing.T) {
	t.Parallel()

	for _, creds := range [][2]string{{"", ""}, {"app", ""}, {"", "cert"}} {
		ts := newTokenServer(t, "never")
		provider := ebay.NewOAuthTokenProvider(creds[0], creds[1], ebay.WithTokenURL(ts.URL))

		assert.False(t, provider.HasCredentials())
		_, err := provider.Token(context.Background())
		require.ErrorIs(t, err, ebay.ErrMissingCredentials)
		assert.Zero(t, ts.hits.Load(), "token endpoint must not be called")
	}
}

func TestOAuthTokenProvider_WithScope(t *testing.T) {
	t.Parallel()

	const scope = "https://api.ebay.com/oauth/api_scope/buy.item.feed"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, scope, r.PostForm.Get("scope"))
		writeToken(w, "scoped")
	}))
	defer srv.Close()

	provider := ebay.NewOAuthTokenProvider("app", "cert",
		ebay.WithTokenURL(srv.URL),
		ebay.WithScope(scope),
	)
	token, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "scoped", token)
}

func TestBrowseClient_UnauthorizedDropsCachedToken(t *testing.T) {
	t.Parallel()

	ts := newTokenServer(t, "stale")
	browse := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer browse.Close()

	provider := ebay.NewOAuthTokenProvider("app", "cert", ebay.WithTokenURL(ts.URL))
	client := ebay.NewBrowseClient(provider, ebay.WithBrowseURL(browse.URL))

	for range 2 {
		_, err := client.SearchListed(context.Background(), domain.ListedSearch{Query: "Bumblebee"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
	}

	// One fetch per search: the rejected token is never reused.
	assert.Equal(t, int32(2), ts.hits.Load())
}
