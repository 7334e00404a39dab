// Package main implements a mock upstream server for local development. It
// serves canned responses from JSON fixtures for the eBay OAuth token and
// Browse search endpoints and the sold-listings API, so the service can run
// without real credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type browseAPIResponse struct {
	ItemSummaries []json.RawMessage `json:"itemSummaries"`
	Total         int               `json:"total"`
	Offset        int               `json:"offset"`
	Limit         int               `json:"limit"`
}

type soldAPIResponse struct {
	Success      bool              `json:"success"`
	AveragePrice float64           `json:"average_price"`
	Products     []json.RawMessage `json:"products"`
}

type soldRequest struct {
	Keywords         string `json:"keywords"`
	MaxSearchResults string `json:"max_search_results"`
}

// titled is the subset of an item both fixtures share.
type titled struct {
	Title string `json:"title"`
}

type indexedItem struct {
	raw   json.RawMessage
	title string
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	searchFixture := flag.String("search-fixture", "tools/mock-server/testdata/search_response.json", "path to browse search fixture")
	soldFixture := flag.String("sold-fixture", "tools/mock-server/testdata/sold_response.json", "path to sold listings fixture")
	apiKey := flag.String("api-key", "", "require this X-RapidAPI-Key on sold requests (any non-empty key when unset)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var browse browseAPIResponse
	if err := loadFixture(*searchFixture, &browse); err != nil {
		logger.Error("failed to load fixture", "path", *searchFixture, "error", err)
		os.Exit(1)
	}
	var sold soldAPIResponse
	if err := loadFixture(*soldFixture, &sold); err != nil {
		logger.Error("failed to load fixture", "path", *soldFixture, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixtures", "listed", len(browse.ItemSummaries), "sold", len(sold.Products))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock upstream server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, &browse, &sold, *apiKey)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(
	logger *slog.Logger,
	browse *browseAPIResponse,
	sold *soldAPIResponse,
	apiKey string,
) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /identity/v1/oauth2/token", tokenHandler(logger))
	mux.HandleFunc("GET /buy/browse/v1/item_summary/search", searchHandler(logger, browse))
	mux.HandleFunc("POST /findCompletedItems", soldHandler(logger, sold, apiKey))
	return mux
}

func loadFixture(path string, dst any) error {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return fmt.Errorf("reading fixture: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parsing fixture: %w", err)
	}
	return nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Basic Auth must be present; the credentials are not checked.
		if _, _, ok := r.BasicAuth(); !ok {
			logger.Warn("token request missing Basic Auth header")
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":             "invalid_client",
				"error_description": "client authentication failed",
			})
			return
		}
		if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "client_credentials" {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":             "unsupported_grant_type",
				"error_description": "grant type must be client_credentials",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "mock-token-v1-" + strconv.FormatInt(int64(os.Getpid()), 16),
			"expires_in":   7200,
			"token_type":   "Application Access Token",
		})
		logger.Info("issued mock token")
	}
}

func index(raws []json.RawMessage) []indexedItem {
	items := make([]indexedItem, 0, len(raws))
	for _, raw := range raws {
		var t titled
		//nolint:errcheck,gosec // fixture data is trusted; title extraction is best-effort
		json.Unmarshal(raw, &t)
		items = append(items, indexedItem{raw: raw, title: strings.ToLower(t.Title)})
	}
	return items
}

// match returns the items whose title contains every word of the query.
func match(items []indexedItem, query string, limit int) []json.RawMessage {
	words := strings.Fields(strings.ToLower(query))
	matched := []json.RawMessage{}
	for _, item := range items {
		ok := true
		for _, w := range words {
			if !strings.Contains(item.title, w) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, item.raw)
		}
		if len(matched) == limit {
			break
		}
	}
	return matched
}

func parseLimit(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}

func searchHandler(logger *slog.Logger, fixture *browseAPIResponse) http.HandlerFunc {
	items := index(fixture.ItemSummaries)

	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"errors": []map[string]string{{"message": "Invalid access token"}},
			})
			return
		}

		q := r.URL.Query().Get("q")
		limit := parseLimit(r.URL.Query().Get("limit"), 50)
		matched := match(items, q, limit)

		writeJSON(w, http.StatusOK, browseAPIResponse{
			ItemSummaries: matched,
			Total:         len(matched),
			Limit:         limit,
		})
		logger.Info("search",
			"query", q,
			"marketplace", r.Header.Get("X-EBAY-C-MARKETPLACE-ID"),
			"filter", r.URL.Query().Get("filter"),
			"returned", len(matched),
		)
	}
}

func soldHandler(logger *slog.Logger, fixture *soldAPIResponse, apiKey string) http.HandlerFunc {
	items := index(fixture.Products)

	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-RapidAPI-Key")
		if key == "" || (apiKey != "" && key != apiKey) {
			writeJSON(w, http.StatusForbidden, map[string]string{
				"message": "You are not subscribed to this API.",
			})
			return
		}

		var req soldRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid JSON body"})
			return
		}

		limit := parseLimit(req.MaxSearchResults, 100)
		matched := match(items, req.Keywords, limit)

		writeJSON(w, http.StatusOK, soldAPIResponse{
			Success:      true,
			AveragePrice: fixture.AveragePrice,
			Products:     matched,
		})
		logger.Info("sold search", "keywords", req.Keywords, "returned", len(matched))
	}
}
