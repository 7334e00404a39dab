package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		path          string
		status        int
		providedReqID string
		wantLogFields []string
	}{
		{
			name:   "logs GET request with generated ID",
			method: http.MethodGet,
			path:   "/api/v1/items",
			status: http.StatusOK,
			wantLogFields: []string{
				"method=GET",
				"path=/api/v1/items",
				"status=200",
				"duration_ms=",
				"request_id=",
			},
		},
		{
			name:   "logs POST request",
			method: http.MethodPost,
			path:   "/api/v1/items",
			status: http.StatusCreated,
			wantLogFields: []string{
				"method=POST",
				"status=201",
			},
		},
		{
			name:          "uses provided request ID",
			method:        http.MethodGet,
			path:          "/test",
			status:        http.StatusOK,
			providedReqID: "custom-req-id-123",
			wantLogFields: []string{
				"request_id=custom-req-id-123",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			if tt.providedReqID != "" {
				req.Header.Set(requestIDHeader, tt.providedReqID)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := RequestLog(logger)(func(c echo.Context) error {
				return c.NoContent(tt.status)
			})

			err := handler(c)
			require.NoError(t, err)

			logOutput := buf.String()
			for _, field := range tt.wantLogFields {
				assert.Contains(t, logOutput, field)
			}

			// Response should have the request ID header.
			respID := rec.Header().Get(requestIDHeader)
			assert.NotEmpty(t, respID)

			if tt.providedReqID != "" {
				assert.Equal(t, tt.providedReqID, respID)
			}

			// Context should have request_id.
			assert.NotEmpty(t, c.Get("request_id"))
		})
	}
}

func TestRequestLog_ProbeSuppression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		statuses []int
		// logged[i] reports whether request i adds a log line.
		logged []bool
	}{
		{
			name:     "healthz successes after the first are quiet",
			path:     "/healthz",
			statuses: []int{200, 200, 200},
			logged:   []bool{true, false, false},
		},
		{
			name:     "readyz failures are always logged",
			path:     "/readyz",
			statuses: []int{503, 503},
			logged:   []bool{true, true},
		},
		{
			name:     "failure after quiet successes is logged",
			path:     "/readyz",
			statuses: []int{200, 200, 503},
			logged:   []bool{true, false, true},
		},
		{
			name:     "first success after a failure is logged",
			path:     "/healthz",
			statuses: []int{200, 503, 200, 200},
			logged:   []bool{true, true, true, false},
		},
		{
			name:     "api paths are never suppressed",
			path:     "/api/v1/items",
			statuses: []int{200, 200},
			logged:   []bool{true, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			e := echo.New()

			var status int
			handler := RequestLog(slog.New(slog.NewTextHandler(&buf, nil)))(func(c echo.Context) error {
				return c.NoContent(status)
			})

			for i, st := range tt.statuses {
				status = st
				before := buf.Len()
				req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
				require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))

				assert.Equalf(t, tt.logged[i], buf.Len() > before, "request %d (status %d)", i, st)
				if tt.logged[i] && st >= 300 {
					assert.Contains(t, buf.String()[before:], "level=WARN")
				}
			}
		})
	}
}

func TestRequestLog_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "success at info", status: http.StatusOK, wantLevel: "level=INFO"},
		{name: "client error at warn", status: http.StatusTooManyRequests, wantLevel: "level=WARN"},
		{name: "server error at error", status: http.StatusBadGateway, wantLevel: "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/prices", http.NoBody)
			rec := httptest.NewRecorder()

			handler := RequestLog(logger)(func(c echo.Context) error {
				return c.NoContent(tt.status)
			})
			require.NoError(t, handler(e.NewContext(req, rec)))

			assert.Contains(t, buf.String(), tt.wantLevel)
			assert.Contains(t, buf.String(), "status="+strconv.Itoa(tt.status))
		})
	}
}

func TestRequestLog_ReturnedErrorStatus(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/nope", http.NoBody)
	rec := httptest.NewRecorder()

	handler := RequestLog(logger)(func(_ echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "item not found")
	})
	require.NoError(t, handler(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), "status=404")
}
