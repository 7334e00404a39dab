package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/collectopedia/internal/api/handlers"
	"github.com/donaldgifford/collectopedia/internal/store/mocks"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func probe(t *testing.T, h *handlers.HealthHandler, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, path, http.NoBody), rec)

	handler := h.Readyz
	if path == "/healthz" {
		handler = h.Healthz
	}
	require.NoError(t, handler(c))
	return rec
}

func TestHealthz_IgnoresDependencies(t *testing.T) {
	t.Parallel()

	down := pingFunc(func(context.Context) error { return errors.New("down") })
	rec := probe(t, handlers.NewHealthHandler(map[string]handlers.Pinger{"database": down}), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadyz_Store(t *testing.T) {
	t.Parallel()

	for _, pingErr := range []error{nil, errors.New("connection refused")} {
		st := mocks.NewMockStore(t)
		st.EXPECT().Ping(mock.Anything).Return(pingErr).Once()

		rec := probe(t, handlers.NewHealthHandler(map[string]handlers.Pinger{"database": st}), "/readyz")

		if pingErr == nil {
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"status":"ready","checks":{"database":"ok"}}`, rec.Body.String())
		} else {
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			assert.JSONEq(t, `{"status":"unavailable","checks":{"database":"unavailable"}}`, rec.Body.String())
		}
	}
}

func TestReadyz_ReportsEveryCheck(t *testing.T) {
	t.Parallel()

	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("no route") })

	rec := probe(t, handlers.NewHealthHandler(map[string]handlers.Pinger{
		"database": ok,
		"cache":    down,
	}), "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t,
		`{"status":"unavailable","checks":{"database":"ok","cache":"unavailable"}}`,
		rec.Body.String(),
	)
}

func TestReadyz_PingHasDeadline(t *testing.T) {
	t.Parallel()

	var hadDeadline bool
	dep := pingFunc(func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	})

	rec := probe(t, handlers.NewHealthHandler(map[string]handlers.Pinger{"database": dep}), "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, hadDeadline)
}

func TestReadyz_NoDependencies(t *testing.T) {
	t.Parallel()

	rec := probe(t, handlers.NewHealthHandler(nil), "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}
