package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/collectopedia/internal/engine"
	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

// BatchRefresher refreshes one page of catalog values.
type BatchRefresher interface {
	RunBatch(ctx context.Context, offset int) (*domain.RefreshResult, error)
}

// RefreshHandler handles manual refresh requests.
type RefreshHandler struct {
	refresher BatchRefresher
}

// NewRefreshHandler creates a new RefreshHandler.
func NewRefreshHandler(r BatchRefresher) *RefreshHandler {
	return &RefreshHandler{refresher: r}
}

// RefreshInput selects the batch to refresh.
type RefreshInput struct {
	Offset int `query:"offset" doc:"Catalog offset of the batch" minimum:"0"`
}

// RefreshOutput reports the batch outcome. Callers continue from
// next_offset while has_more is true.
type RefreshOutput struct {
	Body domain.RefreshResult
}

// Refresh runs one refresh batch synchronously.
func (h *RefreshHandler) Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error) {
	res, err := h.refresher.RunBatch(ctx, input.Offset)
	if errors.Is(err, engine.ErrRefreshInProgress) {
		return nil, huma.Error409Conflict("a refresh is already running")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("refresh failed: " + err.Error())
	}

	return &RefreshOutput{Body: *res}, nil
}

// RegisterRefreshRoutes registers the refresh endpoint with the Huma API.
func RegisterRefreshRoutes(api huma.API, h *RefreshHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "refresh-batch",
		Method:      http.MethodPost,
		Path:        "/api/v1/refresh",
		Summary:     "Refresh one batch of catalog values",
		Description: "Prices one page of catalog items sequentially and stores each rounded median.",
		Tags:        []string{"refresh"},
		Errors:      []int{http.StatusConflict, http.StatusInternalServerError},
	}, h.Refresh)
}
