package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/collectopedia/internal/quota"
)

// QuotaHandler reports upstream API quota usage.
type QuotaHandler struct {
	limiters []*quota.Limiter
}

// NewQuotaHandler creates a QuotaHandler. Nil limiters are ignored.
func NewQuotaHandler(limiters ...*quota.Limiter) *QuotaHandler {
	h := &QuotaHandler{}
	for _, l := range limiters {
		if l != nil {
			h.limiters = append(h.limiters, l)
		}
	}
	return h
}

// UpstreamQuota is the quota status of one upstream.
type UpstreamQuota struct {
	Upstream  string    `json:"upstream"  example:"ebay_browse"          doc:"Upstream API name"`
	Limit     int64     `json:"limit"     example:"5000"                 doc:"Calls allowed per window, 0 when uncapped"`
	Used      int64     `json:"used"      example:"142"                  doc:"Calls made in the current window"`
	Remaining int64     `json:"remaining" example:"4858"                 doc:"Calls left in the current window, -1 when uncapped"`
	ResetAt   time.Time `json:"reset_at"  example:"2026-06-16T14:30:00Z" doc:"When the current window expires"`
}

// QuotaOutput is the response body for the quota endpoint.
type QuotaOutput struct {
	Body struct {
		Upstreams []UpstreamQuota `json:"upstreams"`
	}
}

// GetQuota returns the current quota status of every metered upstream.
func (h *QuotaHandler) GetQuota(_ context.Context, _ *struct{}) (*QuotaOutput, error) {
	resp := &QuotaOutput{}
	resp.Body.Upstreams = make([]UpstreamQuota, 0, len(h.limiters))
	for _, l := range h.limiters {
		resp.Body.Upstreams = append(resp.Body.Upstreams, UpstreamQuota{
			Upstream:  l.Name(),
			Limit:     max(l.MaxCalls(), 0),
			Used:      l.Used(),
			Remaining: l.Remaining(),
			ResetAt:   l.ResetAt(),
		})
	}
	return resp, nil
}

// RegisterQuotaRoutes registers the quota endpoint with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Get upstream API quota status",
		Description: "Returns call usage, remaining quota and window reset time for each metered upstream.",
		Tags:        []string{"upstream"},
	}, h.GetQuota)
}
