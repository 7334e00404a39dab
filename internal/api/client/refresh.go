package client

import (
	"context"
	"fmt"
	"time"

	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

// UpstreamQuota is the quota status of one upstream API.
type UpstreamQuota struct {
	Upstream  string    `json:"upstream"`
	Limit     int64     `json:"limit"`
	Used      int64     `json:"used"`
	Remaining int64     `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// Refresh runs one refresh batch starting at offset.
func (c *Client) Refresh(ctx context.Context, offset int) (*domain.RefreshResult, error) {
	var res domain.RefreshResult
	if err := c.post(ctx, fmt.Sprintf("/api/v1/refresh?offset=%d", offset), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Quota returns the quota status of every metered upstream.
func (c *Client) Quota(ctx context.Context) ([]UpstreamQuota, error) {
	var resp struct {
		Upstreams []UpstreamQuota `json:"upstreams"`
	}
	if err := c.get(ctx, "/api/v1/quota", &resp); err != nil {
		return nil, err
	}
	return resp.Upstreams, nil
}
