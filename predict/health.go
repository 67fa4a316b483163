package predict

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

// Health is the liveness report of the prediction service. Only a 200
// response is required; the fields are filled when the service sends them.
type Health struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Version string          `json:"version,omitempty"`
	Models  map[string]bool `json:"models,omitempty"`
}

// Health checks GET /health.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	return c.health(ctx, healthPath)
}

// HealthDetailed checks GET /healthz, which also reports model availability.
func (c *Client) HealthDetailed(ctx context.Context) (*Health, error) {
	return c.health(ctx, healthDetailPath)
}

func (c *Client) health(ctx context.Context, path string) (*Health, error) {
	status, data, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, &Error{Kind: KindServer, Status: status, Err: errors.New(http.StatusText(status))}
	}

	h := &Health{}
	if err := json.Unmarshal(data, h); err != nil {
		h.Status = http.StatusText(status)
	}

	return h, nil
}
