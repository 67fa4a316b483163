// Package predict is the client of the prediction service: plant disease and
// soil type image classification, market price forecasts and liveness.
package predict

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultMaxUploadSize = "10MB"
	maxResponseSize      = 4 << 20

	predictDiseasePath = "predict"
	predictSoilPath    = "predict-soil"
	marketPath         = "market-predictions"
	healthPath         = "health"
	healthDetailPath   = "healthz"
)

// Config configures a Client.
type Config struct {
	BaseURL       string        `yaml:"base_url"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxUploadSize string        `yaml:"max_upload_size"`
	// HTTPClient overrides the transport; nil uses a default client.
	HTTPClient *http.Client `yaml:"-"`
}

// Client calls the prediction service. It holds no mutable state and is safe
// for concurrent use.
type Client struct {
	baseURL       string
	timeout       time.Duration
	maxUploadSize int64
	http          *http.Client
}

// New returns a Client for cfg.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("prediction service base url is required")
	}

	size := cfg.MaxUploadSize
	if size == "" {
		size = defaultMaxUploadSize
	}
	maxUpload, err := units.FromHumanSize(size)
	if err != nil {
		return nil, errors.Wrapf(err, "parse max upload size %q", size)
	}

	c := &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		timeout:       cfg.Timeout,
		maxUploadSize: maxUpload,
		http:          cfg.HTTPClient,
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.http == nil {
		c.http = &http.Client{}
	}

	return c, nil
}

// BaseURL returns the service endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// MaxUploadSize returns the largest accepted image payload in bytes.
func (c *Client) MaxUploadSize() int64 {
	return c.maxUploadSize
}

func (c *Client) url(path string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, path)
}

// do sends req bounded by the client timeout and returns the status code and
// body. A response that completes after ctx is done is discarded.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	contentType string,
	body io.Reader,
) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return 0, nil, &Error{Kind: KindTransport, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, &Error{Kind: KindTransport, Err: err}
	}

	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return 0, nil, &Error{Kind: KindTransport, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return 0, nil, &Error{Kind: KindTransport, Err: err}
	}

	return resp.StatusCode, data, nil
}
