package remote

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/cody-foxy/scanwatch/pkg/shared/config"
	"github.com/cody-foxy/scanwatch/pkg/shared/httpclient"
)

// Client talks to the Cody Foxy analysis service. All methods return domain
// errors from pkg/shared/errors; the structured detail field of non-success
// responses is surfaced verbatim.
type Client struct {
	resty   *resty.Client
	baseURL string
	logger  hclog.Logger
}

// errorEnvelope is the structured error body every endpoint returns on a
// non-success HTTP status.
type errorEnvelope struct {
	Detail string `json:"detail"`
}

// NewClient builds a Client from the global configuration. The resty client
// carries the configured timeout, TLS and proxy settings; retries default to
// zero so poll sessions observe transport failures immediately.
func NewClient(cfg *config.Config, logger hclog.Logger) *Client {
	r := httpclient.InitializeRestyClient(logger, cfg)
	if token := config.GetServerToken(cfg); token != "" {
		r.SetAuthToken(token)
	}
	return &Client{
		resty:   r,
		baseURL: cfg.Server.BaseURL,
		logger:  logger,
	}
}

// NewClientWithBase builds a Client against an explicit base URL with a bare
// resty client. Used by tests and by callers that already hold a URL.
func NewClientWithBase(baseURL string, logger hclog.Logger) *Client {
	return &Client{
		resty:   resty.New(),
		baseURL: baseURL,
		logger:  logger,
	}
}

// request prepares a resty request with context and a correlation id.
func (c *Client) request(ctx context.Context) *resty.Request {
	requestID := uuid.NewString()
	c.logger.Debug("remote request", "request_id", requestID)
	return c.resty.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID)
}

func (c *Client) url(path string, args ...interface{}) string {
	return c.baseURL + fmt.Sprintf(path, args...)
}
