package bithumb

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"resty.dev/v3"

	httpclient "bithumbkit/internal/http"
	"bithumbkit/pkg/core"
)

// Client performs signed and unsigned requests against the exchange REST
// API. It is stateless between calls: each operation is exactly one
// outbound HTTP request with no retries and no caching.
type Client struct {
	config     *core.Config
	httpClient *httpclient.Client
	signer     *Signer
	logger     zerolog.Logger
}

// Option is a functional option for configuring the Client.
type Option func(*Options)

// Options holds construction options for the Client.
type Options struct {
	Logger zerolog.Logger
}

// WithLogger returns an option that sets the logger for the client.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// New creates a Client from the given configuration. Credentials are
// optional; without them only market data endpoints are usable.
func New(config *core.Config, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	options := &Options{
		Logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(options)
	}

	hc, err := httpclient.NewClient(&httpclient.Config{
		BaseURL: config.BaseURL,
		Timeout: config.Timeout,
		Headers: map[string]string{"Accept": "application/json"},
	}, options.Logger)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	c := &Client{
		config:     config,
		httpClient: hc,
		logger:     options.Logger,
	}
	if config.HasCredentials() {
		c.signer = NewSigner(*config.Credentials)
	}

	return c, nil
}

// Close releases resources used by the client.
func (c *Client) Close() error {
	return c.httpClient.Close()
}

// bithumbError is the error envelope the exchange attaches to non-2xx
// responses: {"error":{"name":..., "message":...}}. The name is numeric on
// some endpoints and a string on others.
type bithumbError struct {
	Error struct {
		Name    any    `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) get(ctx context.Context, endpoint string, params core.Params, signed bool) ([]byte, error) {
	return c.do(ctx, http.MethodGet, endpoint, params, signed)
}

func (c *Client) post(ctx context.Context, endpoint string, params core.Params) ([]byte, error) {
	return c.do(ctx, http.MethodPost, endpoint, params, true)
}

func (c *Client) delete(ctx context.Context, endpoint string, params core.Params) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, endpoint, params, true)
}

// do issues one HTTP call. GET and DELETE send params as the query string;
// POST sends them as a JSON body. Signed calls obtain the bearer token from
// the same parameter set that is sent, so the server-side query hash check
// sees identical bytes.
func (c *Client) do(ctx context.Context, method, endpoint string, params core.Params, signed bool) ([]byte, error) {
	var opts []httpclient.RequestOption

	if signed {
		if c.signer == nil {
			return nil, core.ErrNoCredentials
		}
		header, err := c.signer.Sign(params)
		if err != nil {
			return nil, fmt.Errorf("build auth header: %w", err)
		}
		opts = append(opts, httpclient.WithHeader("Authorization", header))
	}

	var resp *resty.Response
	var err error

	switch method {
	case http.MethodGet:
		if len(params) > 0 {
			opts = append(opts, httpclient.WithQueryParams(params.StringMap()))
		}
		resp, err = c.httpClient.Get(ctx, endpoint, opts...)
	case http.MethodPost:
		resp, err = c.httpClient.Post(ctx, endpoint, params, opts...)
	case http.MethodDelete:
		if len(params) > 0 {
			opts = append(opts, httpclient.WithQueryParams(params.StringMap()))
		}
		resp, err = c.httpClient.Delete(ctx, endpoint, opts...)
	default:
		return nil, fmt.Errorf("unsupported http method: %s", method)
	}

	if err != nil {
		c.logger.Error().Err(err).
			Str("method", method).
			Str("endpoint", endpoint).
			Msg("http request failed")
		return nil, transportError(ctx, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, c.statusError(resp)
	}

	return resp.Bytes(), nil
}

// transportError maps a network-level failure to a typed error.
func transportError(ctx context.Context, err error) *core.ExchangeError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return core.NewExchangeError(core.ErrorTypeTimeout, 0, err.Error())
	}
	return core.NewExchangeError(core.ErrorTypeNetwork, 0, err.Error())
}

// statusError maps a non-2xx response to a typed error, carrying the
// exchange's own error name and message when the body provides them.
func (c *Client) statusError(resp *resty.Response) *core.ExchangeError {
	status := resp.StatusCode()
	errType := mapStatusCode(status)

	var body bithumbError
	if err := sonic.Unmarshal(resp.Bytes(), &body); err == nil && body.Error.Message != "" {
		code := ""
		if body.Error.Name != nil {
			code = fmt.Sprintf("%v", body.Error.Name)
		}
		return core.NewExchangeErrorWithCode(errType, status, code, body.Error.Message)
	}

	return core.NewExchangeError(errType, status, fmt.Sprintf("HTTP error: %s", resp.Status()))
}

func mapStatusCode(status int) core.ErrorType {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return core.ErrorTypeAuthentication
	case status == http.StatusNotFound:
		return core.ErrorTypeNotFound
	case status == http.StatusTooManyRequests:
		return core.ErrorTypeRateLimit
	case status >= http.StatusInternalServerError:
		return core.ErrorTypeServerError
	default:
		return core.ErrorTypeBadRequest
	}
}
