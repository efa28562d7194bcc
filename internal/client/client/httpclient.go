package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/catalogclient/internal/common"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

// DefaultTimeout bounds every request, connection and body read included.
const DefaultTimeout = 10 * time.Second

const maxBodySize = 4 << 20

var errServerStatus = errors.New("server error status")

// Config holds the transport settings of HTTPClient.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Headers map[string]string
}

// HTTPClient is the REST implementation of Client.
type HTTPClient struct {
	baseURL      string
	headers      map[string]string
	http         *http.Client
	credentials  CredentialSource
	observers    []Observer
	breaker      *gobreaker.CircuitBreaker
	newRequestID func() string
}

var _ Client = (*HTTPClient)(nil)

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithCredentials attaches src's credential to every request.
func WithCredentials(src CredentialSource) Option {
	return func(c *HTTPClient) { c.credentials = src }
}

// WithObserver registers an observer notified after every exchange.
func WithObserver(o Observer) Option {
	return func(c *HTTPClient) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// WithHTTPClient uses a copy of hc as the underlying client. The copy's
// Timeout is overwritten with the configured one; hc itself is not modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc == nil {
			return
		}
		cp := *hc
		c.http = &cp
	}
}

// WithRequestIDGenerator overrides the X-Request-ID generator.
func WithRequestIDGenerator(fn func() string) Option {
	return func(c *HTTPClient) { c.newRequestID = fn }
}

// New builds an HTTPClient. Zero Timeout means DefaultTimeout.
func New(cfg Config, opts ...Option) *HTTPClient {
	headers := map[string]string{
		common.ContentTypeHeaderName: common.JSONContentType,
		common.AcceptHeaderName:      common.JSONContentType,
	}
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	c := &HTTPClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		headers:      headers,
		http:         &http.Client{},
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c.http.Timeout = timeout

	return c
}

// BaseURL returns the configured base address.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

// Send implements Client.
func (c *HTTPClient) Send(ctx context.Context, method, path string, body, out any) error {
	reqID := c.newRequestID()
	start := time.Now()

	req, err := c.newRequest(ctx, reqID, method, path, body)
	if err != nil {
		c.notify(ctx, Exchange{RequestID: reqID, Method: method, Path: path, Err: err})
		return err
	}

	status, respBody, err := c.roundTrip(req)
	err = decodeResult(status, respBody, err, out)

	c.notify(ctx, Exchange{
		RequestID:  reqID,
		Method:     method,
		Path:       path,
		StatusCode: status,
		Duration:   time.Since(start),
		Err:        err,
	})
	return err
}

func (c *HTTPClient) newRequest(ctx context.Context, reqID, method, path string, body any) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), rdr)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set(common.RequestIDHeaderName, reqID)

	if c.credentials != nil {
		if token := c.credentials.Credential(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}
	return req, nil
}

func (c *HTTPClient) url(path string) string {
	if path == "" {
		return c.baseURL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

type response struct {
	status int
	body   []byte
}

// roundTrip performs req, through the breaker when one is configured. Network
// failures and 5xx responses count against the breaker; an open breaker
// short-circuits with ErrCircuitOpen and no status.
func (c *HTTPClient) roundTrip(req *http.Request) (int, []byte, error) {
	if c.breaker == nil {
		return c.do(req)
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		status, body, err := c.do(req)
		r := response{status: status, body: body}
		if err != nil {
			return r, err
		}
		if status >= http.StatusInternalServerError {
			return r, errServerStatus
		}
		return r, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return 0, nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}

	r, _ := res.(response)
	if errors.Is(err, errServerStatus) {
		return r.status, r.body, nil
	}
	return r.status, r.body, err
}

func (c *HTTPClient) do(req *http.Request) (int, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

func decodeResult(status int, body []byte, err error, out any) error {
	if err != nil {
		return &TransportError{StatusCode: status, Message: err.Error(), Err: err}
	}

	if status < 200 || status >= 300 {
		return &TransportError{
			StatusCode: status,
			Payload:    ParsePayload(body),
			Message:    http.StatusText(status),
		}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{StatusCode: status, Message: "decode response body", Err: err}
	}
	return nil
}

func (c *HTTPClient) notify(ctx context.Context, ex Exchange) {
	for _, o := range c.observers {
		o.Observe(ctx, ex)
	}
}
