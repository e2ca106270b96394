// Package fetch provides the network capability used to reach the registry.
//
// The capability owns a dedicated fasthttp client with its own dialer. It is created
// lazily on the first request and reused for the life of the process, so tuning or
// instrumentation applied to shared clients elsewhere never reaches registry traffic.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"panda-menu/internal/domain/service"
	"panda-menu/internal/pkg/apperrors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Compile-time check
var _ service.Fetcher = (*Client)(nil)

const (
	defaultTimeout             = 15 * time.Second
	defaultMaxResponseBodySize = 16 << 20
)

type options struct {
	dial                fasthttp.DialFunc
	userAgent           string
	maxResponseBodySize int
}

// Option configures a Client.
type Option func(*options)

// WithDial overrides how connections are established.
func WithDial(dial fasthttp.DialFunc) Option {
	return func(o *options) {
		o.dial = dial
	}
}

// WithUserAgent sets the User-Agent sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// WithMaxResponseBodySize limits the accepted response size in bytes.
func WithMaxResponseBodySize(size int) Option {
	return func(o *options) {
		o.maxResponseBodySize = size
	}
}

// Client implements service.Fetcher on top of a lazily created fasthttp client.
type Client struct {
	opts   options
	logger *zap.Logger

	once   sync.Once
	native *fasthttp.Client
	inits  atomic.Int32
}

// NewClient creates the capability. No connection or client is set up until the first Fetch.
func NewClient(logger *zap.Logger, opts ...Option) *Client {
	o := options{
		userAgent:           "panda-menu",
		maxResponseBodySize: defaultMaxResponseBodySize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		opts:   o,
		logger: logger.Named("FetchClient"),
	}
}

// client returns the underlying fasthttp client, creating it exactly once.
func (c *Client) client() *fasthttp.Client {
	c.once.Do(func() {
		dial := c.opts.dial
		if dial == nil {
			dial = (&fasthttp.TCPDialer{DNSCacheDuration: time.Minute}).Dial
		}
		c.native = &fasthttp.Client{
			Name:                c.opts.userAgent,
			Dial:                dial,
			MaxResponseBodySize: c.opts.maxResponseBodySize,
			ReadTimeout:         defaultTimeout,
			WriteTimeout:        defaultTimeout,
		}
		c.inits.Add(1)
		c.logger.Debug("Created isolated fetch client", zap.String("userAgent", c.opts.userAgent))
	})
	return c.native
}

// Fetch performs a GET request. The timeout is capped by the context deadline.
func (c *Client) Fetch(ctx context.Context, url string, timeout time.Duration) (*service.FetchResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTimeout, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.Set(fasthttp.HeaderAcceptEncoding, "gzip")

	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if deadline, hasDeadline := ctx.Deadline(); hasDeadline {
		requestTimeout := time.Until(deadline)
		if requestTimeout > 0 && requestTimeout < timeout {
			timeout = requestTimeout
		}
	}

	c.logger.Debug("Fetching", zap.String("url", url), zap.Duration("timeout", timeout))

	if err := c.client().DoTimeout(req, resp, timeout); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			return nil, fmt.Errorf("%w: request to %s exceeded %s", apperrors.ErrTimeout, url, timeout)
		}
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}

	return &service.FetchResponse{
		StatusCode:      resp.StatusCode(),
		ContentEncoding: string(resp.Header.Peek(fasthttp.HeaderContentEncoding)),
		Body:            append([]byte(nil), resp.Body()...),
	}, nil
}
