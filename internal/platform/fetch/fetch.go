// Package fetch provides the outbound HTTP client used by resolution strategies
//
// One client instance is shared per upstream; every call takes a context and
// honors its deadline. Strategy attempts are never retried here, fallback
// between strategies is the only retry the system performs
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	perr "tunepipe/internal/platform/errors"
	"tunepipe/internal/platform/logger"
)

const (
	defaultTimeout = 15 * time.Second
	defaultUA      = "tunepipe/1.0"
	defaultMaxBody = 4 << 20 // scraped pages and API payloads stay small
)

// Options configures the Client
type Options struct {
	UserAgent string
	Timeout   time.Duration
	// MaxBody caps how many response bytes a single call may read
	MaxBody int64
}

// StatusError reports a non-2xx upstream response
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d", e.Status)
}

// Client is a thin outbound HTTP wrapper with logging and body caps
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// New creates a Client with sane defaults
func New(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxBody <= 0 {
		o.MaxBody = defaultMaxBody
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("fetch"),
		now:  time.Now,
	}
}

// get issues the request and maps transport and status failures to project errors
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "fetch new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)

	if err != nil {
		// transport fault, the caller's context error wins when present
		if ctx.Err() != nil {
			return nil, perr.Wrapf(ctx.Err(), perr.ErrorCodeUpstream, "fetch cancelled")
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "fetch transport failed")
	}

	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("fetch response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = drainAndClose(resp.Body)
		return nil, perr.Wrapf(&StatusError{Status: resp.StatusCode}, perr.ErrorCodeUpstream, "fetch rejected")
	}
	return resp, nil
}

// JSON fetches url and decodes the body into v
func (c *Client) JSON(ctx context.Context, url string, v any) error {
	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer func() { _ = drainAndClose(resp.Body) }()

	dec := json.NewDecoder(io.LimitReader(resp.Body, c.opts.MaxBody))
	if err := dec.Decode(v); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "fetch decode failed")
	}
	return nil
}

// Text fetches url and returns the body as a string, capped at MaxBody
func (c *Client) Text(ctx context.Context, url string) (string, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer func() { _ = drainAndClose(resp.Body) }()

	b, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBody))
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUpstream, "fetch read failed")
	}
	return string(b), nil
}

// drainAndClose empties and closes a response body so the transport can
// reuse the connection
func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 1<<20))
	return rc.Close()
}
