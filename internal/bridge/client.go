// Package bridge posts scouting dossiers from field tools to a running server.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// TokenHeader carries the shared bridge secret.
const TokenHeader = "X-Bridge-Token"

const importPath = "/api/bridge/import"

var (
	// ErrForbidden indicates the server rejected the bridge token.
	ErrForbidden = errors.New("bridge token rejected")
	// ErrRejected indicates the server refused the dossier itself.
	ErrRejected = errors.New("dossier rejected")
)

// Client imports dossiers through the bridge endpoint.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	// MaxAttempts bounds retries on dial errors and 503 responses. Zero means 3.
	MaxAttempts uint
	Logger      *slog.Logger
}

type importResponse struct {
	Status    string `json:"status"`
	ProjectID int64  `json:"project_id"`
	Error     string `json:"error"`
}

// Import sends payload and returns the id of the created project.
// Import is not idempotent: a request the server may have committed is never
// resent. Only dial failures and 503 Service Unavailable are retried.
func (c *Client) Import(ctx context.Context, payload []byte) (int64, error) {
	if !json.Valid(payload) {
		return 0, fmt.Errorf("%w: payload is not valid JSON", ErrRejected)
	}

	attempts := c.MaxAttempts
	if attempts == 0 {
		attempts = 3
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = 2 * time.Second

	return backoff.Retry(ctx, func() (int64, error) {
		return c.post(ctx, payload)
	},
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(attempts),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.Warn("bridge import failed, retrying", "error", err, "retry_in", next)
		}),
	)
}

func (c *Client) post(ctx context.Context, payload []byte) (int64, error) {
	url := strings.TrimRight(c.BaseURL, "/") + importPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, backoff.Permanent(fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(TokenHeader, c.Token)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, backoff.Permanent(ctx.Err())
		}
		err = fmt.Errorf("posting dossier: %w", err)
		if !neverSent(err) {
			return 0, backoff.Permanent(err)
		}
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, backoff.Permanent(fmt.Errorf("reading response: %w", err))
	}
	var out importResponse
	_ = json.Unmarshal(body, &out)

	switch {
	case resp.StatusCode == http.StatusOK:
		if out.ProjectID <= 0 {
			return 0, backoff.Permanent(fmt.Errorf("unexpected import response: %s", strings.TrimSpace(string(body))))
		}
		return out.ProjectID, nil
	case resp.StatusCode == http.StatusForbidden:
		return 0, backoff.Permanent(ErrForbidden)
	case resp.StatusCode == http.StatusServiceUnavailable:
		return 0, fmt.Errorf("server unavailable: %s", message(out, body))
	case resp.StatusCode >= 500:
		// The import may have been committed before the failure.
		return 0, backoff.Permanent(fmt.Errorf("server error %d: %s", resp.StatusCode, message(out, body)))
	default:
		return 0, backoff.Permanent(fmt.Errorf("%w: %d %s", ErrRejected, resp.StatusCode, message(out, body)))
	}
}

func message(out importResponse, body []byte) string {
	if out.Error != "" {
		return out.Error
	}
	return strings.TrimSpace(string(body))
}

// neverSent reports whether err happened while dialing, before any byte of
// the request reached the server.
func neverSent(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
