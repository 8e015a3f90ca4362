// Package client talks to the pulse HTTP API and implements the service
// interfaces on top of it, so screens can run against a remote backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	log "github.com/sirupsen/logrus"

	"pulse/pkg/storage"
)

const timeout = 10 * time.Second

type ctxKeyRequestID struct{}

// WithRequestID makes requests sent with ctx carry id as X-Request-Id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID{}, id)
}

type Client struct {
	baseURL string
	hc      *http.Client
}

// New returns a client for the API at baseURL. A nil hc gets a client with a
// ten second timeout.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), hc: hc}
}

func (c *Client) Posts() *Posts {
	return &Posts{c: c}
}

func (c *Client) Comments() *Comments {
	return &Comments{c: c}
}

func (c *Client) Users() *Users {
	return &Users{c: c}
}

// do sends a request and decodes a 2xx JSON response into out. notFound is
// returned for a 404.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, notFound error) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding request body: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return fmt.Errorf("error creating request %s %s: %w", method, target, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID, err := requestID(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("X-Request-Id", reqID)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("error calling %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		log.Debugf("[client][%s] %s %s returned %d", reqID, method, path, resp.StatusCode)
		return statusError(resp.StatusCode, strings.TrimSpace(string(msg)), notFound)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response from %s %s: %w", method, path, err)
	}
	return nil
}

func statusError(code int, msg string, notFound error) error {
	switch code {
	case http.StatusNotFound:
		return notFound
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", storage.ErrValidation, msg)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", storage.ErrSimulatedFailure, msg)
	default:
		return fmt.Errorf("unexpected status %d: %s", code, msg)
	}
}

func requestID(ctx context.Context) (string, error) {
	if id, ok := ctx.Value(ctxKeyRequestID{}).(string); ok && id != "" {
		return id, nil
	}
	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("failed to generate request ID: %w", err)
	}
	return id.String(), nil
}

func idPath(prefix, id string, rest ...string) string {
	return "/" + prefix + "/" + url.PathEscape(id) + strings.Join(rest, "")
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}
