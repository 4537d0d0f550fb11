package internal

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

	"github.com/pkg/errors"
)

// Assistant is the remote assistant service as seen by the dispatcher
type Assistant interface {
	Query(ctx context.Context, req QueryRequest) (*ExchangeResult, error)
}

// Inventory is the item catalog side of the assistant service
type Inventory interface {
	Items(ctx context.Context) ([]RawItem, error)
	SearchItems(ctx context.Context, q ItemQuery) ([]RawItem, error)
	Item(ctx context.Context, id string) (RawItem, error)
}

// ErrItemNotFound is returned by Item when the service has no such item
var ErrItemNotFound = errors.New("item not found")

// maxBodySize bounds response bodies read from the service
const maxBodySize = 8 << 20

// Client talks HTTP/JSON to the assistant service
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTP creates a client using a caller-supplied http.Client
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// BaseURL returns the service root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Query issues POST /query
func (c *Client) Query(ctx context.Context, req QueryRequest) (*ExchangeResult, error) {
	var result ExchangeResult
	if err := c.do(ctx, "query", http.MethodPost, "/query", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Items issues GET /items
func (c *Client) Items(ctx context.Context) ([]RawItem, error) {
	var resp ItemsResponse
	if err := c.do(ctx, "items", http.MethodGet, "/items", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// SearchItems issues POST /items/search
func (c *Client) SearchItems(ctx context.Context, q ItemQuery) ([]RawItem, error) {
	var resp ItemsResponse
	if err := c.do(ctx, "search", http.MethodPost, "/items/search", q, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Item issues GET /items/{id}
func (c *Client) Item(ctx context.Context, id string) (RawItem, error) {
	// the service answers a missing item with an error body, sometimes
	// wrapped in a [body, status] pair
	var raw json.RawMessage
	if err := c.do(ctx, "item", http.MethodGet, "/items/"+url.PathEscape(id), nil, &raw); err != nil {
		var te *TransportError
		if errors.As(err, &te) && te.Status == http.StatusNotFound {
			return nil, errors.Wrapf(ErrItemNotFound, "item %s", id)
		}
		return nil, err
	}

	var body struct {
		Item  RawItem `json:"item"`
		Error string  `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		var pair []json.RawMessage
		if json.Unmarshal(raw, &pair) != nil || len(pair) == 0 || json.Unmarshal(pair[0], &body) != nil {
			return nil, &DecodeError{Endpoint: c.baseURL + "/items/" + id, Err: err}
		}
	}
	if body.Item == nil {
		return nil, errors.Wrapf(ErrItemNotFound, "item %s", id)
	}
	return body.Item, nil
}

// Health issues GET /health
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.do(ctx, "health", http.MethodGet, "/health", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// History issues GET /conversation/{session_id}
func (c *Client) History(ctx context.Context, sessionID string) (*ConversationHistory, error) {
	var hist ConversationHistory
	if err := c.do(ctx, "history", http.MethodGet, "/conversation/"+url.PathEscape(sessionID), nil, &hist); err != nil {
		return nil, err
	}
	return &hist, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out interface{}) error {
	endpoint := c.baseURL + path

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrapf(err, "failed to encode %s request", op)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &TransportError{Endpoint: endpoint, Op: op, Status: resp.StatusCode, Err: errors.Wrap(err, "failed to read body")}
	}
	LogDebug("%s %s -> %d (%s)", method, endpoint, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{
			Endpoint: endpoint,
			Op:       op,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}
