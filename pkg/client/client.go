package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Error code constants. Every failure the client reports carries exactly
// one of these.
const (
	CodeNetwork    = "network"
	CodeAuth       = "auth"
	CodeNotFound   = "not_found"
	CodeValidation = "validation"
	CodeServer     = "server"
	CodeUnknown    = "unknown"
)

// Error is the normalized failure shape for all client operations.
type Error struct {
	Code    string
	Message string
	// Fields holds per-field messages when the server rejected input.
	Fields map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Client talks to the trolley REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the credential forwarded on every request and used by
// Subscribe.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Code: CodeUnknown, Message: fmt.Sprintf("marshal request: %v", err)}
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Code: CodeUnknown, Message: fmt.Sprintf("create request: %v", err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Code: CodeNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, resp.Body)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Code: CodeUnknown, Message: fmt.Sprintf("decode response: %v", err)}
		}
	}
	return nil
}

func decodeError(status int, body io.Reader) *Error {
	var payload struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	message := http.StatusText(status)
	var fields map[string]string
	if err := json.NewDecoder(body).Decode(&payload); err == nil && payload.Error != "" {
		message = payload.Error
		fields = payload.Fields
	}

	code := CodeUnknown
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		code = CodeAuth
	case status == http.StatusNotFound:
		code = CodeNotFound
	case status == http.StatusBadRequest:
		code = CodeValidation
	case status >= 500:
		code = CodeServer
	}
	return &Error{Code: code, Message: message, Fields: fields}
}

// --- Lists ---

func (c *Client) CreateList(ctx context.Context, name string) (*List, error) {
	var list List
	if err := c.do(ctx, http.MethodPost, "/api/lists", map[string]string{"name": name}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) Lists(ctx context.Context) ([]List, error) {
	var lists []List
	if err := c.do(ctx, http.MethodGet, "/api/lists", nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (c *Client) RenameList(ctx context.Context, id int64, name string) (*List, error) {
	var list List
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/lists/%d", id), map[string]string{"name": name}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) DeleteList(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/lists/%d", id), nil, nil)
}

// --- Items ---

// ItemParams is the payload for adding an item.
type ItemParams struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	UnitID   int64   `json:"unit_id"`
	Brand    string  `json:"brand,omitempty"`
	Comments string  `json:"comments,omitempty"`
}

// ItemPatch is a partial item update; nil fields are left untouched.
type ItemPatch struct {
	Name       *string  `json:"name,omitempty"`
	Quantity   *float64 `json:"quantity,omitempty"`
	Brand      *string  `json:"brand,omitempty"`
	Comments   *string  `json:"comments,omitempty"`
	CategoryID *int64   `json:"category_id,omitempty"`
	UnitID     *int64   `json:"unit_id,omitempty"`
}

func (c *Client) AddItem(ctx context.Context, listID, categoryID int64, params ItemParams) (*Item, error) {
	var item Item
	path := fmt.Sprintf("/api/lists/%d/categories/%d/items", listID, categoryID)
	if err := c.do(ctx, http.MethodPost, path, params, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) Items(ctx context.Context, listID, categoryID int64) ([]Item, error) {
	var items []Item
	path := fmt.Sprintf("/api/lists/%d/categories/%d/items", listID, categoryID)
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) UpdateItem(ctx context.Context, id int64, patch ItemPatch) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/items/%d", id), patch, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) SetBought(ctx context.Context, id int64, bought bool) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/items/%d", id), map[string]bool{"bought": bought}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/items/%d", id), nil, nil)
}

// --- Categories and units ---

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, name, iconName string) (*Category, error) {
	var category Category
	payload := map[string]string{"name": name, "icon_name": iconName}
	if err := c.do(ctx, http.MethodPost, "/api/categories", payload, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), nil, nil)
}

func (c *Client) Units(ctx context.Context) ([]Unit, error) {
	var units []Unit
	if err := c.do(ctx, http.MethodGet, "/api/units", nil, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// --- Statistics ---

func (c *Client) MonthlyStatistics(ctx context.Context, month string) ([]ListStatistics, error) {
	var results []ListStatistics
	if err := c.do(ctx, http.MethodGet, "/api/statistics/monthly?month="+month, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) ListStatistics(ctx context.Context, id int64) (*ListStatistics, error) {
	var stat ListStatistics
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/statistics/list/%d", id), nil, &stat); err != nil {
		return nil, err
	}
	return &stat, nil
}
