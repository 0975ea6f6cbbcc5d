// Package client is a Go consumer for the kisaan order/delivery HTTP API.
// It mirrors the guards the partner and seller UIs apply before calling the
// backend: illegal assignment transitions are rejected locally, and list
// responses are normalized no matter which envelope the server uses.
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
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrAlreadyDecided    = errors.New("delivery request already decided")
	ErrValidation        = errors.New("request rejected by server validation")
)

// APIError carries the status code and message of a non-2xx response that
// does not map to one of the sentinel errors.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// New creates a client for the given base URL. The token authenticates every
// request; pass the principal's token explicitly rather than reading ambient
// state.
func New(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		token:   token,
	}
}

// SetHTTPClient replaces the underlying HTTP client (used in tests and for
// custom transports).
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// do performs one JSON round trip. out may be nil when the body is not
// needed. Errors are mapped to the sentinel taxonomy by status code.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	u := strings.TrimRight(c.baseURL, "/") + path

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}

	return c.errorFromResponse(resp)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)
	msg := eb.Error
	if msg == "" {
		msg = eb.Message
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrAlreadyDecided, msg)
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	default:
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
}
