// Package client is the programmatic counterpart of the admin panel's
// API layer: a cookie-holding HTTP client for the portfolio service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"portfolio/api/internal/portfolio"
)

// APIError is a non-2xx response decoded from the server's {error} body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// Status is the response of the auth status endpoint.
type Status struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username"`
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}, nil
}

// Login opens a session; the session cookie lives in the client's jar
// afterwards.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/api/login", body, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", struct{}{}, nil)
}

func (c *Client) AuthStatus(ctx context.Context) (Status, error) {
	var status Status
	err := c.do(ctx, http.MethodGet, "/api/auth/status", nil, &status)
	return status, err
}

func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return c.do(ctx, http.MethodPost, "/api/auth/change-password", body, nil)
}

// GetPortfolio fetches the authenticated full document.
func (c *Client) GetPortfolio(ctx context.Context) (portfolio.Document, error) {
	var doc portfolio.Document
	if err := c.do(ctx, http.MethodGet, "/api/portfolio", nil, &doc); err != nil {
		return nil, err
	}
	return portfolio.Normalize(doc), nil
}

// GetPublicPortfolio fetches the document without authentication.
func (c *Client) GetPublicPortfolio(ctx context.Context) (portfolio.Document, error) {
	var doc portfolio.Document
	if err := c.do(ctx, http.MethodGet, "/api/portfolio/public", nil, &doc); err != nil {
		return nil, err
	}
	return portfolio.Normalize(doc), nil
}

// SavePortfolio bulk-writes the whole document.
func (c *Client) SavePortfolio(ctx context.Context, doc portfolio.Document) error {
	return c.do(ctx, http.MethodPost, "/api/portfolio", doc, nil)
}

// Load and Save let the editor use the client directly as its backend.
func (c *Client) Load(ctx context.Context) (portfolio.Document, error) {
	return c.GetPortfolio(ctx)
}

func (c *Client) Save(ctx context.Context, doc portfolio.Document) error {
	return c.SavePortfolio(ctx, doc)
}

func (c *Client) do(ctx context.Context, method, path string, body, target any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorMessage(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return "request failed"
}
