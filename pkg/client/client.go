// Package client talks to the registration and admin HTTP API. It backs the
// registration wizard (wizard.Submitter) and the review board (board.AdminAPI).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	adminModel "megheza-backend/internal/domains/admin/model"
	"megheza-backend/internal/domains/application/model"
)

// ErrUnexpectedStatus wraps responses the client has no mapping for.
var ErrUnexpectedStatus = errors.New("client: unexpected response status")

// =====================================================
// CLIENT
// =====================================================

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a client for an API rooted at baseURL, e.g. "https://megheza.org".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithHTTPClient swaps the underlying *http.Client (tests use httptest servers).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// =====================================================
// REGISTRATION
// =====================================================

// Submit posts a registration. A 400 comes back as *model.ValidationError.
func (c *Client) Submit(ctx context.Context, sub *model.Submission) (*model.ApplicationResponse, error) {
	var created model.ApplicationResponse
	if err := c.do(ctx, http.MethodPost, "/api/register", sub, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// =====================================================
// ADMIN SESSION
// =====================================================

// Login exchanges the admin password for a session token kept by the client.
func (c *Client) Login(ctx context.Context, password string) error {
	var resp struct {
		Data adminModel.TokenResponse `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/login", adminModel.LoginRequest{Password: password}, http.StatusOK, &resp); err != nil {
		return err
	}

	c.mu.Lock()
	c.token = resp.Data.AccessToken
	c.mu.Unlock()
	return nil
}

// Logout revokes the session on the server and forgets the token.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/admin/logout", nil, http.StatusNoContent, nil)

	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	return err
}

// =====================================================
// ADMIN REVIEW
// =====================================================

func (c *Client) List(ctx context.Context, filter model.ListFilter) ([]model.ApplicationResponse, error) {
	path := "/api/admin"
	if filter.Verified != nil {
		path += "?" + url.Values{"verified": {strconv.FormatBool(*filter.Verified)}}.Encode()
	}

	var apps []model.ApplicationResponse
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *Client) Get(ctx context.Context, id uuid.UUID) (*model.ApplicationResponse, error) {
	var app model.ApplicationResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/"+id.String(), nil, http.StatusOK, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*model.VerifyResponse, error) {
	var resp model.VerifyResponse
	body := model.VerifyRequest{Verified: &verified}
	if err := c.do(ctx, http.MethodPatch, "/api/admin/"+id.String()+"/verify", body, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/"+id.String(), nil, http.StatusOK, nil)
}

// =====================================================
// TRANSPORT
// =====================================================

type errorEnvelope struct {
	Errors map[string]string `json:"errors"`
	Error  *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, in interface{}, want int, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("client: read response: %w", err)
	}

	if resp.StatusCode == want {
		if out == nil || len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("client: decode response: %w", err)
		}
		return nil
	}

	return statusError(resp.StatusCode, raw)
}

// statusError maps an unexpected status onto the domain errors callers test with errors.Is/As.
func statusError(status int, raw []byte) error {
	var env errorEnvelope
	_ = json.Unmarshal(raw, &env)

	switch {
	case status == http.StatusBadRequest && len(env.Errors) > 0:
		return &model.ValidationError{Fields: env.Errors}
	case status == http.StatusNotFound:
		return model.NewNotFoundError()
	case status == http.StatusUnauthorized:
		if env.Error != nil && env.Error.Code == adminModel.ErrCodeInvalidCredentials {
			return adminModel.ErrInvalidCredentials
		}
		return adminModel.ErrUnauthorized
	case status == http.StatusServiceUnavailable && env.Error != nil && env.Error.Code == adminModel.ErrCodeAuthUnavailable:
		return adminModel.ErrAuthUnavailable
	}

	msg := http.StatusText(status)
	if env.Error != nil && env.Error.Message != "" {
		msg = env.Error.Message
	}
	return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, status, msg)
}
