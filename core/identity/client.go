package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Header names used by the identity service gateway.
const (
	headerTenant = "X-Okapi-Tenant"
	headerToken  = "X-Okapi-Token"
)

// Client defines the interface for identity service operations.
type Client interface {
	// Login exchanges the configured credentials for a session token.
	Login(ctx context.Context) error
	// AddressTypes fetches the address-type reference table (name -> id).
	AddressTypes(ctx context.Context) (map[string]string, error)
	// PatronGroups fetches the patron-group reference table (name -> id).
	PatronGroups(ctx context.Context) (map[string]string, error)
	// QueryUsers runs a CQL query against the user store.
	QueryUsers(ctx context.Context, query string) ([]User, error)
	// CreateUser creates a new user record.
	CreateUser(ctx context.Context, user User) error
	// UpdateUser replaces the user record identified by user.ID.
	UpdateUser(ctx context.Context, user User) error
	// DeleteUser removes the user record identified by id.
	DeleteUser(ctx context.Context, id string) error
	// CreateCredentials registers login credentials for the user.
	CreateCredentials(ctx context.Context, user User) error
	// DeleteCredentials removes the credentials registered for username.
	DeleteCredentials(ctx context.Context, username string) error
	// AddPermissions attaches an empty permission set to the user.
	AddPermissions(ctx context.Context, user User) error
}

// client is the HTTP implementation of Client.
type client struct {
	baseURL *url.URL
	cfg     Config
	http    *http.Client

	// mu guards token. In service mode one client is shared by every
	// request goroutine, and each import run logs in.
	mu    sync.RWMutex
	token string
}

// NewClient creates a new identity service client based on the configuration.
func NewClient(cfg Config) (Client, error) {
	raw := strings.TrimSpace(cfg.URL)
	if raw == "" {
		return nil, fmt.Errorf("identity service URL is required")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse identity service URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("identity service URL must include a host (got %q)", cfg.URL)
	}
	u.Path = strings.TrimRight(u.Path, "/")

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	return &client{
		baseURL: u,
		cfg:     cfg,
		http: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}, nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Tenant   string `json:"tenant"`
}

// Login authenticates against the gateway and stores the session token.
// The token arrives in a response header; a 2xx response without it is
// still an authentication failure.
func (c *client) Login(ctx context.Context) error {
	body := loginRequest{
		Username: c.cfg.Username,
		Password: c.cfg.Password,
		Tenant:   c.cfg.Tenant,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/authn/login", bytes.NewReader(b))
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if !isSuccess(resp.StatusCode) {
		return newAPIError("login", resp.StatusCode, rb)
	}

	token := strings.TrimSpace(resp.Header.Get(headerToken))
	if token == "" {
		return fmt.Errorf("login response missing %s header", headerToken)
	}
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	return nil
}

// newRequest builds a request with the tenant header and, once logged in,
// the session token header.
func (c *client) newRequest(ctx context.Context, method, p string, body io.Reader) (*http.Request, error) {
	rel := &url.URL{Path: p}
	u := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain")
	req.Header.Set(headerTenant, c.cfg.Tenant)

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set(headerToken, token)
	}
	return req, nil
}

// do executes the request and returns the response body for 2xx responses.
// Every call site shares this status classification so failure semantics
// stay uniform across endpoints.
func (c *client) do(req *http.Request, op string) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !isSuccess(resp.StatusCode) {
		return nil, newAPIError(op, resp.StatusCode, rb)
	}
	return rb, nil
}

// isSuccess classifies an HTTP status code. Anything outside 2xx is a
// failure for pipeline purposes.
func isSuccess(code int) bool {
	return code/100 == 2
}

// APIError describes a non-2xx response from the identity service.
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: identity service returned %d: %s", e.Op, e.Status, e.Body)
}

func newAPIError(op string, status int, body []byte) error {
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > 256 {
		snippet = snippet[:256]
	}
	return &APIError{Op: op, Status: status, Body: snippet}
}
