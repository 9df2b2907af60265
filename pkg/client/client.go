// Package client is the Go SDK for the staff scheduling API. Token
// attachment is explicit per call rather than a mutated shared default, so
// one Client can safely serve concurrent callers with different identities.
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
)

// APIError is the decoded {"msg": "..."} envelope plus the HTTP status.
type APIError struct {
	Status int
	Msg    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Msg)
}

// User mirrors the server's user profile shape. The password hash never
// appears on the wire.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Shift mirrors the server's shift shape.
type Shift struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Position  string    `json:"position"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type CreateShiftInput struct {
	UserID    string    `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Position  string    `json:"position"`
	Notes     string    `json:"notes,omitempty"`
}

type UpdateShiftInput struct {
	UserID    *string    `json:"user_id,omitempty"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Position  *string    `json:"position,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

// ShiftFilter narrows ListShifts; zero values mean no filter.
type ShiftFilter struct {
	Employee string
	Position string
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Client talks to one scheduling API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client (timeouts, transport).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register creates an account and returns its session token.
func (c *Client) Register(ctx context.Context, in RegisterInput) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/register", "", in, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Login authenticates and returns a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// WhoAmI resolves the token to its server-confirmed user profile.
func (c *Client) WhoAmI(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/auth", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every account, for the assignee picker.
func (c *Client) ListUsers(ctx context.Context, token string) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/api/users", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateShift schedules a shift. A non-empty idempotencyKey makes the call
// replay-safe.
func (c *Client) CreateShift(ctx context.Context, token string, in CreateShiftInput, idempotencyKey string) (*Shift, error) {
	var shift Shift
	err := c.doWith(ctx, http.MethodPost, "/api/shifts", token, in, &shift, func(r *http.Request) {
		if idempotencyKey != "" {
			r.Header.Set("Idempotency-Key", idempotencyKey)
		}
	})
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (c *Client) ListShifts(ctx context.Context, token string, filter ShiftFilter) ([]Shift, error) {
	q := url.Values{}
	if filter.Employee != "" {
		q.Set("employee", filter.Employee)
	}
	if filter.Position != "" {
		q.Set("position", filter.Position)
	}
	path := "/api/shifts"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var shifts []Shift
	if err := c.do(ctx, http.MethodGet, path, token, nil, &shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}

func (c *Client) UpdateShift(ctx context.Context, token, id string, in UpdateShiftInput) (*Shift, error) {
	var shift Shift
	if err := c.do(ctx, http.MethodPut, "/api/shifts/"+id, token, in, &shift); err != nil {
		return nil, err
	}
	return &shift, nil
}

func (c *Client) DeleteShift(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/shifts/"+id, token, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	return c.doWith(ctx, method, path, token, in, out, nil)
}

func (c *Client) doWith(ctx context.Context, method, path, token string, in, out any, mutate func(*http.Request)) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if mutate != nil {
		mutate(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var envelope struct {
		Msg string `json:"msg"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Msg != "" {
		apiErr.Msg = envelope.Msg
	} else {
		apiErr.Msg = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
