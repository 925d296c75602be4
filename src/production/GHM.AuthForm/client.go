package authform

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

	ghmmodels "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Models"
)

const (
	loginPath    = "/api/auth/login"
	registerPath = "/api/auth/register"
)

// Authenticator is the external auth API as seen by the form controller
type Authenticator interface {
	Login(ctx context.Context, creds ghmmodels.Credentials) (*ghmmodels.Session, error)
	Register(ctx context.Context, creds ghmmodels.Credentials) (*ghmmodels.Session, error)
}

// Client talks to the auth API. One request per call, no retries.
type Client struct {
	apiBase    string
	httpClient *http.Client
}

// NewClient creates a client for the API rooted at apiBase
func NewClient(apiBase string, timeout time.Duration) *Client {
	return &Client{
		apiBase: strings.TrimRight(apiBase, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWithHTTP lets callers bring their own transport
func NewClientWithHTTP(apiBase string, httpClient *http.Client) *Client {
	return &Client{apiBase: strings.TrimRight(apiBase, "/"), httpClient: httpClient}
}

// APIBase returns the configured base URL
func (c *Client) APIBase() string { return c.apiBase }

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /api/auth/register. Optional fields go out as null.
type RegisterRequest struct {
	Username   string  `json:"username"`
	Password   string  `json:"password"`
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	InviteCode *string `json:"inviteCode"`
}

type failureBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Login exchanges a username and password for a session
func (c *Client) Login(ctx context.Context, creds ghmmodels.Credentials) (*ghmmodels.Session, error) {
	return c.post(ctx, loginPath, LoginRequest{
		Username: creds.Username,
		Password: creds.Password,
	})
}

// Register creates an account and returns its first session
func (c *Client) Register(ctx context.Context, creds ghmmodels.Credentials) (*ghmmodels.Session, error) {
	return c.post(ctx, registerPath, RegisterRequest{
		Username:   creds.Username,
		Password:   creds.Password,
		FirstName:  optional(creds.FirstName),
		LastName:   optional(creds.LastName),
		InviteCode: optional(creds.InviteCode),
	})
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (*ghmmodels.Session, error) {
	resp, err := c.makeRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.serverError(resp)
	}

	var session ghmmodels.Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if session.Token == "" {
		return nil, errors.New("auth API returned no token")
	}
	return &session, nil
}

func (c *Client) serverError(resp *http.Response) error {
	serverErr := &ServerError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(data) == 0 {
		return serverErr
	}
	var body failureBody
	if json.Unmarshal(data, &body) == nil {
		serverErr.Message = body.Message
		if serverErr.Message == "" {
			serverErr.Message = body.Error
		}
	}
	return serverErr
}

// makeRequest makes an HTTP request to the auth API
func (c *Client) makeRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiBase+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isUnreachable(err) {
			return nil, &TransportError{APIBase: c.apiBase, Err: err}
		}
		return nil, fmt.Errorf("auth request failed: %w", err)
	}
	return resp, nil
}

// isUnreachable separates "nothing answered" from a caller that gave up
func isUnreachable(err error) bool {
	return !errors.Is(err, context.Canceled)
}
