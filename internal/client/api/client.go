// Package api is the REST transport for the client SDK. It speaks the
// server's response envelope and exposes typed calls for the auth surface.
package api

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

	"careerconnect/internal/client/store"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultTimeout = 15 * time.Second

// authPathPrefix covers the paths whose 401 responses mean the stored
// credential is dead. A 401 anywhere else is an ordinary error.
const authPathPrefix = "/auth/"

// TwoFactorRequiredError signals that login or signup needs a one-time code
// before tokens are issued. It is a normal branch, not a failure.
type TwoFactorRequiredError struct {
	UserID uuid.UUID
	Email  string
}

func (e *TwoFactorRequiredError) Error() string {
	return "two-factor verification required"
}

// APIError carries the server's error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Client talks to the CareerConnect REST API.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string

	// OnAuthExpired fires when an auth-path request comes back 401,
	// meaning the stored token is no longer valid.
	OnAuthExpired func()
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// SetToken attaches a bearer token to all subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.token
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

type loginResponse struct {
	AccessToken       string              `json:"accessToken"`
	RefreshToken      string              `json:"refreshToken"`
	User              *store.UserSnapshot `json:"user"`
	TwoFactorRequired bool                `json:"twoFactorRequired"`
}

type registerResponse struct {
	UserID            uuid.UUID `json:"userId"`
	Email             string    `json:"email"`
	TwoFactorRequired bool      `json:"twoFactorRequired"`
}

// LoginResult is a successful credential exchange.
type LoginResult struct {
	Token        string
	RefreshToken string
	User         *store.UserSnapshot
}

// Login exchanges credentials for tokens. When the account has two-factor
// enabled and no otp is supplied, it returns a TwoFactorRequiredError.
func (c *Client) Login(ctx context.Context, email, password, otp string) (*LoginResult, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
		"otp":      otp,
	}, &out)
	if err != nil {
		return nil, err
	}

	if out.TwoFactorRequired {
		return nil, &TwoFactorRequiredError{Email: email}
	}

	return &LoginResult{
		Token:        out.AccessToken,
		RefreshToken: out.RefreshToken,
		User:         out.User,
	}, nil
}

// Register creates an account. Registration always requires a one-time code
// before tokens are issued, so the success path is a TwoFactorRequiredError
// carrying the pending user id.
func (c *Client) Register(ctx context.Context, name, email, password, role string) error {
	var out registerResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     role,
	}, &out)
	if err != nil {
		return err
	}

	return &TwoFactorRequiredError{UserID: out.UserID, Email: out.Email}
}

// VerifySignupOTP completes a registration with the emailed code.
func (c *Client) VerifySignupOTP(ctx context.Context, userID uuid.UUID, otp string) (*LoginResult, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/verify-signup-2fa", map[string]any{
		"userId": userID,
		"otp":    otp,
	}, &out)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:        out.AccessToken,
		RefreshToken: out.RefreshToken,
		User:         out.User,
	}, nil
}

// JobSummary is the client-side view of a job listing.
type JobSummary struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"companyId"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	Remote    bool      `json:"remote"`
	Status    string    `json:"status"`
}

// ListJobs fetches open job postings, optionally filtered by keyword.
func (c *Client) ListJobs(ctx context.Context, keyword string) ([]JobSummary, error) {
	path := "/jobs"
	if keyword != "" {
		path += "?q=" + url.QueryEscape(keyword)
	}

	var out []JobSummary
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Me fetches the current user profile.
func (c *Client) Me(ctx context.Context) (*store.UserSnapshot, error) {
	var out store.UserSnapshot
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response body")
	}

	if resp.StatusCode == http.StatusUnauthorized && isAuthPath(path) {
		if c.OnAuthExpired != nil {
			c.OnAuthExpired()
		}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return errors.Wrapf(err, "decode response for %s %s", method, path)
	}

	if !env.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: env.Message}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
		}

		return apiErr
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrapf(err, "decode response data for %s %s", method, path)
		}
	}

	return nil
}

func isAuthPath(path string) bool {
	return strings.HasPrefix(path, authPathPrefix)
}
