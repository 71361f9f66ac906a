package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/roomdesk/dashboard-client/internal/auth"
)

const (
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
	verifyPath   = "/auth/verify"
)

type (
	UserInfo struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}

	LoginResult struct {
		Token string    `json:"token"`
		User  *UserInfo `json:"user,omitempty"`
	}

	RegisterResult struct {
		Token    string `json:"token,omitempty"`
		ID       int64  `json:"id,omitempty"`
		Username string `json:"username,omitempty"`
		Email    string `json:"email,omitempty"`
	}
)

// LoginUser authenticates with email and password. A 2xx response without a
// token is treated as a login failure.
func (c *Client) LoginUser(ctx context.Context, email, password string) (LoginResult, error) {
	resp, err := c.transport.NewRequest(ctx).
		SetHeader(headerContentType, contentTypeJSON).
		SetBody(map[string]string{"email": email, "password": password}).
		Execute(http.MethodPost, loginPath)
	if err != nil {
		return LoginResult{}, fmt.Errorf("post %s: %w", loginPath, err)
	}

	body := resp.Body()
	if resp.IsError() {
		return LoginResult{}, auth.NewError(normalizeAuthErrorBody(body, "Error in login"))
	}

	var result LoginResult
	_ = json.Unmarshal(body, &result)
	if result.Token == "" {
		return LoginResult{}, auth.NewError("Sign-in failed. Please try again.")
	}

	return result, nil
}

// RegisterUser creates an account. The backend may or may not include a token
// in the response; callers decide whether that auto-logs-in the session.
func (c *Client) RegisterUser(ctx context.Context, registration auth.Registration) (RegisterResult, error) {
	resp, err := c.transport.NewRequest(ctx).
		SetHeader(headerContentType, contentTypeJSON).
		SetBody(map[string]string{
			"name":     registration.Name,
			"username": registration.Username,
			"email":    registration.Email,
			"password": registration.Password,
		}).
		Execute(http.MethodPost, registerPath)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("post %s: %w", registerPath, err)
	}

	body := resp.Body()
	if resp.IsError() {
		return RegisterResult{}, auth.NewError(normalizeAuthErrorBody(body, "Registration failed"))
	}

	var result RegisterResult
	_ = json.Unmarshal(body, &result)
	return result, nil
}

// VerifyToken asks the backend whether the token is still accepted. Only a
// 401 means invalid; any other response counts as valid. Transport failures
// are returned to the caller, which decides on a fallback.
func (c *Client) VerifyToken(ctx context.Context, token string) (bool, error) {
	resp, err := c.transport.NewRequest(ctx).
		SetHeader(headerAuthorization, "Bearer "+token).
		Execute(http.MethodGet, verifyPath)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", verifyPath, err)
	}

	return resp.StatusCode() != http.StatusUnauthorized, nil
}

// SessionGateway adapts the client to the auth.Gateway the session controller
// consumes.
type SessionGateway struct {
	client *Client
}

func NewSessionGateway(client *Client) SessionGateway {
	return SessionGateway{client: client}
}

func (g SessionGateway) Login(ctx context.Context, email, password string) (string, error) {
	result, err := g.client.LoginUser(ctx, email, password)
	if err != nil {
		return "", err
	}

	return result.Token, nil
}

func (g SessionGateway) Register(ctx context.Context, registration auth.Registration) (string, error) {
	result, err := g.client.RegisterUser(ctx, registration)
	if err != nil {
		return "", err
	}

	return result.Token, nil
}

func (g SessionGateway) Verify(ctx context.Context, token string) (bool, error) {
	return g.client.VerifyToken(ctx, token)
}
