package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kivusafe/portal/internal/core/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /login. An accepted login without a token returns "".
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := c.do(ctx, request{
		endpoint: "login",
		method:   http.MethodPost,
		path:     "/login",
		body:     loginRequest{Email: email, Password: password},
	})
	if err != nil {
		return "", err
	}

	switch resp.status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return "", domain.ErrInvalidCredentials
	}
	if !resp.ok() {
		return "", unexpected("login", resp)
	}

	var out loginResponse
	if len(resp.body) > 0 {
		if err := json.Unmarshal(resp.body, &out); err != nil {
			return "", fmt.Errorf("login: decode response: %w", err)
		}
	}
	return out.Token, nil
}

// CurrentUser handles GET /user and returns the record untouched.
func (c *Client) CurrentUser(ctx context.Context, token string) (json.RawMessage, error) {
	resp, err := c.do(ctx, request{
		endpoint: "user",
		method:   http.MethodGet,
		path:     "/user",
		token:    token,
	})
	if err != nil {
		return nil, err
	}

	switch resp.status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, domain.ErrInvalidToken
	}
	if !resp.ok() {
		return nil, unexpected("user", resp)
	}
	if !json.Valid(resp.body) {
		return nil, fmt.Errorf("user: %w: response is not JSON", domain.ErrInvalidToken)
	}
	return json.RawMessage(resp.body), nil
}

// Register handles POST /register. Only 201 Created counts as success.
func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	resp, err := c.do(ctx, request{
		endpoint: "register",
		method:   http.MethodPost,
		path:     "/register",
		body:     reg,
	})
	if err != nil {
		return err
	}
	if resp.status == http.StatusCreated {
		return nil
	}
	if resp.ok() {
		return fmt.Errorf("register: %w (status %d)", domain.ErrSubmissionFailed, resp.status)
	}
	return unexpected("register", resp)
}
