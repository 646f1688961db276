// Package client talks to the café REST API on behalf of one user session.
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
	"strings"
	"time"

	"github.com/MikeMC777/cafelove/internal/apperr"
	"github.com/MikeMC777/cafelove/internal/menu"
	"github.com/MikeMC777/cafelove/internal/order"
	"github.com/MikeMC777/cafelove/internal/user"
)

// Config is resolved once at startup.
type Config struct {
	APIBaseURL string
	Timeout    time.Duration
}

type Client struct {
	base string
	http *http.Client
}

func New(cfg Config) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(cfg.APIBaseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", cfg.APIBaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base: strings.TrimRight(u.String(), "/"),
		http: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) Signup(ctx context.Context, in user.SignupRequest) (*user.Profile, error) {
	var out user.Profile
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and stores the token in s.
func (c *Client) Login(ctx context.Context, s *Session, email, password string) error {
	var out user.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, user.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return err
	}
	if out.Token == "" {
		return apperr.Authentication("empty token in login response")
	}
	s.Login(out.Token)
	return nil
}

func (c *Client) Menu(ctx context.Context) (*menu.Menu, error) {
	var out menu.Menu
	if err := c.do(ctx, http.MethodGet, "/menu", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PlaceOrder(ctx context.Context, s *Session, req order.CreateOrderRequest) (*order.Order, error) {
	var out order.CreateOrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", s, req, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

// Orders returns the session user's orders, newest first.
func (c *Client) Orders(ctx context.Context, s *Session) ([]order.Order, error) {
	var out []order.Order
	if err := c.do(ctx, http.MethodGet, "/orders", s, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Profile(ctx context.Context, s *Session) (*user.Profile, error) {
	var out user.Profile
	if err := c.do(ctx, http.MethodGet, "/profile", s, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, s *Session, in user.UpdateProfileRequest) (*user.Profile, error) {
	var out user.UpdateProfileResponse
	if err := c.do(ctx, http.MethodPut, "/profile", s, in, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// do sends one request. A non-nil s marks the call as protected: it must be
// logged in, and a 401 answer logs it out.
func (c *Client) do(ctx context.Context, method, path string, s *Session, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if s != nil {
		tok := s.Token()
		if tok == "" {
			return apperr.Authentication("not logged in")
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(res.Body).Decode(&e)
		if res.StatusCode == http.StatusUnauthorized && s != nil {
			s.Logout()
		}
		return apperr.FromHTTPStatus(res.StatusCode, e.Error)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
