package adminsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the admind service. It covers the
// unauthenticated surface and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates an account and returns an authenticated session.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	var tokens TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/register", req, &tokens); err != nil {
		return nil, err
	}
	return newSession(c, &tokens), nil
}

// Login authenticates a credential pair and returns a session.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*Session, error) {
	var tokens TokenResponse
	req := LoginRequest{Username: username, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", req, &tokens); err != nil {
		return nil, err
	}
	return newSession(c, &tokens), nil
}

// Refresh rotates a refresh token without constructing a session.
func (c *SDKClient) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var tokens TokenResponse
	req := RefreshRequest{RefreshToken: refreshToken}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/refresh", req, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// NewSessionFromTokens rebuilds a session from previously stored tokens. The
// session still auto-refreshes when the access token nears expiry.
func (c *SDKClient) NewSessionFromTokens(accessToken, refreshToken string, expiresIn int) *Session {
	return &Session{
		client:       c,
		accessToken:  accessToken,
		refreshToken: refreshToken,
		expiresAt:    time.Now().Add(time.Duration(expiresIn)*time.Second - refreshBuffer),
	}
}

// Revoke withdraws a refresh token from the server-side allowlist.
func (c *SDKClient) Revoke(ctx context.Context, refreshToken string) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/auth/revoke", RevokeRequest{RefreshToken: refreshToken}, nil)
}

// Livez reports process liveness.
func (c *SDKClient) Livez(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Readyz reports whether the service can reach its dependencies.
func (c *SDKClient) Readyz(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doJSON performs an unauthenticated JSON round trip. A nil out discards the
// response body.
func (c *SDKClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("adminsdk: encoding request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return fmt.Errorf("adminsdk: creating request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("adminsdk: sending request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("adminsdk: decoding response: %w", err)
	}
	return nil
}
