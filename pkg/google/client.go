// Package google implements the server side of the Google OAuth login flow:
// exchanging an authorization code for tokens and fetching the user profile.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

const (
	tokenURL    = "https://oauth2.googleapis.com/token"
	userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	maxRetryTime = 15 * time.Second
)

type Token struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
	IDToken     string `json:"id_token"`
}

type UserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type Client struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// ExchangeCode trades an authorization code for tokens. Transient failures
// (network errors, 5xx) are retried with exponential backoff; 4xx responses
// are permanent.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (*Token, error) {
	form := url.Values{
		"code":          {code},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"redirect_uri":  {redirectURI},
		"grant_type":    {"authorization_code"},
	}

	operation := func() (*Token, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL,
			strings.NewReader(form.Encode()))
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var token Token
		if err := c.do(req, &token); err != nil {
			return nil, err
		}
		return &token, nil
	}

	token, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(maxRetryTime))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	return token, nil
}

// FetchUserInfo returns the Google profile for an access token.
func (c *Client) FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	operation := func() (*UserInfo, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+accessToken)

		var info UserInfo
		if err := c.do(req, &info); err != nil {
			return nil, err
		}
		return &info, nil
	}

	info, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(maxRetryTime))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	return info, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		zap.S().Named("google_client").Warnw("transient google API failure",
			"status", resp.Status, "url", req.URL.Path)
		return fmt.Errorf("google API returned %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return backoff.Permanent(fmt.Errorf("google API returned %s: %s", resp.Status, string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
