// Package registrar talks to the target site's registration endpoints:
// requesting a verification code, submitting it, and finalizing the account.
//
// All calls carry a fixed browser-like header set; the site rejects
// requests that do not look like they came from its own registration page.
package registrar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/dadgen/internal/common"
	"github.com/dmitrijs2005/dadgen/internal/jsonx"
	"github.com/dmitrijs2005/dadgen/internal/logging"
)

// DefaultBaseURL is the production registration endpoint.
const DefaultBaseURL = "https://darkanddarker.com"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.6533.89 Safari/537.36"

// Settings contains the settings for the registration API.
type Settings struct {
	BaseURL string
}

// Registration is the outcome of a successful Finalize call.
type Registration struct {
	// Username as confirmed by the server; may differ from the requested one.
	Username string
	// Cookie is the opaque session token issued on registration, assembled
	// from the response's Set-Cookie headers. May be empty.
	Cookie string
}

// Client is an HTTP client for the registration API.
type Client struct {
	client   *http.Client
	settings Settings
	log      logging.Logger
}

// NewClient creates a new registration client.
func NewClient(client *http.Client, s Settings, log logging.Logger) *Client {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	return &Client{client: client, settings: s, log: log}
}

// result is the structured result code every endpoint answers with.
// Zero means success.
type result struct {
	Result int `json:"result"`
}

// RequestCode asks the server to send a verification code to email.
// The code itself is delivered by mail, not in the response.
func (c *Client) RequestCode(ctx context.Context, email string) error {
	body, _, err := c.post(ctx, "/auth/regist/email/code", map[string]string{
		"email": email,
	})
	if err != nil {
		return fmt.Errorf("request code: %w", err)
	}

	var res result
	if err := json.Unmarshal(body, &res); err != nil {
		return fmt.Errorf("parse code response: %w", err)
	}
	if res.Result != 0 {
		return fmt.Errorf("%w: result %d", common.ErrRequestFailed, res.Result)
	}
	return nil
}

// VerifyCode submits the verification code for email. It returns true iff
// the server accepted the code. A non-zero result is not an error; the
// error return is reserved for transport and parse failures.
func (c *Client) VerifyCode(ctx context.Context, email, code string) (bool, error) {
	body, _, err := c.post(ctx, "/auth/regist/email/verify", map[string]string{
		"email": email,
		"code":  code,
	})
	if err != nil {
		return false, fmt.Errorf("verify code: %w", err)
	}

	var res result
	if err := json.Unmarshal(body, &res); err != nil {
		return false, fmt.Errorf("parse verify response: %w", err)
	}
	return res.Result == 0, nil
}

// Finalize completes registration with the chosen username and password.
// The server is known to occasionally concatenate two JSON objects in the
// response body; only the last well-formed object is considered.
func (c *Client) Finalize(ctx context.Context, email, username, password string) (Registration, error) {
	body, resp, err := c.post(ctx, "/auth/regist", map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	})
	if err != nil {
		return Registration{}, fmt.Errorf("finalize registration: %w", err)
	}

	obj, err := jsonx.LastObject(body)
	if err != nil {
		return Registration{}, fmt.Errorf("parse registration response: %w", err)
	}

	var res struct {
		Result   int    `json:"result"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(obj, &res); err != nil {
		return Registration{}, fmt.Errorf("parse registration response: %w", err)
	}
	if res.Result != 0 {
		return Registration{}, fmt.Errorf("%w: result %d", common.ErrRequestFailed, res.Result)
	}

	return Registration{
		Username: res.Username,
		Cookie:   joinCookies(resp.Cookies()),
	}, nil
}

// post sends a JSON body to path and returns the raw response body together
// with the response itself (for header/cookie inspection).
func (c *Client) post(ctx context.Context, path string, payload map[string]string) ([]byte, *http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.settings.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Origin", c.settings.BaseURL)
	req.Header.Set("Referer", c.settings.BaseURL+"/user/register")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	c.log.Debug(ctx, "registrar response", "path", path, "status", resp.StatusCode)
	return body, resp, nil
}

func joinCookies(cookies []*http.Cookie) string {
	if len(cookies) == 0 {
		return ""
	}
	parts := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		parts = append(parts, ck.Name+"="+ck.Value)
	}
	return strings.Join(parts, "; ")
}
