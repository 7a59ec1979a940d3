// Package mailbox talks to the temporary-mailbox provider: it lists the
// domain suffixes the provider accepts, fetches the messages of a mailbox
// addressed by its digest, and extracts verification codes from message
// bodies.
package mailbox

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/dadgen/internal/logging"
)

// DefaultBaseURL is the RapidAPI temp-mail endpoint.
const DefaultBaseURL = "https://privatix-temp-mail-v1.p.rapidapi.com"

// Settings contains the settings for the temp-mail API.
type Settings struct {
	BaseURL string
	APIKey  string
}

// Client is an HTTP client for the temp-mail API.
type Client struct {
	client   *http.Client
	insecure *http.Client
	settings Settings
	host     string
	log      logging.Logger
}

// NewClient creates a new temp-mail client. The provider is known to reject
// TLS handshakes intermittently, so requests that fail at the transport
// level are retried once on a client with certificate verification disabled.
func NewClient(client *http.Client, s Settings, log logging.Logger) (*Client, error) {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}

	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	insecure := &http.Client{
		Timeout: client.Timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}

	return &Client{
		client:   client,
		insecure: insecure,
		settings: s,
		host:     u.Host,
		log:      log,
	}, nil
}

// Domains returns the ordered list of domain suffixes accepted by the
// provider. An empty list is a valid outcome (unreachable provider, invalid
// key); the caller decides whether that is fatal.
func (c *Client) Domains(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, c.settings.BaseURL+"/request/domains/")
	if err != nil {
		return nil, fmt.Errorf("fetch domains: %w", err)
	}

	var domains []string
	if err := json.Unmarshal(body, &domains); err != nil {
		// Error payloads (e.g. a bad key) come back as an object, not a
		// list. Surface that as "no domains" rather than a failure.
		c.log.Warn(ctx, "domain list not parsable, treating as empty", "body", string(body))
		return nil, nil
	}
	return domains, nil
}

// Messages returns the messages currently in the mailbox addressed by
// digest, newest last. The provider answers with a list, a single object or
// an error payload; all three normalize to a (possibly empty) slice.
func (c *Client) Messages(ctx context.Context, digest string) ([]Message, error) {
	body, err := c.get(ctx, c.settings.BaseURL+"/request/mail/id/"+digest+"/")
	if err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}
	return normalizeMessages(body), nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := c.do(ctx, c.client, rawURL)
	if err != nil {
		c.log.Warn(ctx, "request failed, retrying with relaxed TLS verification", "url", rawURL, "error", err)
		resp, err = c.do(ctx, c.insecure, rawURL)
		if err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, client *http.Client, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.settings.APIKey)
	req.Header.Set("x-rapidapi-host", c.host)

	return client.Do(req)
}
