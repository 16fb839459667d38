package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/lumenshop/storefront/pkg/logger"
)

// Client is the main backend client.
type Client struct {
	config     Config
	httpClient *http.Client
	log        *logger.Logger

	// Derived values
	baseURL      string
	restURL      string
	authURL      string
	storageURL   string
	allowedHosts map[string]struct{}
	limiter      *rate.Limiter

	// Sub-clients
	auth      *AuthClient
	documents *DocumentsClient
	storage   *StorageClient
}

// New creates a new backend client.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	if cfg.ProjectURL == "" {
		return nil, fmt.Errorf("project URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if log == nil {
		log = logger.NewDefault("backend")
	}

	baseURL := strings.TrimRight(cfg.ProjectURL, "/")
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid project URL: %w", err)
	}

	allowedHosts := make(map[string]struct{})
	if len(cfg.AllowedHosts) == 0 {
		allowedHosts[parsedURL.Hostname()] = struct{}{}
	} else {
		for _, h := range cfg.AllowedHosts {
			if h != "" {
				allowedHosts[h] = struct{}{}
			}
		}
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), int(cfg.RequestsPerSecond)+1)
	}

	c := &Client{
		config:       cfg,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		log:          log,
		baseURL:      baseURL,
		restURL:      baseURL + "/rest/v1",
		authURL:      baseURL + "/auth/v1",
		storageURL:   baseURL + "/storage/v1",
		allowedHosts: allowedHosts,
		limiter:      limiter,
	}

	c.auth = &AuthClient{client: c}
	c.documents = &DocumentsClient{client: c}
	c.storage = &StorageClient{client: c}

	return c, nil
}

// Auth returns the auth client.
func (c *Client) Auth() *AuthClient {
	return c.auth
}

// Documents returns the document store client.
func (c *Client) Documents() *DocumentsClient {
	return c.documents
}

// Storage returns the object storage client.
func (c *Client) Storage() *StorageClient {
	return c.storage
}

// request performs an HTTP request with the API key and, when a user is
// signed in, that user's access token.
func (c *Client) request(ctx context.Context, method, urlPath string, body []byte, headers map[string]string) ([]byte, int, error) {
	if err := c.validateURL(urlPath); err != nil {
		return nil, 0, err
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, fmt.Errorf("request throttled: %w", err)
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, urlPath, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.config.APIKey)
	if token := c.auth.accessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}
	return respBody, resp.StatusCode, nil
}

// upload performs a raw-body HTTP request for object storage.
func (c *Client) upload(ctx context.Context, urlPath, contentType string, contents io.Reader) ([]byte, int, error) {
	if err := c.validateURL(urlPath); err != nil {
		return nil, 0, err
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, fmt.Errorf("request throttled: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlPath, contents)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("apikey", c.config.APIKey)
	if token := c.auth.accessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}
	return respBody, resp.StatusCode, nil
}

// validateURL validates that the URL targets an allowed host.
func (c *Client) validateURL(rawURL string) error {
	if len(c.allowedHosts) == 0 {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("invalid URL host")
	}
	if _, ok := c.allowedHosts[host]; !ok {
		return fmt.Errorf("host not allowed: %s", host)
	}
	return nil
}
