package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"

	"github.com/rios0rios0/repopublish/internal/domain/entities"
)

const (
	publishPath  = "/github/publish"
	metadataPath = "/projects/%s/metadata"
)

var errBackendNotConfigured = errors.New("backend url is not configured")

// Client talks to the application backend over HTTP.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a backend client. An empty base URL yields a client that
// fails every call with errBackendNotConfigured.
func NewClient(settings entities.BackendSettings) *Client {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = settings.Timeout
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    settings.URL,
		token:      settings.Token,
		httpClient: httpClient,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// response is a raw backend answer: the status and the full body.
type response struct {
	StatusCode int
	Body       []byte
}

func (r *response) ok() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// doJSON sends payload (if any) as JSON and reads the whole body.
func (c *Client) doJSON(ctx context.Context, method, path string, payload any) (*response, error) {
	if c.baseURL == "" {
		return nil, errBackendNotConfigured
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response of %s %s: %w", method, path, err)
	}

	return &response{StatusCode: resp.StatusCode, Body: raw}, nil
}

func projectMetadataPath(projectID string) string {
	return fmt.Sprintf(metadataPath, url.PathEscape(projectID))
}
