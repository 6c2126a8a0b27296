// Package askh talks to an ASKH documentation backend over its JSON API:
// GET /api/docs for the tree, GET /api/docs/content for document bodies and
// POST /api/chat for the assistant.
package askh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/askh-dev/askh/doctree"
	askh_models "github.com/askh-dev/askh/providers/askh/models"
	"github.com/askh-dev/askh/providers/models"
)

const defaultBaseURL = "http://localhost:8000"

// Config holds the connection settings for an ASKH backend.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Provider implements the content provider and conversation service contracts
// against the ASKH API.
type Provider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewProvider initializes a provider from config, applying defaults.
func NewProvider(config *Config) *Provider {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Provider{
		baseURL: baseURL,
		apiKey:  config.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchTree retrieves one complete snapshot of the document hierarchy.
func (p *Provider) FetchTree(ctx context.Context) (doctree.Snapshot, error) {
	body, err := p.get(ctx, "/api/docs", nil)
	if err != nil {
		return doctree.Snapshot{}, err
	}

	var nodes []doctree.Node
	if err := json.Unmarshal(body, &nodes); err != nil {
		return doctree.Snapshot{}, fmt.Errorf("decoding tree response: %w", models.ErrUnavailable)
	}

	return doctree.Snapshot{Nodes: nodes}, nil
}

// FetchBody retrieves the raw markdown body for a document path.
func (p *Provider) FetchBody(ctx context.Context, path string) (string, error) {
	body, err := p.get(ctx, "/api/docs/content", url.Values{"path": {path}})
	if err != nil {
		return "", err
	}

	var response askh_models.ContentResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("decoding content response: %w", models.ErrUnavailable)
	}

	return response.Content, nil
}

// Converse sends one user message to the assistant and returns its reply.
func (p *Provider) Converse(ctx context.Context, message string) (string, error) {
	payload, err := json.Marshal(askh_models.ChatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("marshalling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("creating chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	p.authorize(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending chat request: %w", models.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp)
	}

	var response askh_models.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", models.ErrUnavailable)
	}

	return response.Response, nil
}

// Health checks that the backend is up.
func (p *Provider) Health(ctx context.Context) error {
	body, err := p.get(ctx, "/", nil)
	if err != nil {
		return err
	}

	var response askh_models.HealthResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("decoding health response: %w", models.ErrUnavailable)
	}

	return nil
}

func (p *Provider) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	target := p.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	p.authorize(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request to %s: %w", endpoint, models.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", models.ErrUnavailable)
	}

	return body, nil
}

func (p *Provider) authorize(req *http.Request) {
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}
}

// apiError maps an error status to the provider error taxonomy, keeping the
// backend's detail message when it parses.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr askh_models.APIError
	detail := ""
	if err := json.Unmarshal(body, &apiErr); err == nil {
		detail = apiErr.Detail
	}

	if resp.StatusCode == http.StatusNotFound {
		if detail != "" {
			return fmt.Errorf("%s: %w", detail, models.ErrNotFound)
		}
		return models.ErrNotFound
	}

	if detail != "" {
		return fmt.Errorf("API request failed with status code '%d' - %s: %w", resp.StatusCode, detail, models.ErrUnavailable)
	}
	return fmt.Errorf("API request failed with status code '%d': %w", resp.StatusCode, models.ErrUnavailable)
}
