package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultTimeout bounds a completion call when the request does not specify
// its own deadline.
const DefaultTimeout = 30 * time.Second

// Config holds OpenAI-compatible endpoint settings.
type Config struct {
	BaseURL string
	APIKey  string

	// Model is the default completion model. InfectionModel and
	// AnalysisModel override it for the quarantine probe's two phases.
	Model          string
	InfectionModel string
	AnalysisModel  string

	Timeout time.Duration
}

// LoadConfigFromEnv reads completer configuration from environment variables.
func LoadConfigFromEnv() Config {
	cfg := Config{
		BaseURL:        getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		APIKey:         os.Getenv("OPENAI_API_KEY"),
		Model:          getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		InfectionModel: os.Getenv("INFECTION_MODEL"),
		AnalysisModel:  os.Getenv("ANALYSIS_MODEL"),
		Timeout:        DefaultTimeout,
	}
	if cfg.InfectionModel == "" {
		cfg.InfectionModel = cfg.Model
	}
	if cfg.AnalysisModel == "" {
		cfg.AnalysisModel = cfg.Model
	}
	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// Client is an OpenAI-compatible chat completion client over plain HTTP.
// It is stateless between calls and safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a completer against an OpenAI-compatible endpoint.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.cfg
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete performs a single-turn chat completion. Transport failures are
// retried once; timeouts are not retried and surface as ErrTimeout.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.cfg.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := c.buildPayload(req)
	if err != nil {
		return "", err
	}

	content, err := c.doCompletion(ctx, payload)
	if err != nil && errors.Is(err, ErrTransport) && ctx.Err() == nil {
		slog.Warn("completion transport failure, retrying once", "model", req.Model, "error", err)
		content, err = c.doCompletion(ctx, payload)
	}
	return content, err
}

func (c *Client) buildPayload(req Request) (map[string]any, error) {
	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}
	payload := map[string]any{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": req.System},
			{"role": "user", "content": req.User},
		},
		"temperature": req.Temperature,
	}
	if req.MaxTokens > 0 {
		payload["max_tokens"] = req.MaxTokens
	}
	switch req.Format.Kind {
	case FormatJSONObject:
		payload["response_format"] = map[string]any{"type": "json_object"}
	case FormatJSONSchema:
		if req.Format.Schema == nil {
			return nil, fmt.Errorf("%w: json_schema format requires a schema", ErrSchemaRejected)
		}
		payload["response_format"] = map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   req.Format.SchemaName,
				"strict": true,
				"schema": req.Format.Schema,
			},
		}
	}
	return payload, nil
}

func (c *Client) doCompletion(ctx context.Context, payload map[string]any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: reading response body: %v", ErrTransport, err)
	}

	if resp.StatusCode == http.StatusBadRequest && bytes.Contains(raw, []byte("response_format")) {
		return "", fmt.Errorf("%w: %s", ErrSchemaRejected, truncate(string(raw), 200))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d: %s", ErrTransport, resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: invalid completion response: %v", ErrTransport, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrTransport, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: completion returned no choices", ErrTransport)
	}
	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
