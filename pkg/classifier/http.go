package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultMaxLength caps input length in characters before scoring. The model
// server tokenizes with right truncation, so a left-anchored character cap is
// a cheap first pass that keeps request bodies bounded.
const DefaultMaxLength = 4096

// Config holds the settings for a scoring model server.
type Config struct {
	// URL is the model server's scoring endpoint.
	URL string
	// Model identifies the guard model to load, e.g. a hub model id.
	Model string
	// Device is a placement hint forwarded to the server ("cpu", "cuda").
	Device string
	// MaxLength caps input characters; zero means DefaultMaxLength.
	MaxLength int

	Timeout time.Duration
}

// LoadConfigFromEnv reads classifier configuration from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		URL:     os.Getenv("GUARD_URL"),
		Model:   getEnvOrDefault("GUARD_MODEL", "meta-llama/Prompt-Guard-86M"),
		Device:  getEnvOrDefault("GUARD_DEVICE", "cpu"),
		Timeout: 10 * time.Second,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// HTTPScorer scores text against a classification model server that returns
// per-class probabilities.
type HTTPScorer struct {
	cfg        Config
	httpClient *http.Client
}

// NewHTTPScorer creates a scorer for the configured model server.
func NewHTTPScorer(cfg Config) *HTTPScorer {
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = DefaultMaxLength
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &HTTPScorer{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type scoreRequest struct {
	Text   string `json:"text"`
	Model  string `json:"model,omitempty"`
	Device string `json:"device,omitempty"`
}

type scoreResponse struct {
	Probabilities []float64 `json:"probabilities"`
}

// Score returns the injection probability for text. Inputs longer than the
// configured maximum are truncated on the right.
func (s *HTTPScorer) Score(ctx context.Context, text string) (float64, error) {
	if runes := []rune(text); len(runes) > s.cfg.MaxLength {
		text = string(runes[:s.cfg.MaxLength])
	}

	body, err := json.Marshal(scoreRequest{Text: text, Model: s.cfg.Model, Device: s.cfg.Device})
	if err != nil {
		return 0, fmt.Errorf("%w: encoding request: %v", ErrClassifier, err)
	}

	url := strings.TrimSuffix(s.cfg.URL, "/") + "/score"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: building request: %v", ErrClassifier, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrClassifier, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: reading response: %v", ErrClassifier, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("%w: status %d", ErrClassifier, resp.StatusCode)
	}

	var parsed scoreResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return 0, fmt.Errorf("%w: invalid response: %v", ErrClassifier, err)
	}
	score, err := ScoreFromProbabilities(parsed.Probabilities)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrClassifier, err)
	}
	return score, nil
}
