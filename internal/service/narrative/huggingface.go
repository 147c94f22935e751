package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	applog "github.com/pathlet/pathlet-api/internal/platform/logging"
)

const (
	defaultHFBaseURL = "https://api-inference.huggingface.co"
	// DefaultHFModel is the text-to-text model used when none is configured.
	DefaultHFModel = "google/flan-t5-large"
	userAgent      = "pathlet-api"
	maxErrorBody   = 4 << 10
)

// HuggingFace implements Generator using the Hugging Face inference API.
type HuggingFace struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// HFOption configures a HuggingFace client.
type HFOption func(*HuggingFace)

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) HFOption {
	return func(c *HuggingFace) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithAPIKey sets the Bearer token sent with every request.
func WithAPIKey(key string) HFOption {
	return func(c *HuggingFace) {
		c.apiKey = key
	}
}

// WithModel selects the inference model.
func WithModel(model string) HFOption {
	return func(c *HuggingFace) {
		if model != "" {
			c.model = model
		}
	}
}

// NewHuggingFace creates a Hugging Face inference client.
func NewHuggingFace(httpClient *http.Client, opts ...HFOption) *HuggingFace {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &HuggingFace{
		httpClient: httpClient,
		baseURL:    defaultHFBaseURL,
		model:      DefaultHFModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HuggingFace) Provider() string { return "huggingface" }
func (c *HuggingFace) Model() string    { return c.model }

type hfRequest struct {
	Inputs string `json:"inputs"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

type hfError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

// Generate sends the prompt to the model and returns the first generation.
func (c *HuggingFace) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(hfRequest{Inputs: prompt})
	if err != nil {
		return "", fmt.Errorf("encoding inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/models/"+c.model, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling inference api: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", c.errorFromResponse(ctx, resp)
	}

	var generations []hfGeneration
	if err := json.NewDecoder(resp.Body).Decode(&generations); err != nil {
		return "", fmt.Errorf("decoding inference response: %w", err)
	}
	for _, g := range generations {
		if text := strings.TrimSpace(g.GeneratedText); text != "" {
			return text, nil
		}
	}
	return "", ErrEmptyResponse
}

func (c *HuggingFace) errorFromResponse(ctx context.Context, resp *http.Response) *UpstreamError {
	var payload hfError
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(raw, &payload); err != nil {
		payload.Error = strings.TrimSpace(string(raw))
	}

	kind, cause := classifyStatus(resp.StatusCode)

	applog.LogWarn(ctx, "inference api request failed",
		zap.Int("status", resp.StatusCode),
		zap.String("model", c.model),
		zap.String("kind", string(kind)),
		zap.Float64("estimatedTime", payload.EstimatedTime),
	)

	return &UpstreamError{
		Kind:       kind,
		Status:     resp.StatusCode,
		RetryAfter: strings.TrimSpace(resp.Header.Get("Retry-After")),
		Message:    payload.Error,
		cause:      cause,
	}
}

// Compile-time interface check
var _ Generator = (*HuggingFace)(nil)
