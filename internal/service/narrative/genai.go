package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultGenAIModel is the Gemini model used when none is configured.
const DefaultGenAIModel = "gemini-2.5-flash"

// contentGenerator is the subset of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GenAI implements Generator using the Google Gen AI SDK.
type GenAI struct {
	models contentGenerator
	model  string
	config *genai.GenerateContentConfig
}

// NewGenAI creates a Gemini-backed generator.
func NewGenAI(ctx context.Context, apiKey, model string) (*GenAI, error) {
	if apiKey == "" {
		return nil, errors.New("genai api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return newGenAI(client.Models, model), nil
}

func newGenAI(models contentGenerator, model string) *GenAI {
	if model == "" {
		model = DefaultGenAIModel
	}
	return &GenAI{
		models: models,
		model:  model,
		config: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](0.7),
			MaxOutputTokens: 512,
		},
	}
}

func (g *GenAI) Provider() string { return "genai" }
func (g *GenAI) Model() string    { return g.model }

// Generate sends prompt as a single user turn.
func (g *GenAI) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, g.config)
	if err != nil {
		return "", genaiUpstreamError(err)
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func genaiUpstreamError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("calling genai: %w", err)
	}
	kind, cause := classifyStatus(apiErr.Code)
	return &UpstreamError{
		Kind:    kind,
		Status:  apiErr.Code,
		Message: apiErr.Message,
		cause:   cause,
	}
}

// Compile-time interface check
var _ Generator = (*GenAI)(nil)
