package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/ademposhka4/ResumeTailorPlatform/internal/types"
)

// Request is one structured exchange with the generation collaborator. The
// payload is marshaled to JSON and appended to the instructions; Grounding,
// when set, is an extra directive (e.g. asking the model to consult a URL)
// prepended to the payload.
type Request struct {
	Instructions    string
	Payload         any
	Temperature     float64
	MaxOutputTokens int
	Grounding       string
	Tier            ModelTier
}

// Response carries the raw response text plus the per-exchange accounting
// the pipeline accumulates.
type Response struct {
	Text  string
	RunID string
	Usage types.TokenUsage
}

// Client is an abstraction over LLM providers.
type Client interface {
	// GenerateJSON performs one synchronous exchange and returns the raw
	// (fence-stripped) response text expected to be a JSON object.
	GenerateJSON(ctx context.Context, req Request) (*Response, error)
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a new LLM client based on configuration.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return NewGeminiClient(ctx, config, apiKey)
	}
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Message: "API key is required"}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &ConfigurationError{Message: "failed to create Gemini client", Cause: err}
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateJSON performs one structured exchange with Gemini.
func (c *GeminiClient) GenerateJSON(ctx context.Context, req Request) (*Response, error) {
	modelName := c.config.GetModel(req.Tier)
	if modelName == "" {
		return nil, &ConfigurationError{Message: fmt.Sprintf("no model configured for tier %s", req.Tier)}
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(float32(req.Temperature))
	if req.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxOutputTokens))
	}
	model.ResponseMIMEType = "application/json"

	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, &RequestError{Message: "failed to encode payload", Cause: err}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, &RequestError{Message: "generate content", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	return &Response{
		Text:  CleanJSONBlock(text),
		RunID: uuid.NewString(),
		Usage: extractUsage(resp),
	}, nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// buildPrompt assembles instructions, the optional grounding directive, and
// the JSON payload into one prompt.
func buildPrompt(req Request) (string, error) {
	var b strings.Builder
	b.WriteString(req.Instructions)
	if req.Grounding != "" {
		b.WriteString("\n\n")
		b.WriteString(req.Grounding)
	}
	if req.Payload != nil {
		encoded, err := json.MarshalIndent(req.Payload, "", "  ")
		if err != nil {
			return "", err
		}
		b.WriteString("\n\nReturn response in JSON format:\n\n")
		b.Write(encoded)
	}
	return b.String(), nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &EmptyOutputError{Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &EmptyOutputError{Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &EmptyOutputError{Message: "no text parts in response"}
	}

	joined := strings.Join(parts, "")
	if strings.TrimSpace(joined) == "" {
		return "", &EmptyOutputError{Message: "blank response text"}
	}
	return joined, nil
}

func extractUsage(resp *genai.GenerateContentResponse) types.TokenUsage {
	if resp.UsageMetadata == nil {
		return types.TokenUsage{}
	}
	usage := types.TokenUsage{
		PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
		CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}
	return usage
}
