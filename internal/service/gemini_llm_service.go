package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/testforge/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// geminiLLMClient holds an immutable template model; every call derives its
// own copy, so concurrent requests never share mutable state. Each invocation
// gets the same bounded deadline and single retry as the chat-completions
// client.
type geminiLLMClient struct {
	model    *genai.GenerativeModel
	timeout  time.Duration
	generate generateContentFunc
}

type generateContentFunc func(ctx context.Context, model *genai.GenerativeModel, parts ...genai.Part) (*genai.GenerateContentResponse, error)

func callGenerateContent(ctx context.Context, model *genai.GenerativeModel, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	return model.GenerateContent(ctx, parts...)
}

// NewGeminiLLMClient builds an LLMClient backed by Gemini. Selected when
// LLM_PROVIDER=gemini.
func NewGeminiLLMClient(cfg *config.Config) (LLMClient, error) {
	c := &geminiLLMClient{
		timeout:  llmCallTimeout(cfg),
		generate: callGenerateContent,
	}

	if cfg.LLM.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Gemini LLM client will be non-functional.")
		return c, nil
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.LLM.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	modelName := cfg.LLM.Model
	if modelName == "" || strings.HasPrefix(modelName, "gpt") {
		modelName = "gemini-1.5-flash"
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	c.model = model
	return c, nil
}

func (c *geminiLLMClient) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.model == nil {
		return "", fmt.Errorf("%w: gemini client not initialized", ErrGenerationFailed)
	}

	// Work on a copy. The template is shared across requests and must never
	// be written.
	model := *c.model
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			log.Warn().Err(lastErr).Msg("Gemini call failed, retrying once")
		}
		text, err := c.invoke(ctx, &model, userPrompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("%w: %v", ErrGenerationFailed, lastErr)
}

func (c *geminiLLMClient) invoke(ctx context.Context, model *genai.GenerativeModel, userPrompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.generate(callCtx, model, genai.Text(userPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return sb.String(), nil
}
