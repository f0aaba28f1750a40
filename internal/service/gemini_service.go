package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prepwise/interview-api/internal/config"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiService is the Google GenAI backed provider. It also serves as the
// Embedder for topic retrieval.
type GeminiService struct {
	client         *genai.Client
	model          string
	embeddingModel string
	log            *zap.Logger
}

var (
	_ Provider = (*GeminiService)(nil)
	_ Embedder = (*GeminiService)(nil)
)

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, log *zap.Logger) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiService{
		client:         client,
		model:          cfg.Model,
		embeddingModel: cfg.EmbeddingModel,
		log:            log,
	}, nil
}

func (s *GeminiService) Name() string {
	return "gemini"
}

func (s *GeminiService) Generate(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, error) {
	genConfig := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(float32(temperature)),
		MaxOutputTokens:   int32(maxTokens),
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), genConfig)
	if err != nil {
		return "", s.classify(err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", &ProviderError{
			Provider: s.Name(),
			Kind:     KindUnknown,
			Message:  "completion contained no content",
		}
	}
	return text, nil
}

func (s *GeminiService) Embed(ctx context.Context, text string) ([]float32, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}

	content := []*genai.Content{genai.NewContentFromText(trimmed, genai.RoleUser)}
	result, err := s.client.Models.EmbedContent(ctx, s.embeddingModel, content, nil)
	if err != nil {
		return nil, s.classify(err)
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return result.Embeddings[0].Values, nil
}

// classify maps genai API errors onto the shared provider error kinds so the
// retry policy treats both backends identically.
func (s *GeminiService) classify(err error) error {
	pErr := &ProviderError{
		Provider: s.Name(),
		Kind:     KindUnknown,
		Message:  "generate content failed",
		Err:      err,
	}

	// genai returns APIError by value, so the target must be a value too.
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		pErr.Status = apiErr.Code
		pErr.Kind = classifyStatus(apiErr.Code)
	}
	return pErr
}
