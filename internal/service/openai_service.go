package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prepwise/interview-api/internal/config"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// OpenAIService talks to any OpenAI-compatible chat completions endpoint.
type OpenAIService struct {
	client  *resty.Client
	apiKey  string
	baseURL string
	model   string
	log     *zap.Logger
}

var _ Provider = (*OpenAIService)(nil)

func NewOpenAIService(cfg *config.OpenAIConfig, log *zap.Logger) *OpenAIService {
	client := resty.New().
		SetTimeout(90 * time.Second)
	return &OpenAIService{
		client:  client,
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		log:     log,
	}
}

func (s *OpenAIService) Name() string {
	return "openai"
}

func (s *OpenAIService) Generate(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "system", "content": system},
				{"role": "user", "content": prompt},
			},
			"temperature": temperature,
			"max_tokens":  maxTokens,
		}).
		Post(s.baseURL + "/chat/completions")
	if err != nil {
		return "", &ProviderError{
			Provider: s.Name(),
			Kind:     KindUnknown,
			Message:  "completion request failed",
			Err:      err,
		}
	}

	if status := resp.StatusCode(); !resp.IsSuccess() {
		s.log.Warn("completion request rejected",
			zap.Int("status", status),
			zap.String("body", truncate(resp.String(), 512)),
		)
		return "", &ProviderError{
			Provider: s.Name(),
			Kind:     classifyStatus(status),
			Status:   status,
			Message:  "completion request returned status " + resp.Status(),
		}
	}

	content := gjson.GetBytes(resp.Body(), "choices.0.message.content").String()
	if strings.TrimSpace(content) == "" {
		return "", &ProviderError{
			Provider: s.Name(),
			Kind:     KindUnknown,
			Status:   resp.StatusCode(),
			Message:  "completion contained no content",
		}
	}

	return strings.TrimSpace(content), nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
