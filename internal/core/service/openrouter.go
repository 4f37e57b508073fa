package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smartplates/internal/infrastructure/config"
	"smartplates/internal/infrastructure/monitoring"
	"smartplates/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

const upstreamOpenRouter = "openrouter"

// Message 對話訊息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// OpenRouterService OpenRouter 服務
type OpenRouterService struct {
	config  config.OpenRouterConfig
	client  *resty.Client
	metrics *monitoring.Metrics
}

// NewOpenRouterService 創建 OpenRouter 服務
func NewOpenRouterService(cfg config.OpenRouterConfig, metrics *monitoring.Metrics) *OpenRouterService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("HTTP-Referer", "https://smartplates.app").
		SetHeader("X-Title", "SmartPlates")

	return &OpenRouterService{
		config:  cfg,
		client:  client,
		metrics: metrics,
	}
}

// GenerateResponse 送出單一 user prompt，回傳第一個 choice 的內容
func (s *OpenRouterService) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	if !s.config.Enabled || s.config.APIKey == "" {
		return "", common.ErrServiceUnavailable.Wrap(fmt.Errorf("openrouter is not configured"))
	}

	req := chatRequest{
		Model: s.config.Model,
		Messages: []Message{
			{Role: "system", Content: "You are a recipe assistant. Answer with a single JSON object and nothing else."},
			{Role: "user", Content: strings.TrimSpace(prompt)},
		},
		MaxTokens:   s.config.MaxTokens,
		Temperature: 0.7,
	}

	start := time.Now()
	content, err := s.send(ctx, req)
	duration := time.Since(start)

	common.LogUpstreamCall(upstreamOpenRouter, duration, err)
	s.metrics.RecordUpstream(upstreamOpenRouter, duration, err)
	return content, err
}

func (s *OpenRouterService) send(ctx context.Context, req chatRequest) (string, error) {
	var result chatResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&result).
		Post("/chat/completions")
	if err != nil {
		return "", common.ErrAIServiceError.Wrap(fmt.Errorf("failed to send request to OpenRouter: %w", err))
	}

	if resp.IsError() {
		msg := resp.Status()
		if result.Error != nil && result.Error.Message != "" {
			msg = result.Error.Message
		}
		return "", common.ErrAIServiceError.Wrap(fmt.Errorf("OpenRouter API returned %d: %s", resp.StatusCode(), msg))
	}

	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", common.ErrAIServiceError.Wrap(fmt.Errorf("no choices in OpenRouter response"))
	}
	return result.Choices[0].Message.Content, nil
}
