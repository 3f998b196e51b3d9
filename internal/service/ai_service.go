package service

import (
	"bytes"
	"career_advisor_backend/internal/config"
	"career_advisor_backend/internal/util"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// TextGenerator 外部文本生成能力。调用方必须自行兜底，任何错误都不应向上传播
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var errEmptyGeneration = errors.New("AI returned empty response")

// NewTextGenerator 根据配置创建生成器；未配置 provider 或 api key 时返回 nil，匹配走纯规则路径
func NewTextGenerator(ctx context.Context, cfg config.AIConfig) (TextGenerator, error) {
	if cfg.Provider == "" || cfg.APIKey == "" {
		return nil, nil
	}

	switch cfg.Provider {
	case util.AIProviderGemini:
		g, err := NewGeminiService(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return g, nil
	case util.AIProviderOpenAI:
		return NewAIService(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.Provider)
	}
}

// GeminiService 通过 genai SDK 调用 Gemini
type GeminiService struct {
	client *genai.Client
	model  string
}

func NewGeminiService(ctx context.Context, cfg config.AIConfig) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiService{client: client, model: cfg.Model}, nil
}

func (s *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errEmptyGeneration
	}
	return text, nil
}

// AIService OpenAI 兼容的 chat/completions 接口
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *AIService) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: "You are a career counsellor for students. Answer with JSON only."},
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(s.config.BaseURL, "/")+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}

	if len(result.Choices) > 0 {
		text := strings.TrimSpace(result.Choices[0].Message.Content)
		if text == "" {
			return "", errEmptyGeneration
		}
		return text, nil
	}

	return "", fmt.Errorf("AI returned no choices")
}
