package service

import (
	"context"
	"log"
	"strings"

	"wechat-ai-bot/config"

	"github.com/sashabaranov/go-openai"
)

// AI 降级占位文案：后端无结果不视为可重试错误，直接给用户一个固定答复
const (
	TextFailedResponse  = "AI 挂了"
	ImageFailedResponse = "AI 作画挂了"
)

// OpenAIService AI调用适配器：文本补全 + 作画
type OpenAIService struct {
	cfg    *config.OpenAIConfig
	client *openai.Client
}

// NewOpenAIService 创建AI调用适配器
func NewOpenAIService(cfg *config.OpenAIConfig) *OpenAIService {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &OpenAIService{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// TextCompletion 文本补全
// 低温采样、输出长度受限；出错、超时或空结果统一降级为固定占位文案。
func (s *OpenAIService) TextCompletion(ctx context.Context, prompt string) string {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	resp, err := s.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       s.cfg.Model,
		Prompt:      prompt,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		log.Printf("AI 文本补全失败: %v", err)
		return TextFailedResponse
	}
	if len(resp.Choices) == 0 {
		return TextFailedResponse
	}

	// 补全模型延续 "Q: ...\n A: " 形式的对话时，输出常以换行或 "A: " 开头，剥掉
	text := strings.TrimLeft(resp.Choices[0].Text, "\n")
	text = strings.TrimPrefix(text, "A: ")
	text = strings.TrimSpace(text)
	if text == "" {
		return TextFailedResponse
	}
	return text
}

// ImageGeneration 作画，返回图片 URL
func (s *OpenAIService) ImageGeneration(ctx context.Context, prompt string) string {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	resp, err := s.client.CreateImage(ctx, openai.ImageRequest{
		Prompt: prompt,
		N:      1,
		Size:   s.cfg.ImageSize,
	})
	if err != nil {
		log.Printf("AI 作画失败: %v", err)
		return ImageFailedResponse
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return ImageFailedResponse
	}
	return resp.Data[0].URL
}
