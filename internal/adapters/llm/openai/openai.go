// Package openai adapts the official-API-compatible OpenAI client to the
// provider port. Works against api.openai.com or any compatible endpoint
// via a custom base URL.
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"locmate/internal/ports"
)

type Client struct {
	Model  string
	client *openai.Client
}

func New(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Client{Model: model, client: openai.NewClientWithConfig(cfg)}
}

func (c *Client) Translate(ctx context.Context, req ports.TranslateRequest) (ports.TranslateResult, error) {
	model := req.Model
	if model == "" {
		model = c.Model
	}
	system := fmt.Sprintf(
		"You are a video game localization translator. Translate the user text from %s to %s. "+
			"Tokens like [[GL0]] are protected placeholders: copy them unchanged. "+
			"Respond with only the translation, nothing else.",
		req.SourceLang, req.TargetLang)
	user := req.Text
	if req.Context != "" {
		user = fmt.Sprintf("Context: %s\n\nText: %s", req.Context, req.Text)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: float32(req.Temperature),
	})
	if err != nil {
		return ports.TranslateResult{}, fmt.Errorf("openai translate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ports.TranslateResult{}, fmt.Errorf("no choices returned")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	return ports.TranslateResult{Translation: content, Raw: content}, nil
}

func (c *Client) ListModels(ctx context.Context) ([]ports.ModelInfo, error) {
	list, err := c.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("openai list models: %w", err)
	}
	out := make([]ports.ModelInfo, 0, len(list.Models))
	for _, m := range list.Models {
		out = append(out, ports.ModelInfo{Name: m.ID, Description: m.OwnedBy})
	}
	return out, nil
}

func (c *Client) Test(ctx context.Context) error {
	_, err := c.ListModels(ctx)
	return err
}
