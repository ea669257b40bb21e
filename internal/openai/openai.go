// Package openai adapts the OpenAI API to the provider interfaces the
// services consume: chat completions for replies, audio transcriptions
// for speech-to-text.
package openai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	ctxpkg "github.com/stupiduntilnot/voxchat/internal/context"
	"github.com/stupiduntilnot/voxchat/internal/model"
)

// Client wraps the OpenAI API for chat completions and audio transcription.
type Client struct {
	api             *goopenai.Client
	chatModel       string
	transcribeModel string
}

// NewClient creates an OpenAI client. baseURL may be empty to use the
// default API endpoint; tests point it at a local fake.
func NewClient(apiKey, baseURL, chatModel, transcribeModel string, timeout time.Duration) *Client {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{
		api:             goopenai.NewClientWithConfig(cfg),
		chatModel:       chatModel,
		transcribeModel: transcribeModel,
	}
}

// ChatCompletion sends a chat completion request and returns a CompletionResponse.
func (c *Client) ChatCompletion(ctx context.Context, messages []ctxpkg.Message) (model.CompletionResponse, error) {
	req := goopenai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    make([]goopenai.ChatCompletionMessage, 0, len(messages)),
		Temperature: 0.2,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, goopenai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return model.CompletionResponse{}, fmt.Errorf("openai chat completion: %w", err)
	}

	result := model.CompletionResponse{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}

	if len(resp.Choices) == 0 {
		result.Content = "(empty model response)"
		return result, nil
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		result.Content = "(empty model response)"
		return result, nil
	}
	result.Content = content
	return result, nil
}

// TranscribeAudio sends audio to the transcriptions endpoint and returns the
// transcribed text. filename carries the extension the API uses to sniff the
// container format.
func (c *Client) TranscribeAudio(ctx context.Context, audio io.Reader, filename string) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    c.transcribeModel,
		Reader:   audio,
		FilePath: filename,
	})
	if err != nil {
		return "", fmt.Errorf("openai transcription: %w", err)
	}
	return resp.Text, nil
}
