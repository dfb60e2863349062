package qwen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/adbench/adeval/internal/eval"
	"github.com/adbench/adeval/internal/media"
)

const (
	defaultModel   = "Qwen/Qwen2.5-VL-72B-Instruct"
	framesPerChunk = 8
)

// Client drives a locally served Qwen2.5-VL through its OpenAI-compatible
// endpoint. Chunk video is handed over as evenly sampled frames, the vision
// transport the serving stack accepts.
type Client struct {
	api     *openai.Client
	baseURL string
	model   string
	media   media.Tool
	http    *http.Client
}

func NewClient(baseURL, apiKey, model string, tool media.Tool) *Client {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if model == "" {
		model = defaultModel
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL + "/v1"
	return &Client{
		api:     openai.NewClientWithConfig(cfg),
		baseURL: baseURL,
		model:   model,
		media:   tool,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// EvaluateChunk decodes the chunk into frames and submits them with the
// shared prompt. Memory-pressure failures from the server are marked so the
// caller can release accelerator state before retrying.
func (c *Client) EvaluateChunk(ctx context.Context, videoFile, prompt string) (string, error) {
	frames, err := c.media.ExtractFrames(ctx, videoFile, framesPerChunk)
	if err != nil {
		return "", fmt.Errorf("failed to decode frames from %s: %v", videoFile, err)
	}

	parts := make([]openai.ChatMessagePart, 0, len(frames)+1)
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: prompt,
	})
	for _, frame := range frames {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(frame),
			},
		})
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:         openai.ChatMessageRoleUser,
			MultiContent: parts,
		}},
		MaxTokens:   512,
		Temperature: 0.7,
		TopP:        0.9,
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		if isMemoryError(err) {
			return "", fmt.Errorf("%w: %v", eval.ErrMemoryExhausted, err)
		}
		return "", fmt.Errorf("chat completion error: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// ReleaseMemory asks the serving stack to drop its prefix cache. Best
// effort: a server without the route just returns 404 and inference carries
// on.
func (c *Client) ReleaseMemory(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/reset_prefix_cache", nil)
	if err != nil {
		return
	}
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("Cache release request failed: %v", err)
		return
	}
	resp.Body.Close()
}

func isMemoryError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		msg := strings.ToLower(apiErr.Message)
		return strings.Contains(msg, "out of memory") || strings.Contains(msg, "cuda oom")
	}
	return strings.Contains(strings.ToLower(err.Error()), "out of memory")
}
