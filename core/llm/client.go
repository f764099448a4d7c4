// Package llm implements the Completer interface on top of the OpenAI
// chat completions API. Any OpenAI-compatible endpoint works, including
// a local Ollama server.
package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/brochurepipe/core"
)

// Client talks to one model at one endpoint.
type Client struct {
	client openai.Client
	model  string
	log    zerolog.Logger
}

// New creates a Client. baseURL may be empty to use the default OpenAI
// endpoint.
func New(apiKey, baseURL, model string, log zerolog.Logger) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{
		client: openai.NewClient(opts...),
		model:  model,
		log:    log.With().Str("component", "llm").Str("model", model).Logger(),
	}
}

// Complete runs one system+user exchange and returns the completion text.
func (c *Client) Complete(ctx context.Context, req core.CompletionRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.JSONMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		}
	}

	c.log.Debug().Bool("json_mode", req.JSONMode).Float64("temperature", req.Temperature).Msg("requesting completion")

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
