// Package captions generates image captions through an OpenAI-compatible
// chat-completions endpoint.
package captions

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"pixelgram/internal/config"
	"pixelgram/internal/observability"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyCaption is returned when the model answers without usable content.
var ErrEmptyCaption = errors.New("no content in the response from the model")

// Captioner produces a caption for PNG image bytes.
type Captioner interface {
	GenerateCaption(ctx context.Context, png []byte) (string, error)
}

// Client wraps the go-openai client pointed at the configured inference
// base URL.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient builds a caption client from configuration.
func NewClient(cfg *config.Config) *Client {
	clientCfg := openai.DefaultConfig(cfg.CaptionAPIKey)
	clientCfg.BaseURL = strings.TrimRight(cfg.CaptionAPIBase, "/")
	return &Client{
		api:   openai.NewClientWithConfig(clientCfg),
		model: cfg.CaptionModel,
	}
}

// GenerateCaption sends the image as a base64 data URI and returns the
// model's caption text.
func (c *Client) GenerateCaption(ctx context.Context, png []byte) (string, error) {
	dataURI := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	tl := observability.GetTraceLayer()
	ctx, span := tl.TraceUpstreamCall(ctx, "captions", "chat_completion")
	defer span.End()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.5,
		MaxTokens:   500,
		TopP:        0.7,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: "Give me a caption for this",
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: dataURI,
						},
					},
				},
			},
		},
	})
	if err != nil {
		span.RecordError(err)
		observability.RecordCaptionRequest(err)
		return "", err
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		observability.RecordCaptionRequest(ErrEmptyCaption)
		return "", ErrEmptyCaption
	}

	observability.RecordCaptionRequest(nil)
	return resp.Choices[0].Message.Content, nil
}
