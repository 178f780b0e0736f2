package llm

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

// Provider defines the interface for interacting with a hosted language model.
type Provider interface {
	// OpenStream starts a streamed completion. An error here means no output
	// was produced, so the caller may retry with another model.
	OpenStream(ctx context.Context, req *ChatRequest) (TextStream, error)
	Generate(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// TextStream yields text deltas until Recv returns io.EOF.
type TextStream interface {
	Recv() (string, error)
	Close() error
}

type Message struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	Model       string
	System      string
	Messages    []Message
	Temperature float32
}

type ChatResponse struct {
	Model   string
	Content string
}

type ModelInfo struct {
	ID      string `json:"id"`
	OwnedBy string `json:"owned_by"`
	Created int64  `json:"created"`
}

type openAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider builds a provider for the OpenAI API or any compatible
// endpoint when baseURL is set.
func NewOpenAIProvider(apiKey, baseURL string) Provider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &openAIProvider{client: openai.NewClientWithConfig(cfg)}
}

func toOpenAIRequest(req *ChatRequest, stream bool) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		Stream:      stream,
	}
}

func (p *openAIProvider) OpenStream(ctx context.Context, req *ChatRequest) (TextStream, error) {
	stream, err := p.client.CreateChatCompletionStream(ctx, toOpenAIRequest(req, true))
	if err != nil {
		return nil, fmt.Errorf("could not open stream for model %q: %w", req.Model, err)
	}
	return &openAIStream{stream: stream}, nil
}

func (p *openAIProvider) Generate(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	resp, err := p.client.CreateChatCompletion(ctx, toOpenAIRequest(req, false))
	if err != nil {
		return nil, fmt.Errorf("completion failed for model %q: %w", req.Model, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("completion for model %q returned no choices", req.Model)
	}
	return &ChatResponse{Model: resp.Model, Content: resp.Choices[0].Message.Content}, nil
}

func (p *openAIProvider) ListModels(ctx context.Context) ([]ModelInfo, error) {
	list, err := p.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list models: %w", err)
	}
	models := make([]ModelInfo, 0, len(list.Models))
	for _, m := range list.Models {
		models = append(models, ModelInfo{ID: m.ID, OwnedBy: m.OwnedBy, Created: m.CreatedAt})
	}
	return models, nil
}

type openAIStream struct {
	stream *openai.ChatCompletionStream
}

// Recv skips chunks without choices (usage-only chunks, for instance).
func (s *openAIStream) Recv() (string, error) {
	for {
		resp, err := s.stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", io.EOF
			}
			return "", fmt.Errorf("stream receive failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		return resp.Choices[0].Delta.Content, nil
	}
}

func (s *openAIStream) Close() error {
	return s.stream.Close()
}
