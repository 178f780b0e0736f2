package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	app_errors "reasonchat/backend/internal/errors"
	"reasonchat/backend/internal/history"
	"reasonchat/backend/internal/llm"
	"reasonchat/backend/internal/model"
	"reasonchat/backend/internal/sources"
)

// ModelSettings decides which hosted model serves a request.
type ModelSettings struct {
	// UseReasoningModel selects BaseModel (with a reasoning suffix) as the
	// primary model. When false every request goes straight to FallbackModel.
	UseReasoningModel bool
	BaseModel         string
	FallbackModel     string
	// AutoTitle renames a session after its first exchange.
	AutoTitle bool
}

// ChatOptions are the reasoning toggles a client may send with any request.
type ChatOptions struct {
	UseReasoning   *bool                `json:"useReasoning,omitempty"`
	ReasoningLevel model.ReasoningLevel `json:"reasoningLevel,omitempty" validate:"omitempty,oneof=light medium deep"`
}

func (o ChatOptions) reasoning() bool {
	return o.UseReasoning == nil || *o.UseReasoning
}

func (o ChatOptions) level() model.ReasoningLevel {
	if o.ReasoningLevel == "" {
		return model.ReasoningMedium
	}
	return o.ReasoningLevel
}

// ChatRequest is the body of the stateless chat endpoint.
type ChatRequest struct {
	Messages []llm.Message `json:"messages" validate:"required,min=1,dive"`
	ChatOptions
}

// SendMessageRequest is the body of the session chat endpoint.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
	ChatOptions
}

type ChatService struct {
	history  *history.Store
	llm      llm.Provider
	settings ModelSettings
	now      func() time.Time
}

func NewChatService(store *history.Store, provider llm.Provider, settings ModelSettings) *ChatService {
	return &ChatService{
		history:  store,
		llm:      provider,
		settings: settings,
		now:      time.Now,
	}
}

// ResolveModel returns the primary model name for the given options.
func (s *ChatService) ResolveModel(opts ChatOptions) string {
	if !s.settings.UseReasoningModel {
		return s.settings.FallbackModel
	}
	if opts.reasoning() {
		return fmt.Sprintf("%s-%s-reasoning", s.settings.BaseModel, opts.level())
	}
	return s.settings.BaseModel
}

func temperature(level model.ReasoningLevel) float32 {
	if level == model.ReasoningDeep {
		return 0.3
	}
	return 0.7
}

const showReasoning = "Please show your reasoning process clearly before providing the final answer."

func (s *ChatService) systemPrompt(opts ChatOptions) string {
	persona := fmt.Sprintf("simulating %s capabilities", s.settings.BaseModel)
	if s.settings.UseReasoningModel {
		persona = "powered by " + s.settings.BaseModel
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a helpful assistant %s with %s reasoning capabilities.\n", persona, opts.level())
	sb.WriteString("When reasoning is enabled, you will think through problems step-by-step before providing answers.\n")
	if opts.reasoning() {
		sb.WriteString(showReasoning + "\n")
	}
	fmt.Fprintf(&sb, "Current date: %s.", s.now().Format("January 2006"))
	return sb.String()
}

func (s *ChatService) fallbackPrompt(opts ChatOptions) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a helpful assistant simulating %s capabilities with %s reasoning.\n", s.settings.BaseModel, opts.level())
	if opts.reasoning() {
		sb.WriteString(showReasoning + "\n")
	}
	fmt.Fprintf(&sb, "Current date: %s.", s.now().Format("January 2006"))
	return sb.String()
}

// openStream opens a stream on the primary model and, if that fails, retries
// once on the fallback model with the fallback prompt. It returns the model
// that is actually streaming.
func (s *ChatService) openStream(ctx context.Context, messages []llm.Message, opts ChatOptions) (llm.TextStream, string, error) {
	primary := s.ResolveModel(opts)
	stream, err := s.llm.OpenStream(ctx, &llm.ChatRequest{
		Model:       primary,
		System:      s.systemPrompt(opts),
		Messages:    messages,
		Temperature: temperature(opts.level()),
	})
	if err == nil {
		return stream, primary, nil
	}

	slog.Warn("Primary model failed, falling back", "model", primary, "fallback", s.settings.FallbackModel, "error", err)
	stream, fbErr := s.llm.OpenStream(ctx, &llm.ChatRequest{
		Model:       s.settings.FallbackModel,
		System:      s.fallbackPrompt(opts),
		Messages:    messages,
		Temperature: temperature(opts.level()),
	})
	if fbErr != nil {
		return nil, "", fmt.Errorf("%w: %v; fallback: %v", app_errors.ErrUpstream, err, fbErr)
	}
	return stream, s.settings.FallbackModel, nil
}

// send delivers resp unless the consumer has gone away.
func send(ctx context.Context, ch chan<- model.StreamResponse, resp model.StreamResponse) bool {
	select {
	case ch <- resp:
		return true
	case <-ctx.Done():
		return false
	}
}

// pump forwards deltas from stream to ch and returns the full text.
func pump(ctx context.Context, stream llm.TextStream, ch chan<- model.StreamResponse) (string, error) {
	defer func() {
		if err := stream.Close(); err != nil {
			slog.Debug("Failed to close model stream", "error", err)
		}
	}()

	var full strings.Builder
	for {
		delta, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return full.String(), nil
		}
		if err != nil {
			return full.String(), err
		}
		if delta == "" {
			continue
		}
		full.WriteString(delta)
		if !send(ctx, ch, model.StreamResponse{Content: delta}) {
			return full.String(), ctx.Err()
		}
	}
}

// StreamChat streams a reply to a stateless message list. ch is closed when
// the reply ends; the last chunk is either Done or carries an Error.
func (s *ChatService) StreamChat(ctx context.Context, req *ChatRequest, ch chan<- model.StreamResponse) {
	defer close(ch)

	stream, modelName, err := s.openStream(ctx, req.Messages, req.ChatOptions)
	if err != nil {
		slog.Error("Could not start chat stream", "error", err)
		send(ctx, ch, model.StreamResponse{Error: "The language model is currently unavailable"})
		return
	}

	if _, err := pump(ctx, stream, ch); err != nil {
		slog.Warn("Chat stream ended with error", "model", modelName, "error", err)
		send(ctx, ch, model.StreamResponse{Error: "The response stream was interrupted"})
		return
	}
	send(ctx, ch, model.StreamResponse{Done: true, Model: modelName})
}

// SendMessage appends a user message to a session, streams the reply, and
// stores the assistant message with its reasoning note and sources.
func (s *ChatService) SendMessage(ctx context.Context, sessionID string, req *SendMessageRequest, ch chan<- model.StreamResponse) {
	defer close(ch)

	session, err := s.history.GetSession(ctx, sessionID)
	if err != nil {
		slog.Warn("Could not find session for message", "session_id", sessionID, "error", err)
		send(ctx, ch, model.StreamResponse{Error: "Could not find session"})
		return
	}
	isFirstExchange := len(session.Messages) == 0

	opts := req.ChatOptions
	if req.ReasoningLevel != "" && (session.ReasoningLevel == nil || *session.ReasoningLevel != req.ReasoningLevel) {
		lvl := req.ReasoningLevel
		if _, err := s.history.UpdateSession(ctx, sessionID, model.SessionUpdate{ReasoningLevel: &lvl}); err != nil {
			slog.Warn("Could not record reasoning level", "session_id", sessionID, "error", err)
		}
	} else if req.ReasoningLevel == "" && session.ReasoningLevel != nil {
		opts.ReasoningLevel = *session.ReasoningLevel
	}

	userMessage, err := s.history.AddMessage(ctx, sessionID, model.Message{Role: model.RoleUser, Content: req.Content})
	if err != nil {
		slog.Error("Could not save user message", "session_id", sessionID, "error", err)
		send(ctx, ch, model.StreamResponse{Error: "Could not save message"})
		return
	}
	if isFirstExchange && history.IsDefaultTitle(session.Title) {
		s.titleFromInput(ctx, sessionID, req.Content)
	}

	llmMessages := make([]llm.Message, 0, len(session.Messages)+1)
	for _, m := range session.Messages {
		llmMessages = append(llmMessages, llm.Message{Role: string(m.Role), Content: m.Content})
	}
	llmMessages = append(llmMessages, llm.Message{Role: string(model.RoleUser), Content: userMessage.Content})

	stream, modelName, err := s.openStream(ctx, llmMessages, opts)
	if err != nil {
		slog.Error("Could not start session chat stream", "session_id", sessionID, "error", err)
		send(ctx, ch, model.StreamResponse{Error: "The language model is currently unavailable"})
		return
	}

	content, err := pump(ctx, stream, ch)
	if err != nil {
		slog.Warn("Session chat stream ended with error", "session_id", sessionID, "model", modelName, "error", err)
		send(ctx, ch, model.StreamResponse{Error: "The response stream was interrupted"})
		return
	}

	assistant := model.Message{
		Role:    model.RoleAssistant,
		Content: content,
		Sources: sources.ForQuery(req.Content),
		Model:   modelName,
	}
	if opts.reasoning() {
		assistant.Reasoning = fmt.Sprintf("[%s reasoning] Analyzing the query step by step...", opts.level())
	}
	saved, err := s.history.AddMessage(ctx, sessionID, assistant)
	if err != nil {
		slog.Error("CRITICAL: Failed to save assistant message", "session_id", sessionID, "error", err)
		send(ctx, ch, model.StreamResponse{Error: "Could not save response"})
		return
	}
	slog.Info("Saved assistant message", "session_id", sessionID, "message_id", saved.ID, "model", modelName)

	send(ctx, ch, model.StreamResponse{Done: true, MessageID: saved.ID, Model: modelName})

	if isFirstExchange && s.settings.AutoTitle {
		go s.generateTitle(context.Background(), sessionID, userMessage.Content, content)
	}
}

// titleFromInput names an untitled session after the first 50 characters of
// its opening message.
func (s *ChatService) titleFromInput(ctx context.Context, sessionID, content string) {
	title := truncate(strings.TrimSpace(content), 50)
	if title == "" {
		return
	}
	if _, err := s.history.UpdateSession(ctx, sessionID, model.SessionUpdate{Title: &title}); err != nil {
		slog.Warn("Could not title session from its first message", "session_id", sessionID, "error", err)
	}
}

// generateTitle asks the fallback model for a short title after the first
// exchange of a session.
func (s *ChatService) generateTitle(ctx context.Context, sessionID, userQuery, assistantResponse string) {
	req := &llm.ChatRequest{
		Model:  s.settings.FallbackModel,
		System: "You are an expert at creating short, concise titles for conversations. Respond with only the title, and nothing else.",
		Messages: []llm.Message{{
			Role: string(model.RoleUser),
			Content: fmt.Sprintf("Based on the following conversation, what would be a good title?\n\n---\nUser: %s\n\nAssistant: %s\n---",
				truncate(userQuery, 150),
				truncate(assistantResponse, 200),
			),
		}},
		Temperature: 0.3,
	}
	resp, err := s.llm.Generate(ctx, req)
	if err != nil {
		slog.Warn("Failed to generate title", "session_id", sessionID, "error", err)
		return
	}

	title := strings.Trim(strings.TrimSpace(resp.Content), `"'`)
	if title == "" {
		slog.Debug("Generated title was empty after cleaning", "session_id", sessionID)
		return
	}
	title = truncate(title, 100)
	if _, err := s.history.UpdateSession(ctx, sessionID, model.SessionUpdate{Title: &title}); err != nil {
		slog.Warn("Failed to update session title", "session_id", sessionID, "error", err)
		return
	}
	slog.Info("Updated session title", "session_id", sessionID, "title", title)
}

// truncate shortens a string to a specified number of runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
