package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"reasonchat/backend/internal/interfaces"
	"reasonchat/backend/internal/model"
	"reasonchat/backend/internal/service"
)

type ChatHandler struct {
	service interfaces.ChatService
	history interfaces.HistoryService
	timeout time.Duration
}

// NewChatHandler builds the streaming chat handlers. history is used to reject
// unknown sessions before a stream is opened. A zero timeout leaves streams
// bounded only by the client connection.
func NewChatHandler(svc interfaces.ChatService, history interfaces.HistoryService, timeout time.Duration) *ChatHandler {
	return &ChatHandler{service: svc, history: history, timeout: timeout}
}

func (h *ChatHandler) streamContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.timeout > 0 {
		return context.WithTimeout(r.Context(), h.timeout)
	}
	return context.WithCancel(r.Context())
}

// HandleChat godoc
// @Summary      Stream a chat reply
// @Description  Streams the model reply to a list of messages as plain text.
// @Tags         Chat
// @Accept       json
// @Produce      plain
// @Param        chatRequest  body      service.ChatRequest  true  "Messages and reasoning options"
// @Success      200          {string}  string               "Streamed reply text"
// @Failure      400          {object}  ErrorResponse
// @Failure      429          {object}  ErrorResponse
// @Failure      502          {object}  ErrorResponse
// @Router       /chat [post]
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req service.ChatRequest
	if err := decodeRequest(w, r, &req, false); err != nil {
		respondWithError(w, err)
		return
	}

	ctx, cancel := h.streamContext(r)
	defer cancel()

	streamChan := make(chan model.StreamResponse)
	go h.service.StreamChat(ctx, &req, streamChan)

	started := false
	for chunk := range streamChan {
		if chunk.Error != "" {
			if !started {
				respondWithJSON(w, http.StatusBadGateway, ErrorResponse{Error: chunk.Error})
				cancel()
				break
			}
			// Headers are already sent, so the failure goes into the body.
			slog.Warn("Chat stream failed after content was sent", "error", chunk.Error)
			_ = writeTextChunk(w, "\n\n[error] "+chunk.Error)
			cancel()
			break
		}
		if chunk.Done {
			slog.Debug("Chat stream finished", "model", chunk.Model)
			continue
		}
		if !started {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("Cache-Control", "no-cache")
			w.Header().Set("X-Accel-Buffering", "no")
			w.WriteHeader(http.StatusOK)
			started = true
		}
		if err := writeTextChunk(w, chunk.Content); err != nil {
			slog.Warn("Client disconnected during chat stream", "error", err)
			cancel()
			break
		}
	}

	// Drain so the producer can close the channel after a cancel.
	for range streamChan {
	}

	if !started && ctx.Err() == nil {
		// An empty reply still gets a successful, empty body.
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
	}
}

// HandleSessionChat godoc
// @Summary      Send a message in a session
// @Description  Saves the user message, streams the reply as server-sent events and saves the assistant message.
// @Tags         Sessions
// @Accept       json
// @Produce      text/event-stream
// @Param        sessionID       path  string                      true  "Session ID"
// @Param        messageRequest  body  service.SendMessageRequest  true  "Message content and reasoning options"
// @Success      200             {object}  model.StreamResponse
// @Failure      400             {object}  ErrorResponse
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/chat [post]
func (h *ChatHandler) HandleSessionChat(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req service.SendMessageRequest
	if err := decodeRequest(w, r, &req, false); err != nil {
		respondWithError(w, err)
		return
	}
	if _, err := h.history.GetSession(r.Context(), sessionID); err != nil {
		respondWithError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	ctx, cancel := h.streamContext(r)
	defer cancel()

	streamChan := make(chan model.StreamResponse)
	go h.service.SendMessage(ctx, sessionID, &req, streamChan)

	for chunk := range streamChan {
		if chunk.Error != "" {
			sendStreamError(w, chunk.Error)
			cancel()
			break
		}
		if err := writeStreamEvent(w, chunk); err != nil {
			slog.Warn("Client disconnected during session stream", "session_id", sessionID, "error", err)
			cancel()
			break
		}
	}

	for range streamChan {
	}
	slog.Debug("Finished streaming session response", "session_id", sessionID)
}
