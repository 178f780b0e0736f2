package api_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reasonchat/backend/internal/api"
	app_errors "reasonchat/backend/internal/errors"
	"reasonchat/backend/internal/interfaces/mocks"
	"reasonchat/backend/internal/model"
	"reasonchat/backend/internal/service"
)

func addChiURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// streams replaces the service call with one that emits chunks and closes ch.
func streams(chunks ...model.StreamResponse) func(mock.Arguments) {
	return func(args mock.Arguments) {
		ch := args.Get(len(args) - 1).(chan<- model.StreamResponse)
		for _, c := range chunks {
			ch <- c
		}
		close(ch)
	}
}

func setupChatHandler(t *testing.T) (*api.ChatHandler, *mocks.MockChatService) {
	mockSvc := mocks.NewMockChatService(t)
	return api.NewChatHandler(mockSvc, mocks.NewMockHistoryService(t), time.Minute), mockSvc
}

func setupSessionChatHandler(t *testing.T) (*api.ChatHandler, *mocks.MockChatService, *mocks.MockHistoryService) {
	mockSvc := mocks.NewMockChatService(t)
	mockHistory := mocks.NewMockHistoryService(t)
	return api.NewChatHandler(mockSvc, mockHistory, time.Minute), mockSvc, mockHistory
}

func TestChatHandler_HandleChat(t *testing.T) {
	t.Run("Success - streams plain text", func(t *testing.T) {
		handler, mockSvc := setupChatHandler(t)
		mockSvc.On("StreamChat", mock.Anything, mock.MatchedBy(func(r *service.ChatRequest) bool {
			return len(r.Messages) == 1 && r.ReasoningLevel == model.ReasoningDeep
		}), mock.Anything).Run(streams(
			model.StreamResponse{Content: "Hello"},
			model.StreamResponse{Content: ", world"},
			model.StreamResponse{Done: true, Model: "gpt-4o"},
		)).Once()

		body := `{"messages":[{"role":"user","content":"hi"}],"reasoningLevel":"deep"}`
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
		rr := httptest.NewRecorder()

		handler.HandleChat(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Equal(t, "Hello, world", rr.Body.String())
	})

	t.Run("Failure - upstream unavailable before content", func(t *testing.T) {
		handler, mockSvc := setupChatHandler(t)
		mockSvc.On("StreamChat", mock.Anything, mock.Anything, mock.Anything).Run(streams(
			model.StreamResponse{Error: "The language model is currently unavailable"},
		)).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`))
		rr := httptest.NewRecorder()

		handler.HandleChat(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Contains(t, rr.Body.String(), "currently unavailable")
	})

	t.Run("Failure - error after content goes into the body", func(t *testing.T) {
		handler, mockSvc := setupChatHandler(t)
		mockSvc.On("StreamChat", mock.Anything, mock.Anything, mock.Anything).Run(streams(
			model.StreamResponse{Content: "Partial"},
			model.StreamResponse{Error: "The response stream was interrupted"},
		)).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`))
		rr := httptest.NewRecorder()

		handler.HandleChat(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, strings.HasPrefix(rr.Body.String(), "Partial"))
		assert.Contains(t, rr.Body.String(), "[error] The response stream was interrupted")
	})

	t.Run("Failure - empty message list", func(t *testing.T) {
		handler, _ := setupChatHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages":[]}`))
		rr := httptest.NewRecorder()

		handler.HandleChat(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - invalid reasoning level", func(t *testing.T) {
		handler, _ := setupChatHandler(t)
		body := `{"messages":[{"role":"user","content":"hi"}],"reasoningLevel":"extreme"}`
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
		rr := httptest.NewRecorder()

		handler.HandleChat(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "ReasoningLevel")
	})

	t.Run("Failure - invalid JSON", func(t *testing.T) {
		handler, _ := setupChatHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages":`))
		rr := httptest.NewRecorder()

		handler.HandleChat(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestChatHandler_HandleSessionChat(t *testing.T) {
	t.Run("Success - streams SSE chunks", func(t *testing.T) {
		handler, mockSvc, mockHistory := setupSessionChatHandler(t)
		mockHistory.On("GetSession", mock.Anything, "session-1").Return(&model.Session{ID: "session-1"}, nil).Once()
		mockSvc.On("SendMessage", mock.Anything, "session-1", mock.MatchedBy(func(r *service.SendMessageRequest) bool {
			return r.Content == "hello"
		}), mock.Anything).Run(streams(
			model.StreamResponse{Content: "Hi"},
			model.StreamResponse{Done: true, MessageID: "msg-1", Model: "gpt-4o"},
		)).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/session-1/chat", strings.NewReader(`{"content":"hello"}`))
		req = addChiURLParams(req, map[string]string{"sessionID": "session-1"})
		rr := httptest.NewRecorder()

		handler.HandleSessionChat(rr, req)

		assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
		body := rr.Body.String()
		assert.Contains(t, body, `data: {"content":"Hi","done":false}`)
		assert.Contains(t, body, `"message_id":"msg-1"`)
	})

	t.Run("Failure - unknown session is a 404", func(t *testing.T) {
		handler, _, mockHistory := setupSessionChatHandler(t)
		mockHistory.On("GetSession", mock.Anything, "missing").Return(nil, fmt.Errorf("session missing: %w", app_errors.ErrNotFound)).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/missing/chat", strings.NewReader(`{"content":"hello"}`))
		req = addChiURLParams(req, map[string]string{"sessionID": "missing"})
		rr := httptest.NewRecorder()

		handler.HandleSessionChat(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.NotContains(t, rr.Body.String(), "event: error")
	})

	t.Run("Failure - service error becomes an error event", func(t *testing.T) {
		handler, mockSvc, mockHistory := setupSessionChatHandler(t)
		mockHistory.On("GetSession", mock.Anything, "session-1").Return(&model.Session{ID: "session-1"}, nil).Once()
		mockSvc.On("SendMessage", mock.Anything, "session-1", mock.Anything, mock.Anything).Run(streams(
			model.StreamResponse{Error: "Failed to get response from model"},
		)).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/session-1/chat", strings.NewReader(`{"content":"hello"}`))
		req = addChiURLParams(req, map[string]string{"sessionID": "session-1"})
		rr := httptest.NewRecorder()

		handler.HandleSessionChat(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "event: error\ndata: {\"error\":\"Failed to get response from model\"}")
	})

	t.Run("Failure - missing content", func(t *testing.T) {
		handler, _, _ := setupSessionChatHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/session-1/chat", strings.NewReader(`{}`))
		req = addChiURLParams(req, map[string]string{"sessionID": "session-1"})
		rr := httptest.NewRecorder()

		handler.HandleSessionChat(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
