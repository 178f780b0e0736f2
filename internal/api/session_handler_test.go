package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reasonchat/backend/internal/api"
	app_errors "reasonchat/backend/internal/errors"
	"reasonchat/backend/internal/interfaces/mocks"
	"reasonchat/backend/internal/model"
)

func setupSessionHandler(t *testing.T) (*api.SessionHandler, *mocks.MockHistoryService) {
	mockHistory := mocks.NewMockHistoryService(t)
	return api.NewSessionHandler(mockHistory), mockHistory
}

func testSession(id, title string) *model.Session {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &model.Session{ID: id, Title: title, Messages: []model.Message{}, Model: "gpt-5-mini", CreatedAt: now, UpdatedAt: now}
}

func TestSessionHandler_HandleListSessions(t *testing.T) {
	t.Run("Success - search term is passed through", func(t *testing.T) {
		handler, mockHistory := setupSessionHandler(t)
		mockHistory.On("Search", mock.Anything, "golang").Return([]model.Session{*testSession("s1", "Golang tips")}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions?q=+golang+", nil)
		rr := httptest.NewRecorder()

		handler.HandleListSessions(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp []model.Session
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "Golang tips", resp[0].Title)
	})

	t.Run("Success - no term lists all", func(t *testing.T) {
		handler, mockHistory := setupSessionHandler(t)
		mockHistory.On("Search", mock.Anything, "").Return([]model.Session{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
		rr := httptest.NewRecorder()

		handler.HandleListSessions(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})
}

func TestSessionHandler_HandleCreateSession(t *testing.T) {
	t.Run("Success - with title", func(t *testing.T) {
		handler, mockHistory := setupSessionHandler(t)
		mockHistory.On("CreateSession", mock.Anything, "Trip planning").Return(testSession("s1", "Trip planning"), nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(`{"title":" Trip planning "}`))
		rr := httptest.NewRecorder()

		handler.HandleCreateSession(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"title":"Trip planning"`)
	})

	t.Run("Success - empty body", func(t *testing.T) {
		handler, mockHistory := setupSessionHandler(t)
		mockHistory.On("CreateSession", mock.Anything, "").Return(testSession("s1", "Chat 3/1/2025"), nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", http.NoBody)
		rr := httptest.NewRecorder()

		handler.HandleCreateSession(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Failure - title too long", func(t *testing.T) {
		handler, _ := setupSessionHandler(t)
		body := fmt.Sprintf(`{"title":%q}`, strings.Repeat("x", 201))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(body))
		rr := httptest.NewRecorder()

		handler.HandleCreateSession(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestSessionHandler_CurrentSession(t *testing.T) {
	t.Run("Get - none selected", func(t *testing.T) {
		handler, mockHistory := setupSessionHandler(t)
		mockHistory.On("CurrentSession", mock.Anything).Return(nil, fmt.Errorf("current session: %w", app_errors.ErrNotFound)).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/current", nil)
		rr := httptest.NewRecorder()

		handler.HandleGetCurrentSession(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Set - success", func(t *testing.T) {
		handler, mockHistory := setupSessionHandler(t)
		mockHistory.On("SetCurrentSession", mock.Anything, "s2").Return(nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/current", strings.NewReader(`{"id":"s2"}`))
		rr := httptest.NewRecorder()

		handler.HandleSetCurrentSession(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	})

	t.Run("Set - missing id", func(t *testing.T) {
		handler, _ := setupSessionHandler(t)
		req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/current", strings.NewReader(`{}`))
		rr := httptest.NewRecorder()

		handler.HandleSetCurrentSession(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Ensure - returns session", func(t *testing.T) {
		handler, mockHistory := setupSessionHandler(t)
		mockHistory.On("EnsureSession", mock.Anything).Return(testSession("s1", "New Chat"), nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/ensure", nil)
		rr := httptest.NewRecorder()

		handler.HandleEnsureSession(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"title":"New Chat"`)
	})
}

func TestSessionHandler_SessionByID(t *testing.T) {
	t.Run("Get - not found", func(t *testing.T) {
		handler, mockHistory := setupSessionHandler(t)
		mockHistory.On("GetSession", mock.Anything, "nope").Return(nil, app_errors.ErrNotFound).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/sessions/nope", nil), map[string]string{"sessionID": "nope"})
		rr := httptest.NewRecorder()

		handler.HandleGetSession(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Update - title and level", func(t *testing.T) {
		handler, mockHistory := setupSessionHandler(t)
		updated := testSession("s1", "Renamed")
		mockHistory.On("UpdateSession", mock.Anything, "s1", mock.MatchedBy(func(u model.SessionUpdate) bool {
			return u.Title != nil && *u.Title == "Renamed" && u.ReasoningLevel != nil && *u.ReasoningLevel == model.ReasoningLight && u.Model == nil
		})).Return(updated, nil).Once()

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/s1", strings.NewReader(`{"title":"Renamed","reasoningLevel":"light"}`))
		req = addChiURLParams(req, map[string]string{"sessionID": "s1"})
		rr := httptest.NewRecorder()

		handler.HandleUpdateSession(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Update - invalid level", func(t *testing.T) {
		handler, _ := setupSessionHandler(t)
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/s1", strings.NewReader(`{"reasoningLevel":"max"}`))
		req = addChiURLParams(req, map[string]string{"sessionID": "s1"})
		rr := httptest.NewRecorder()

		handler.HandleUpdateSession(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Delete - success", func(t *testing.T) {
		handler, mockHistory := setupSessionHandler(t)
		mockHistory.On("DeleteSession", mock.Anything, "s1").Return(nil).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/s1", nil), map[string]string{"sessionID": "s1"})
		rr := httptest.NewRecorder()

		handler.HandleDeleteSession(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Delete - not found", func(t *testing.T) {
		handler, mockHistory := setupSessionHandler(t)
		mockHistory.On("DeleteSession", mock.Anything, "s9").Return(fmt.Errorf("session s9: %w", app_errors.ErrNotFound)).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/s9", nil), map[string]string{"sessionID": "s9"})
		rr := httptest.NewRecorder()

		handler.HandleDeleteSession(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestSessionHandler_Messages(t *testing.T) {
	t.Run("Add - success", func(t *testing.T) {
		handler, mockHistory := setupSessionHandler(t)
		saved := &model.Message{ID: "m1", Role: model.RoleAssistant, Content: "Answer", Timestamp: time.Now().UTC()}
		mockHistory.On("AddMessage", mock.Anything, "s1", mock.MatchedBy(func(m model.Message) bool {
			return m.Role == model.RoleAssistant && m.Content == "Answer" && len(m.Sources) == 1 && m.ID == ""
		})).Return(saved, nil).Once()

		body := `{"role":"assistant","content":"Answer","sources":[{"id":"1","title":"MDN","url":"https://developer.mozilla.org"}]}`
		req := addChiURLParams(httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s1/messages", strings.NewReader(body)), map[string]string{"sessionID": "s1"})
		rr := httptest.NewRecorder()

		handler.HandleAddMessage(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"id":"m1"`)
	})

	t.Run("Add - duplicate message id", func(t *testing.T) {
		handler, mockHistory := setupSessionHandler(t)
		mockHistory.On("AddMessage", mock.Anything, "s1", mock.MatchedBy(func(m model.Message) bool {
			return m.ID == "m1"
		})).Return(nil, fmt.Errorf("%w: message m1 already exists", app_errors.ErrConflict)).Once()

		body := `{"id":"m1","role":"user","content":"again"}`
		req := addChiURLParams(httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s1/messages", strings.NewReader(body)), map[string]string{"sessionID": "s1"})
		rr := httptest.NewRecorder()

		handler.HandleAddMessage(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Add - invalid role", func(t *testing.T) {
		handler, _ := setupSessionHandler(t)
		req := addChiURLParams(httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s1/messages", strings.NewReader(`{"role":"robot","content":"x"}`)), map[string]string{"sessionID": "s1"})
		rr := httptest.NewRecorder()

		handler.HandleAddMessage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Add - source without title", func(t *testing.T) {
		handler, _ := setupSessionHandler(t)
		body := `{"role":"assistant","content":"x","sources":[{"id":"1"}]}`
		req := addChiURLParams(httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s1/messages", strings.NewReader(body)), map[string]string{"sessionID": "s1"})
		rr := httptest.NewRecorder()

		handler.HandleAddMessage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Update - content only", func(t *testing.T) {
		handler, mockHistory := setupSessionHandler(t)
		updated := &model.Message{ID: "m1", Role: model.RoleAssistant, Content: "Longer answer"}
		mockHistory.On("UpdateMessage", mock.Anything, "s1", "m1", mock.MatchedBy(func(u model.MessageUpdate) bool {
			return u.Content != nil && *u.Content == "Longer answer" && u.Reasoning == nil && u.Sources == nil
		})).Return(updated, nil).Once()

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/s1/messages/m1", strings.NewReader(`{"content":"Longer answer"}`))
		req = addChiURLParams(req, map[string]string{"sessionID": "s1", "messageID": "m1"})
		rr := httptest.NewRecorder()

		handler.HandleUpdateMessage(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Longer answer")
	})

	t.Run("Update - unknown message", func(t *testing.T) {
		handler, mockHistory := setupSessionHandler(t)
		mockHistory.On("UpdateMessage", mock.Anything, "s1", "m9", mock.Anything).Return(nil, app_errors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/s1/messages/m9", strings.NewReader(`{"content":"x"}`))
		req = addChiURLParams(req, map[string]string{"sessionID": "s1", "messageID": "m9"})
		rr := httptest.NewRecorder()

		handler.HandleUpdateMessage(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
