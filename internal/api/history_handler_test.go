package api_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reasonchat/backend/internal/api"
	app_errors "reasonchat/backend/internal/errors"
	"reasonchat/backend/internal/interfaces/mocks"
)

func setupHistoryHandler(t *testing.T) (*api.HistoryHandler, *mocks.MockHistoryService) {
	mockHistory := mocks.NewMockHistoryService(t)
	return api.NewHistoryHandler(mockHistory), mockHistory
}

func TestHistoryHandler_HandleExport(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockHistory := setupHistoryHandler(t)
		exported := []byte("[\n  {\n    \"id\": \"s1\"\n  }\n]")
		mockHistory.On("ExportHistory", mock.Anything).Return(exported, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/history/export", nil)
		rr := httptest.NewRecorder()

		handler.HandleExport(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.Regexp(t, `^attachment; filename="chat-history-\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z\.json"$`, rr.Header().Get("Content-Disposition"))
		assert.Equal(t, string(exported), rr.Body.String())
	})

	t.Run("Failure", func(t *testing.T) {
		handler, mockHistory := setupHistoryHandler(t)
		mockHistory.On("ExportHistory", mock.Anything).Return(nil, app_errors.ErrInternal).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/history/export", nil)
		rr := httptest.NewRecorder()

		handler.HandleExport(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestHistoryHandler_HandleImport(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockHistory := setupHistoryHandler(t)
		body := `[{"id":"s1","title":"Imported","messages":[]}]`
		mockHistory.On("ImportHistory", mock.Anything, []byte(body)).Return(1, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/history/import", strings.NewReader(body))
		rr := httptest.NewRecorder()

		handler.HandleImport(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"imported":1}`, rr.Body.String())
	})

	t.Run("Failure - invalid file", func(t *testing.T) {
		handler, mockHistory := setupHistoryHandler(t)
		mockHistory.On("ImportHistory", mock.Anything, mock.Anything).
			Return(0, fmt.Errorf("%w: invalid history file", app_errors.ErrValidation)).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/history/import", strings.NewReader(`{not json`))
		rr := httptest.NewRecorder()

		handler.HandleImport(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid history file")
	})
}

func TestHistoryHandler_HandleClear(t *testing.T) {
	handler, mockHistory := setupHistoryHandler(t)
	mockHistory.On("ClearHistory", mock.Anything).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/history", nil)
	rr := httptest.NewRecorder()

	handler.HandleClear(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}
