package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	app_errors "reasonchat/backend/internal/errors"
	"reasonchat/backend/internal/history"
	"reasonchat/backend/internal/interfaces"
)

// maxImportBytes caps history import uploads.
const maxImportBytes = 32 << 20

type HistoryHandler struct {
	history interfaces.HistoryService
	now     func() time.Time
}

func NewHistoryHandler(history interfaces.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history, now: time.Now}
}

// ImportResponse reports how many sessions an import loaded.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// HandleExport godoc
// @Summary      Export history
// @Description  Downloads every session as a pretty-printed JSON array.
// @Tags         History
// @Produce      json
// @Success      200  {array}   model.Session
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/history/export [get]
func (h *HistoryHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	data, err := h.history.ExportHistory(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	filename := history.ExportFilename(h.now())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("Failed to write history export", "error", err)
	}
}

// HandleImport godoc
// @Summary      Import history
// @Description  Replaces all sessions with an exported JSON array. Invalid input leaves history unchanged.
// @Tags         History
// @Accept       json
// @Produce      json
// @Param        history  body      []model.Session  true  "Exported sessions"
// @Success      200      {object}  ImportResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      413      {object}  ErrorResponse
// @Router       /v1/history/import [post]
func (h *HistoryHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "The import file is too large."})
			return
		}
		respondWithError(w, fmt.Errorf("%w: could not read import body", app_errors.ErrValidation))
		return
	}

	n, err := h.history.ImportHistory(r.Context(), data)
	if err != nil {
		respondWithError(w, err)
		return
	}
	slog.Info("History imported", "sessions", n)
	respondWithJSON(w, http.StatusOK, ImportResponse{Imported: n})
}

// HandleClear godoc
// @Summary      Clear history
// @Description  Deletes every session.
// @Tags         History
// @Success      204
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/history [delete]
func (h *HistoryHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.history.ClearHistory(r.Context()); err != nil {
		respondWithError(w, err)
		return
	}
	slog.Info("History cleared")
	w.WriteHeader(http.StatusNoContent)
}
