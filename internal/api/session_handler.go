package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"reasonchat/backend/internal/interfaces"
	"reasonchat/backend/internal/model"
)

// SessionHandler exposes the chat-history store over HTTP.
type SessionHandler struct {
	history interfaces.HistoryService
}

func NewSessionHandler(history interfaces.HistoryService) *SessionHandler {
	return &SessionHandler{history: history}
}

// CreateSessionRequest is the body of POST /sessions. An empty title gets a
// dated default.
type CreateSessionRequest struct {
	Title string `json:"title" validate:"omitempty,max=200"`
}

// SetCurrentSessionRequest selects the active session.
type SetCurrentSessionRequest struct {
	ID string `json:"id" validate:"required"`
}

// AddMessageRequest appends a message verbatim. The timestamp is assigned by
// the store, and so is the id unless the client sends one.
type AddMessageRequest struct {
	ID        string         `json:"id,omitempty" validate:"omitempty,max=100"`
	Role      model.Role     `json:"role" validate:"required,oneof=user assistant system"`
	Content   string         `json:"content"`
	Reasoning string         `json:"reasoning,omitempty"`
	Sources   []model.Source `json:"sources,omitempty" validate:"omitempty,dive"`
	Model     string         `json:"model,omitempty"`
}

// HandleListSessions godoc
// @Summary      List sessions
// @Description  Returns all sessions, newest first. With q, only sessions whose title or messages contain it.
// @Tags         Sessions
// @Produce      json
// @Param        q    query     string  false  "Search term"
// @Success      200  {array}   model.Session
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/sessions [get]
func (h *SessionHandler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	sessions, err := h.history.Search(r.Context(), term)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sessions)
}

// HandleCreateSession godoc
// @Summary      Create a session
// @Description  Creates a session, puts it first in the list and makes it current.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionRequest  body      CreateSessionRequest  false  "Optional title"
// @Success      201             {object}  model.Session
// @Failure      400             {object}  ErrorResponse
// @Router       /v1/sessions [post]
func (h *SessionHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeRequest(w, r, &req, true); err != nil {
		respondWithError(w, err)
		return
	}
	session, err := h.history.CreateSession(r.Context(), strings.TrimSpace(req.Title))
	if err != nil {
		respondWithError(w, err)
		return
	}
	slog.Info("Session created", "session_id", session.ID)
	respondWithJSON(w, http.StatusCreated, session)
}

// HandleEnsureSession godoc
// @Summary      Ensure a session exists
// @Description  Returns the current session, the first session, or a newly created "New Chat".
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  model.Session
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/sessions/ensure [post]
func (h *SessionHandler) HandleEnsureSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.history.EnsureSession(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, session)
}

// HandleGetCurrentSession godoc
// @Summary      Get the current session
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  model.Session
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/sessions/current [get]
func (h *SessionHandler) HandleGetCurrentSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.history.CurrentSession(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, session)
}

// HandleSetCurrentSession godoc
// @Summary      Select the current session
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        currentRequest  body      SetCurrentSessionRequest  true  "Session ID"
// @Success      200             {object}  StatusResponse
// @Failure      400             {object}  ErrorResponse
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/sessions/current [put]
func (h *SessionHandler) HandleSetCurrentSession(w http.ResponseWriter, r *http.Request) {
	var req SetCurrentSessionRequest
	if err := decodeRequest(w, r, &req, false); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.history.SetCurrentSession(r.Context(), req.ID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleGetSession godoc
// @Summary      Get a session
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  model.Session
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID} [get]
func (h *SessionHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.history.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, session)
}

// HandleUpdateSession godoc
// @Summary      Update a session
// @Description  Changes the title, model or reasoning level of a session.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID      path      string               true  "Session ID"
// @Param        updateRequest  body      model.SessionUpdate  true  "Fields to change"
// @Success      200            {object}  model.Session
// @Failure      400            {object}  ErrorResponse
// @Failure      404            {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID} [patch]
func (h *SessionHandler) HandleUpdateSession(w http.ResponseWriter, r *http.Request) {
	var update model.SessionUpdate
	if err := decodeRequest(w, r, &update, false); err != nil {
		respondWithError(w, err)
		return
	}
	session, err := h.history.UpdateSession(r.Context(), chi.URLParam(r, "sessionID"), update)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, session)
}

// HandleDeleteSession godoc
// @Summary      Delete a session
// @Description  Removes a session. Deleting the current session leaves no session selected.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID} [delete]
func (h *SessionHandler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.history.DeleteSession(r.Context(), sessionID); err != nil {
		respondWithError(w, err)
		return
	}
	slog.Info("Session deleted", "session_id", sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddMessage godoc
// @Summary      Append a message
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID       path      string             true  "Session ID"
// @Param        messageRequest  body      AddMessageRequest  true  "Message"
// @Success      201             {object}  model.Message
// @Failure      400             {object}  ErrorResponse
// @Failure      404             {object}  ErrorResponse
// @Failure      409             {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/messages [post]
func (h *SessionHandler) HandleAddMessage(w http.ResponseWriter, r *http.Request) {
	var req AddMessageRequest
	if err := decodeRequest(w, r, &req, false); err != nil {
		respondWithError(w, err)
		return
	}
	message, err := h.history.AddMessage(r.Context(), chi.URLParam(r, "sessionID"), model.Message{
		ID:        req.ID,
		Role:      req.Role,
		Content:   req.Content,
		Reasoning: req.Reasoning,
		Sources:   req.Sources,
		Model:     req.Model,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, message)
}

// HandleUpdateMessage godoc
// @Summary      Update a message
// @Description  Replaces the given fields of a message, for example while a reply is streaming in.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID      path      string               true  "Session ID"
// @Param        messageID      path      string               true  "Message ID"
// @Param        updateRequest  body      model.MessageUpdate  true  "Fields to change"
// @Success      200            {object}  model.Message
// @Failure      400            {object}  ErrorResponse
// @Failure      404            {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/messages/{messageID} [patch]
func (h *SessionHandler) HandleUpdateMessage(w http.ResponseWriter, r *http.Request) {
	var update model.MessageUpdate
	if err := decodeRequest(w, r, &update, false); err != nil {
		respondWithError(w, err)
		return
	}
	message, err := h.history.UpdateMessage(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "messageID"), update)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, message)
}
