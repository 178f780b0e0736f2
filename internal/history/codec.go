package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	app_errors "reasonchat/backend/internal/errors"
	"reasonchat/backend/internal/model"
)

// stateVersion is the version written into the persisted envelope.
const stateVersion = 0

// persistedState is the envelope written to the repository. Its layout
// matches what the browser client keeps in local storage, so a blob can be
// copied between the two.
type persistedState struct {
	State   snapshot `json:"state"`
	Version int      `json:"version"`
}

type snapshot struct {
	Sessions         []model.Session `json:"sessions"`
	CurrentSessionID *string         `json:"currentSessionId"`
}

// encodeState serializes the first limit sessions. Sessions are kept newest
// first, so this keeps the most recent ones.
func encodeState(sessions []model.Session, currentID *string, limit int) ([]byte, error) {
	if len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return json.Marshal(persistedState{
		State:   snapshot{Sessions: sessions, CurrentSessionID: currentID},
		Version: stateVersion,
	})
}

func decodeState(blob []byte) (snapshot, error) {
	var state persistedState
	if err := json.Unmarshal(blob, &state); err != nil {
		return snapshot{}, err
	}
	if state.State.Sessions == nil {
		state.State.Sessions = []model.Session{}
	}
	return state.State, nil
}

// ExportFilename names an export taken at t, for example
// chat-history-2025-08-07T12:00:00.000Z.json.
func ExportFilename(t time.Time) string {
	return "chat-history-" + t.UTC().Format("2006-01-02T15:04:05.000Z07:00") + ".json"
}

// ExportHistory returns every in-memory session as indented JSON.
func (s *Store) ExportHistory(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := json.MarshalIndent(s.sessions, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("could not export history: %w", err)
	}
	return data, nil
}

// ImportHistory replaces all sessions with the ones in data and clears the
// current id. data is either an exported session array or a persisted
// envelope with a state key. Every session needs a unique, non-empty id. On
// any error the state is left unchanged.
func (s *Store) ImportHistory(ctx context.Context, data []byte) (int, error) {
	sessions, err := parseImport(data)
	if err != nil {
		slog.Error("Failed to import history", "error", err)
		return 0, fmt.Errorf("%w: invalid history data: %v", app_errors.ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, sessions, nil); err != nil {
		return 0, err
	}
	slog.Info("Imported chat history", "sessions", len(sessions))
	return len(sessions), nil
}

func parseImport(data []byte) ([]model.Session, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	var sessions []model.Session
	switch trimmed[0] {
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return nil, err
		}
		for key := range fields {
			if key != "state" && key != "version" {
				return nil, fmt.Errorf("unknown field %q", key)
			}
		}
		raw, ok := fields["state"]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, fmt.Errorf("missing state")
		}
		state, err := decodeState(trimmed)
		if err != nil {
			return nil, err
		}
		sessions = state.Sessions
	case '[':
		if err := json.Unmarshal(trimmed, &sessions); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("expected a session array or a persisted envelope")
	}

	seen := make(map[string]struct{}, len(sessions))
	out := make([]model.Session, len(sessions))
	for i, session := range sessions {
		if session.ID == "" {
			return nil, fmt.Errorf("session %d has no id", i)
		}
		if _, dup := seen[session.ID]; dup {
			return nil, fmt.Errorf("duplicate session id %q", session.ID)
		}
		seen[session.ID] = struct{}{}
		out[i] = session.Clone()
		if out[i].Messages == nil {
			out[i].Messages = []model.Message{}
		}
	}
	return out, nil
}
