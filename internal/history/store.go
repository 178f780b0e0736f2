// Package history owns the chat-history state: the ordered session list
// (newest first) and the active session id. Every mutation is written through
// to a repository.StateRepository as a single namespaced JSON blob.
package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	app_errors "reasonchat/backend/internal/errors"
	"reasonchat/backend/internal/model"
	"reasonchat/backend/internal/repository"
)

const (
	DefaultNamespace    = "chat-history-storage"
	DefaultMaxPersisted = 50
	DefaultModel        = "gpt-5-mini"
	ensuredTitle        = "New Chat"
)

// Options configures a Store. Zero values fall back to the defaults above.
type Options struct {
	Namespace    string
	MaxPersisted int
	DefaultModel string
	Now          func() time.Time
}

type Store struct {
	repo repository.StateRepository
	opts Options

	mu        sync.RWMutex
	sessions  []model.Session
	currentID *string
}

func NewStore(repo repository.StateRepository, opts Options) *Store {
	if opts.Namespace == "" {
		opts.Namespace = DefaultNamespace
	}
	if opts.MaxPersisted <= 0 {
		opts.MaxPersisted = DefaultMaxPersisted
	}
	if opts.DefaultModel == "" {
		opts.DefaultModel = DefaultModel
	}
	if opts.Now == nil {
		// UTC drops the monotonic reading so timestamps survive a JSON round trip.
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Store{repo: repo, opts: opts, sessions: []model.Session{}}
}

// Load hydrates the store from the repository. A missing blob means an empty
// history; a corrupt one is logged and discarded.
func (s *Store) Load(ctx context.Context) error {
	blob, err := s.repo.Load(ctx, s.opts.Namespace)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("could not load history: %w", err)
	}

	state, err := decodeState(blob)
	if err != nil {
		slog.Warn("Discarding unreadable persisted history", "namespace", s.opts.Namespace, "error", err)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = state.Sessions
	s.currentID = state.CurrentSessionID
	slog.Info("Loaded chat history", "namespace", s.opts.Namespace, "sessions", len(s.sessions))
	return nil
}

// commit persists the candidate state and, only if that succeeds, makes it
// the live state. The caller must hold s.mu.
func (s *Store) commit(ctx context.Context, sessions []model.Session, currentID *string) error {
	blob, err := encodeState(sessions, currentID, s.opts.MaxPersisted)
	if err != nil {
		return fmt.Errorf("%w: could not encode history: %v", app_errors.ErrInternal, err)
	}
	if err := s.repo.Save(ctx, s.opts.Namespace, blob); err != nil {
		return fmt.Errorf("could not persist history: %w", err)
	}
	s.sessions = sessions
	s.currentID = currentID
	return nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return i
		}
	}
	return -1
}

// copySessions returns a shallow copy of the session slice so a candidate
// state can be edited without touching the live one.
func (s *Store) copySessions() []model.Session {
	out := make([]model.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, app_errors.ErrNotFound)
}

func newSessionID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("session-%d-%s", now.UnixMilli(), suffix)
}

// defaultTitleLayout formats the local date of an untitled session.
const defaultTitleLayout = "1/2/2006"

// IsDefaultTitle reports whether title is one the store assigns on its own,
// either "New Chat" or "Chat <M/D/YYYY>".
func IsDefaultTitle(title string) bool {
	if title == ensuredTitle {
		return true
	}
	date, ok := strings.CutPrefix(title, "Chat ")
	if !ok {
		return false
	}
	_, err := time.Parse(defaultTitleLayout, date)
	return err == nil
}

// CreateSession prepends a new empty session and makes it current. An empty
// title becomes "Chat <M/D/YYYY>" in local time.
func (s *Store) CreateSession(ctx context.Context, title string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(ctx, title)
}

func (s *Store) createLocked(ctx context.Context, title string) (*model.Session, error) {
	now := s.opts.Now()
	if strings.TrimSpace(title) == "" {
		title = "Chat " + now.Local().Format(defaultTitleLayout)
	}
	session := model.Session{
		ID:        newSessionID(now),
		Title:     title,
		Messages:  []model.Message{},
		Model:     s.opts.DefaultModel,
		CreatedAt: now,
		UpdatedAt: now,
	}

	sessions := append([]model.Session{session}, s.sessions...)
	id := session.ID
	if err := s.commit(ctx, sessions, &id); err != nil {
		return nil, err
	}
	slog.Info("Created session", "session_id", session.ID, "title", session.Title)
	out := session.Clone()
	return &out, nil
}

// EnsureSession returns the current session, creating or selecting one when
// needed: no sessions creates "New Chat", no current id selects the first
// session, and a stale current id falls back to the first session.
func (s *Store) EnsureSession(ctx context.Context) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) == 0 {
		return s.createLocked(ctx, ensuredTitle)
	}

	if s.currentID == nil {
		id := s.sessions[0].ID
		if err := s.commit(ctx, s.sessions, &id); err != nil {
			return nil, err
		}
		out := s.sessions[0].Clone()
		return &out, nil
	}

	if i := s.indexOf(*s.currentID); i >= 0 {
		out := s.sessions[i].Clone()
		return &out, nil
	}
	out := s.sessions[0].Clone()
	return &out, nil
}

// DeleteSession removes a session and clears the current id if it pointed at it.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return notFound("session", id)
	}

	sessions := make([]model.Session, 0, len(s.sessions)-1)
	sessions = append(sessions, s.sessions[:i]...)
	sessions = append(sessions, s.sessions[i+1:]...)

	currentID := s.currentID
	if currentID != nil && *currentID == id {
		currentID = nil
	}
	if err := s.commit(ctx, sessions, currentID); err != nil {
		return err
	}
	slog.Info("Deleted session", "session_id", id)
	return nil
}

// UpdateSession applies the non-nil fields of update and bumps UpdatedAt.
func (s *Store) UpdateSession(ctx context.Context, id string, update model.SessionUpdate) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, notFound("session", id)
	}

	session := s.sessions[i].Clone()
	if update.Title != nil {
		session.Title = *update.Title
	}
	if update.Model != nil {
		session.Model = *update.Model
	}
	if update.ReasoningLevel != nil {
		lvl := *update.ReasoningLevel
		session.ReasoningLevel = &lvl
	}
	session.UpdatedAt = s.opts.Now()

	sessions := s.copySessions()
	sessions[i] = session
	if err := s.commit(ctx, sessions, s.currentID); err != nil {
		return nil, err
	}
	out := session.Clone()
	return &out, nil
}

// SetCurrentSession marks id as the active session.
func (s *Store) SetCurrentSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return notFound("session", id)
	}
	return s.commit(ctx, s.sessions, &id)
}

// CurrentSession returns the active session or ErrNotFound when none is set.
func (s *Store) CurrentSession(ctx context.Context) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentID == nil {
		return nil, fmt.Errorf("current session: %w", app_errors.ErrNotFound)
	}
	i := s.indexOf(*s.currentID)
	if i < 0 {
		return nil, notFound("session", *s.currentID)
	}
	out := s.sessions[i].Clone()
	return &out, nil
}

func (s *Store) GetSession(ctx context.Context, id string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, notFound("session", id)
	}
	out := s.sessions[i].Clone()
	return &out, nil
}

// ListSessions returns every session, newest first.
func (s *Store) ListSessions(ctx context.Context) ([]model.Session, error) {
	return s.Search(ctx, "")
}

// Search returns the sessions whose title or any message content contains
// term, ignoring case. An empty term matches everything.
func (s *Store) Search(ctx context.Context, term string) ([]model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(term)
	out := make([]model.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		if needle == "" || matches(session, needle) {
			out = append(out, session.Clone())
		}
	}
	return out, nil
}

func matches(session model.Session, needle string) bool {
	if strings.Contains(strings.ToLower(session.Title), needle) {
		return true
	}
	for _, m := range session.Messages {
		if strings.Contains(strings.ToLower(m.Content), needle) {
			return true
		}
	}
	return false
}

// AddMessage appends message to a session. A missing ID or timestamp is
// filled in; the stored message is returned.
func (s *Store) AddMessage(ctx context.Context, sessionID string, message model.Message) (*model.Message, error) {
	switch message.Role {
	case model.RoleUser, model.RoleAssistant, model.RoleSystem:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", app_errors.ErrValidation, message.Role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(sessionID)
	if i < 0 {
		return nil, notFound("session", sessionID)
	}

	now := s.opts.Now()
	if message.ID == "" {
		message.ID = uuid.NewString()
	} else {
		for _, existing := range s.sessions[i].Messages {
			if existing.ID == message.ID {
				return nil, fmt.Errorf("%w: message %s already exists in session %s", app_errors.ErrConflict, message.ID, sessionID)
			}
		}
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = now
	}
	stored := message.Clone()

	session := s.sessions[i].Clone()
	session.Messages = append(session.Messages, stored)
	session.UpdatedAt = now

	sessions := s.copySessions()
	sessions[i] = session
	if err := s.commit(ctx, sessions, s.currentID); err != nil {
		return nil, err
	}
	out := stored.Clone()
	return &out, nil
}

// UpdateMessage applies the non-nil fields of update to one message in place
// and bumps the session's UpdatedAt.
func (s *Store) UpdateMessage(ctx context.Context, sessionID, messageID string, update model.MessageUpdate) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(sessionID)
	if i < 0 {
		return nil, notFound("session", sessionID)
	}

	session := s.sessions[i].Clone()
	j := -1
	for k := range session.Messages {
		if session.Messages[k].ID == messageID {
			j = k
			break
		}
	}
	if j < 0 {
		return nil, notFound("message", messageID)
	}

	msg := &session.Messages[j]
	if update.Content != nil {
		msg.Content = *update.Content
	}
	if update.Reasoning != nil {
		msg.Reasoning = *update.Reasoning
	}
	if update.Sources != nil {
		msg.Sources = model.Message{Sources: *update.Sources}.Clone().Sources
	}
	if update.Model != nil {
		msg.Model = *update.Model
	}
	session.UpdatedAt = s.opts.Now()

	sessions := s.copySessions()
	sessions[i] = session
	if err := s.commit(ctx, sessions, s.currentID); err != nil {
		return nil, err
	}
	out := msg.Clone()
	return &out, nil
}

// ClearHistory drops every session and the current id and deletes the
// persisted blob.
func (s *Store) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, s.opts.Namespace); err != nil {
		return fmt.Errorf("could not clear history: %w", err)
	}
	s.sessions = []model.Session{}
	s.currentID = nil
	slog.Info("Cleared chat history")
	return nil
}
