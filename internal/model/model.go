package model

import (
	"time"
)

// Role is the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ReasoningLevel controls how much thinking the model is asked to show.
type ReasoningLevel string

const (
	ReasoningLight  ReasoningLevel = "light"
	ReasoningMedium ReasoningLevel = "medium"
	ReasoningDeep   ReasoningLevel = "deep"
)

// Valid reports whether l is one of the known reasoning levels.
func (l ReasoningLevel) Valid() bool {
	switch l {
	case ReasoningLight, ReasoningMedium, ReasoningDeep:
		return true
	}
	return false
}

// Session is a persisted conversation thread.
type Session struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Messages       []Message       `json:"messages"`
	Model          string          `json:"model"`
	ReasoningLevel *ReasoningLevel `json:"reasoningLevel,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Message is one turn in a session.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Reasoning string    `json:"reasoning,omitempty"`
	Sources   []Source  `json:"sources,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Model     string    `json:"model,omitempty"`
}

// Source is a citation attached to an assistant message.
type Source struct {
	ID        string   `json:"id" validate:"required"`
	Title     string   `json:"title" validate:"required"`
	URL       string   `json:"url,omitempty" validate:"omitempty,url"`
	Snippet   string   `json:"snippet"`
	Relevance *float64 `json:"relevance,omitempty" validate:"omitempty,gte=0,lte=1"` // Informational only.
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	out := s
	if s.ReasoningLevel != nil {
		lvl := *s.ReasoningLevel
		out.ReasoningLevel = &lvl
	}
	if s.Messages != nil {
		out.Messages = make([]Message, len(s.Messages))
		for i, m := range s.Messages {
			out.Messages[i] = m.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the message. An empty source list becomes nil,
// which is how it reads back after a JSON round trip.
func (m Message) Clone() Message {
	out := m
	if len(m.Sources) == 0 {
		out.Sources = nil
	} else {
		out.Sources = make([]Source, len(m.Sources))
		for i, src := range m.Sources {
			if src.Relevance != nil {
				r := *src.Relevance
				src.Relevance = &r
			}
			out.Sources[i] = src
		}
	}
	return out
}

// SessionUpdate carries the session fields to change; nil fields are left alone.
type SessionUpdate struct {
	Title          *string         `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Model          *string         `json:"model,omitempty" validate:"omitempty,min=1"`
	ReasoningLevel *ReasoningLevel `json:"reasoningLevel,omitempty" validate:"omitempty,oneof=light medium deep"`
}

// MessageUpdate carries the message fields to change; nil fields are left alone.
type MessageUpdate struct {
	Content   *string   `json:"content,omitempty"`
	Reasoning *string   `json:"reasoning,omitempty"`
	Sources   *[]Source `json:"sources,omitempty" validate:"omitempty,dive"`
	Model     *string   `json:"model,omitempty"`
}

// StreamResponse is the structure for a single chunk in a streaming response.
type StreamResponse struct {
	Content   string `json:"content"`
	Done      bool   `json:"done"`
	MessageID string `json:"message_id,omitempty"`
	Model     string `json:"model,omitempty"`
	Error     string `json:"error,omitempty"`
}
