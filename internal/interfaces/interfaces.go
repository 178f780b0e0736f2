package interfaces

import (
	"context"

	"reasonchat/backend/internal/llm"
	"reasonchat/backend/internal/model"
	"reasonchat/backend/internal/service"
)

// The API layer depends on these contracts rather than on the concrete
// services, so handlers can be tested against mocks.

// ChatService streams model replies.
type ChatService interface {
	StreamChat(ctx context.Context, req *service.ChatRequest, ch chan<- model.StreamResponse)
	SendMessage(ctx context.Context, sessionID string, req *service.SendMessageRequest, ch chan<- model.StreamResponse)
}

// ModelService lists hosted models.
type ModelService interface {
	List(ctx context.Context) ([]llm.ModelInfo, error)
}

// HistoryService is the chat-history store; *history.Store implements it.
type HistoryService interface {
	CreateSession(ctx context.Context, title string) (*model.Session, error)
	EnsureSession(ctx context.Context) (*model.Session, error)
	DeleteSession(ctx context.Context, id string) error
	UpdateSession(ctx context.Context, id string, update model.SessionUpdate) (*model.Session, error)
	SetCurrentSession(ctx context.Context, id string) error
	CurrentSession(ctx context.Context) (*model.Session, error)
	GetSession(ctx context.Context, id string) (*model.Session, error)
	ListSessions(ctx context.Context) ([]model.Session, error)
	Search(ctx context.Context, term string) ([]model.Session, error)
	AddMessage(ctx context.Context, sessionID string, message model.Message) (*model.Message, error)
	UpdateMessage(ctx context.Context, sessionID, messageID string, update model.MessageUpdate) (*model.Message, error)
	ClearHistory(ctx context.Context) error
	ExportHistory(ctx context.Context) ([]byte, error)
	ImportHistory(ctx context.Context, data []byte) (int, error)
}
