package core

import "context"

// MessagesRepository persists conversation turns per session.
type MessagesRepository interface {
	AddMessage(ctx context.Context, sessionID string, msg Message) error
	GetMessages(ctx context.Context, sessionID string, limit int) ([]Message, error)
	// TrimSession drops everything but the newest keep turns (FIFO eviction).
	TrimSession(ctx context.Context, sessionID string, keep int) error
	CountMessages(ctx context.Context, sessionID string) (int, error)
}
