package port

import (
	"context"

	"github.com/voxmeet/signal/internal/core/domain"
)

type MessageRepository interface {
	Save(ctx context.Context, msg domain.ChatMessage) error

	// Recent returns up to limit most recent messages for a room,
	// oldest first.
	Recent(ctx context.Context, roomID domain.RoomID, limit int) ([]domain.ChatMessage, error)
}
