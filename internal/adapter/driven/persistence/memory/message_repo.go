package memory

import (
	"context"
	"sync"

	"github.com/voxmeet/signal/internal/core/domain"
)

// MessageRepository keeps a bounded per-room ring of chat messages for
// replay to late joiners. Nothing survives the process.
type MessageRepository struct {
	mu       sync.Mutex
	byRoom   map[domain.RoomID][]domain.ChatMessage
	capacity int
}

func NewMessageRepository(capacity int) *MessageRepository {
	if capacity <= 0 {
		capacity = 100
	}
	return &MessageRepository{
		byRoom:   make(map[domain.RoomID][]domain.ChatMessage),
		capacity: capacity,
	}
}

func (r *MessageRepository) Save(ctx context.Context, msg domain.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs := append(r.byRoom[msg.RoomID], msg)
	if len(msgs) > r.capacity {
		msgs = msgs[len(msgs)-r.capacity:]
	}
	r.byRoom[msg.RoomID] = msgs
	return nil
}

func (r *MessageRepository) Recent(ctx context.Context, roomID domain.RoomID, limit int) ([]domain.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs := r.byRoom[roomID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]domain.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}
