package memory

import (
	"sync"

	"github.com/voxmeet/signal/internal/core/domain"
)

// ConnectionRegistry is the in-memory identity table. Process restart
// loses it, which is fine: the connections are gone too.
type ConnectionRegistry struct {
	mu    sync.RWMutex
	conns map[domain.ConnectionID]domain.Identity
	order []domain.ConnectionID
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{
		conns: make(map[domain.ConnectionID]domain.Identity),
	}
}

func (r *ConnectionRegistry) Register(id domain.ConnectionID, displayName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ident, ok := r.conns[id]
	if !ok {
		r.order = append(r.order, id)
		ident = domain.Identity{ConnectionID: id}
	}
	// Re-registering updates the display name only. Room membership is
	// owned by the join/leave transitions and must survive a
	// re-announce, or disconnect cleanup loses track of the room.
	ident.DisplayName = displayName
	r.conns[id] = ident
}

func (r *ConnectionRegistry) AttachRoom(id domain.ConnectionID, roomID domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ident, ok := r.conns[id]
	if !ok {
		return
	}
	ident.RoomID = roomID
	r.conns[id] = ident
}

func (r *ConnectionRegistry) DetachRoom(id domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ident, ok := r.conns[id]
	if !ok {
		return
	}
	ident.RoomID = domain.RoomID{}
	r.conns[id] = ident
}

func (r *ConnectionRegistry) Lookup(id domain.ConnectionID) (domain.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ident, ok := r.conns[id]
	if !ok {
		return domain.Identity{}, domain.ErrUnknownConnection
	}
	return ident, nil
}

func (r *ConnectionRegistry) Remove(id domain.ConnectionID) (domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ident, ok := r.conns[id]
	if !ok {
		return domain.Identity{}, domain.ErrUnknownConnection
	}
	delete(r.conns, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return ident, nil
}

func (r *ConnectionRegistry) Identities() []domain.Identity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Identity, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.conns[id])
	}
	return out
}
