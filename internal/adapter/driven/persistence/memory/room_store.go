package memory

import (
	"sync"
	"time"

	"github.com/voxmeet/signal/internal/core/domain"
)

// RoomStore is the in-memory room table. Rooms are deactivated when
// empty, never deleted, so a later join with the same id re-opens them.
type RoomStore struct {
	mu    sync.Mutex
	rooms map[domain.RoomID]*domain.Room
	now   func() time.Time
}

func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[domain.RoomID]*domain.Room),
		now:   time.Now,
	}
}

func (s *RoomStore) Create() domain.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	// uuid collisions are negligible, but overwriting an existing room
	// would be silent data loss, so retry anyway.
	var id domain.RoomID
	for {
		id = domain.NewRoomID()
		if _, exists := s.rooms[id]; !exists {
			break
		}
	}

	room := &domain.Room{
		ID:        id,
		CreatedAt: s.now(),
		Active:    true,
	}
	s.rooms[id] = room
	return s.snapshot(room)
}

func (s *RoomStore) Get(id domain.RoomID) (domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return s.snapshot(room), nil
}

func (s *RoomStore) Join(id domain.RoomID, connID domain.ConnectionID, displayName string) ([]domain.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	if !room.Has(connID) {
		room.Participants = append(room.Participants, domain.Participant{
			ConnectionID: connID,
			DisplayName:  displayName,
			JoinedAt:     s.now(),
		})
	}
	room.Active = true

	return s.participants(room), nil
}

func (s *RoomStore) Leave(id domain.RoomID, connID domain.ConnectionID) ([]domain.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	for i, p := range room.Participants {
		if p.ConnectionID == connID {
			room.Participants = append(room.Participants[:i], room.Participants[i+1:]...)
			break
		}
	}
	if len(room.Participants) == 0 {
		room.Active = false
	}

	return s.participants(room), nil
}

// snapshot copies the room so callers never hold a reference into the
// store's mutable state.
func (s *RoomStore) snapshot(room *domain.Room) domain.Room {
	out := *room
	out.Participants = s.participants(room)
	return out
}

func (s *RoomStore) participants(room *domain.Room) []domain.Participant {
	out := make([]domain.Participant, len(room.Participants))
	copy(out, room.Participants)
	return out
}
