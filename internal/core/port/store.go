package port

import "github.com/voxmeet/signal/internal/core/domain"

// RoomStore owns room lifecycle. All operations on a single room are
// serialized by the implementation.
type RoomStore interface {
	// Create generates a fresh room with a high-entropy id that is
	// guaranteed not to collide with an existing one.
	Create() domain.Room

	Get(id domain.RoomID) (domain.Room, error)

	// Join appends the participant if not already present (a duplicate
	// join from the same connection is a no-op) and reactivates the
	// room. Returns the participant list after the join.
	Join(id domain.RoomID, connID domain.ConnectionID, displayName string) ([]domain.Participant, error)

	// Leave removes the participant and deactivates the room when it
	// becomes empty, atomically. Leaving a room one is not in is a
	// no-op. Returns the remaining participants.
	Leave(id domain.RoomID, connID domain.ConnectionID) ([]domain.Participant, error)
}
