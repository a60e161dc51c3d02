package domain

import (
	"time"
)

// Participant is one room member. Participants are unique by
// ConnectionID within a room.
type Participant struct {
	ConnectionID ConnectionID
	DisplayName  string
	JoinedAt     time.Time
}

// Room holds live meeting state. A room is never deleted: when the
// last participant leaves it is deactivated, and a later join with the
// same id re-opens it.
type Room struct {
	ID           RoomID
	CreatedAt    time.Time
	Participants []Participant
	Active       bool
}

func (r Room) Has(id ConnectionID) bool {
	for _, p := range r.Participants {
		if p.ConnectionID == id {
			return true
		}
	}
	return false
}
