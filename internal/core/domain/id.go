package domain

import (
	"github.com/google/uuid"
)

// ConnectionID identifies a single live transport connection. It is
// issued by the transport layer when the socket is accepted and is
// never reused for the lifetime of the process.
type ConnectionID string

func NewConnectionID() ConnectionID {
	return ConnectionID(uuid.New().String())
}

func (id ConnectionID) String() string {
	return string(id)
}

// RoomID is a server-generated, high-entropy room identifier. Knowing
// the id is what grants access to the room, so it must not be guessable.
type RoomID uuid.UUID

func NewRoomID() RoomID {
	return RoomID(uuid.New())
}

func ParseRoomID(s string) (RoomID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return RoomID{}, err
	}
	return RoomID(id), nil
}

func (id RoomID) String() string {
	return uuid.UUID(id).String()
}

func (id RoomID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}
