package domain

import (
	"errors"
)

var (
	// ErrRoomNotFound is the one user-recoverable error: joining a room
	// whose id was never created. It surfaces as a roomError event.
	ErrRoomNotFound = errors.New("room not found")

	// ErrUnknownConnection means the connection id does not resolve to a
	// live transport connection. Relay paths swallow it (best-effort
	// delivery), lifecycle paths use it to detect double cleanup.
	ErrUnknownConnection = errors.New("unknown connection")
)
