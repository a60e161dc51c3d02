package port

import "github.com/voxmeet/signal/internal/core/domain"

// ConnectionRegistry maps live connections to identity records. It is
// the single owner of those records; nothing else mutates them.
type ConnectionRegistry interface {
	// Register inserts or overwrites the record for a connection.
	Register(id domain.ConnectionID, displayName string)

	// AttachRoom sets room membership on the record. Unknown
	// connections are a no-op.
	AttachRoom(id domain.ConnectionID, roomID domain.RoomID)

	// DetachRoom clears room membership. Unknown connections are a
	// no-op.
	DetachRoom(id domain.ConnectionID)

	Lookup(id domain.ConnectionID) (domain.Identity, error)

	// Remove deletes the record and returns what it was, so disconnect
	// handling knows which room to clean up.
	Remove(id domain.ConnectionID) (domain.Identity, error)

	// Identities returns a snapshot of every known identity, in
	// registration order. Used for the global roster broadcast.
	Identities() []domain.Identity
}
