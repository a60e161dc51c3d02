package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxmeet/signal/internal/core/domain"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	reg := NewConnectionRegistry()

	reg.Register("conn-1", "Alice")

	ident, err := reg.Lookup("conn-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", ident.DisplayName)
	assert.False(t, ident.InRoom())
}

func TestRegistryRegisterOverwrites(t *testing.T) {
	reg := NewConnectionRegistry()

	reg.Register("conn-1", "Alice")
	reg.Register("conn-1", "Alicia")

	ident, err := reg.Lookup("conn-1")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", ident.DisplayName)
	assert.Len(t, reg.Identities(), 1)
}

func TestRegistryRegisterPreservesRoomMembership(t *testing.T) {
	reg := NewConnectionRegistry()
	roomID := domain.NewRoomID()

	reg.Register("conn-1", "Alice")
	reg.AttachRoom("conn-1", roomID)
	reg.Register("conn-1", "Alicia")

	ident, err := reg.Lookup("conn-1")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", ident.DisplayName)
	assert.Equal(t, roomID, ident.RoomID)
}

func TestRegistryLookupUnknown(t *testing.T) {
	reg := NewConnectionRegistry()

	_, err := reg.Lookup("nope")
	assert.ErrorIs(t, err, domain.ErrUnknownConnection)
}

func TestRegistryAttachAndDetachRoom(t *testing.T) {
	reg := NewConnectionRegistry()
	roomID := domain.NewRoomID()

	reg.Register("conn-1", "Alice")
	reg.AttachRoom("conn-1", roomID)

	ident, err := reg.Lookup("conn-1")
	require.NoError(t, err)
	assert.True(t, ident.InRoom())
	assert.Equal(t, roomID, ident.RoomID)

	reg.DetachRoom("conn-1")
	ident, err = reg.Lookup("conn-1")
	require.NoError(t, err)
	assert.False(t, ident.InRoom())
}

func TestRegistryAttachRoomUnknownConnectionIsNoop(t *testing.T) {
	reg := NewConnectionRegistry()

	reg.AttachRoom("nope", domain.NewRoomID())
	assert.Empty(t, reg.Identities())
}

func TestRegistryRemoveReturnsPriorRecord(t *testing.T) {
	reg := NewConnectionRegistry()
	roomID := domain.NewRoomID()

	reg.Register("conn-1", "Alice")
	reg.AttachRoom("conn-1", roomID)

	ident, err := reg.Remove("conn-1")
	require.NoError(t, err)
	assert.Equal(t, roomID, ident.RoomID)

	_, err = reg.Remove("conn-1")
	assert.ErrorIs(t, err, domain.ErrUnknownConnection)
}

func TestRegistryIdentitiesKeepsRegistrationOrder(t *testing.T) {
	reg := NewConnectionRegistry()

	reg.Register("conn-1", "Alice")
	reg.Register("conn-2", "Bob")
	reg.Register("conn-3", "Carol")
	_, err := reg.Remove("conn-2")
	require.NoError(t, err)

	idents := reg.Identities()
	require.Len(t, idents, 2)
	assert.Equal(t, domain.ConnectionID("conn-1"), idents[0].ConnectionID)
	assert.Equal(t, domain.ConnectionID("conn-3"), idents[1].ConnectionID)
}
