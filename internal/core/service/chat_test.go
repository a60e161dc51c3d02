package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxmeet/signal/internal/adapter/driven/persistence/memory"
	"github.com/voxmeet/signal/internal/core/domain"
)

type chatFixture struct {
	registry *memory.ConnectionRegistry
	rooms    *memory.RoomStore
	gateway  *fakeGateway
	chat     *ChatService
}

func newChatFixture(historyLimit int) *chatFixture {
	registry := memory.NewConnectionRegistry()
	rooms := memory.NewRoomStore()
	gateway := newFakeGateway()
	return &chatFixture{
		registry: registry,
		rooms:    rooms,
		gateway:  gateway,
		chat:     NewChatService(memory.NewMessageRepository(historyLimit), rooms, registry, gateway, historyLimit),
	}
}

func (f *chatFixture) joinRoom(t *testing.T, roomID domain.RoomID, connID domain.ConnectionID, name string) {
	t.Helper()
	f.registry.Register(connID, name)
	_, err := f.rooms.Join(roomID, connID, name)
	require.NoError(t, err)
	f.registry.AttachRoom(connID, roomID)
}

func TestChatSendReachesWholeRoom(t *testing.T) {
	f := newChatFixture(10)
	ctx := context.Background()
	room := f.rooms.Create()

	f.joinRoom(t, room.ID, "conn-a", "Alice")
	f.joinRoom(t, room.ID, "conn-b", "Bob")

	require.NoError(t, f.chat.Send(ctx, "conn-a", room.ID, "hello"))

	for _, id := range []domain.ConnectionID{"conn-a", "conn-b"} {
		events := f.gateway.eventsFor(id, domain.EventChatMessage)
		require.Len(t, events, 1, "recipient %s", id)
		data := events[0].Data.(domain.ChatMessageData)
		assert.Equal(t, "conn-a", data.From)
		assert.Equal(t, "Alice", data.FromDisplayName)
		assert.Equal(t, "hello", data.Text)
	}
}

func TestChatSendFromNonMemberIsDropped(t *testing.T) {
	f := newChatFixture(10)
	ctx := context.Background()
	room := f.rooms.Create()

	f.joinRoom(t, room.ID, "conn-a", "Alice")
	f.registry.Register("conn-x", "Eve")

	require.NoError(t, f.chat.Send(ctx, "conn-x", room.ID, "let me in"))

	assert.Empty(t, f.gateway.eventsFor("conn-a", domain.EventChatMessage))
}

func TestChatSendEmptyTextFails(t *testing.T) {
	f := newChatFixture(10)
	room := f.rooms.Create()
	f.joinRoom(t, room.ID, "conn-a", "Alice")

	err := f.chat.Send(context.Background(), "conn-a", room.ID, "")
	assert.Error(t, err)
}

func TestChatHistoryIsBounded(t *testing.T) {
	f := newChatFixture(2)
	ctx := context.Background()
	room := f.rooms.Create()
	f.joinRoom(t, room.ID, "conn-a", "Alice")

	for _, text := range []string{"one", "two", "three"} {
		require.NoError(t, f.chat.Send(ctx, "conn-a", room.ID, text))
	}

	history, err := f.chat.History(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, "two", history.Messages[0].Text)
	assert.Equal(t, "three", history.Messages[1].Text)
}
