package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxmeet/signal/internal/adapter/driven/gateway/ws"
	memory "github.com/voxmeet/signal/internal/adapter/driven/persistence/memory"
	"github.com/voxmeet/signal/internal/config"
	"github.com/voxmeet/signal/internal/core/service"
)

func newTestHandler() *Handler {
	cfg := config.Config{
		Port:             ":0",
		PublicBaseURL:    "http://meet.test",
		AllowedOrigin:    "*",
		ChatHistoryLimit: 10,
	}

	registry := memory.NewConnectionRegistry()
	rooms := memory.NewRoomStore()
	messages := memory.NewMessageRepository(cfg.ChatHistoryLimit)
	hub := ws.NewHub()

	chat := service.NewChatService(messages, rooms, registry, hub, cfg.ChatHistoryLimit)
	session := service.NewSessionService(registry, rooms, hub, chat)
	relay := service.NewRelayService(registry, hub)

	return NewHandler(session, relay, chat, rooms, hub, cfg)
}

func TestCreateRoom(t *testing.T) {
	h := newTestHandler()
	srv := httptest.NewServer(h.NewRouter())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/rooms", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created createRoomResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.RoomID)
	assert.Equal(t, "http://meet.test/meeting/"+created.RoomID, created.ShareableLink)
}

func TestGetRoomInfo(t *testing.T) {
	h := newTestHandler()
	srv := httptest.NewServer(h.NewRouter())
	defer srv.Close()

	room := h.Rooms.Create()

	resp, err := http.Get(srv.URL + "/rooms/" + room.ID.String())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info roomInfoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, room.ID.String(), info.RoomID)
	assert.Zero(t, info.ParticipantCount)
	assert.True(t, info.Active)
}

func TestGetRoomInfoNotFound(t *testing.T) {
	h := newTestHandler()
	srv := httptest.NewServer(h.NewRouter())
	defer srv.Close()

	for _, path := range []string{
		"/rooms/8b37a9b6-64ad-44b1-a6a2-1538b63b8c2f",
		"/rooms/garbage",
	} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler()
	srv := httptest.NewServer(h.NewRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
