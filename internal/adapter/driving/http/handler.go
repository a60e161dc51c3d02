package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/voxmeet/signal/internal/adapter/driven/gateway/ws"
	"github.com/voxmeet/signal/internal/config"
	"github.com/voxmeet/signal/internal/core/port"
	"github.com/voxmeet/signal/internal/core/service"
)

type Handler struct {
	Session *service.SessionService
	Relay   *service.RelayService
	Chat    *service.ChatService
	Rooms   port.RoomStore
	Hub     *ws.Hub
	Cfg     config.Config
}

func NewHandler(session *service.SessionService, relay *service.RelayService, chat *service.ChatService, rooms port.RoomStore, hub *ws.Hub, cfg config.Config) *Handler {
	return &Handler{
		Session: session,
		Relay:   relay,
		Chat:    chat,
		Rooms:   rooms,
		Hub:     hub,
		Cfg:     cfg,
	}
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Post("/rooms", h.CreateRoom)
	r.Get("/rooms/{roomID}", h.GetRoomInfo)
	r.Get("/ws", h.ServeWS)

	fs := http.FileServer(http.Dir("./static"))
	r.Handle("/*", fs)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
