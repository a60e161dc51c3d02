package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/voxmeet/signal/internal/core/domain"
)

type createRoomResponse struct {
	RoomID        string `json:"roomId"`
	ShareableLink string `json:"shareableLink"`
}

type roomInfoResponse struct {
	RoomID           string    `json:"roomId"`
	CreatedAt        time.Time `json:"createdAt"`
	ParticipantCount int       `json:"participantCount"`
	Active           bool      `json:"active"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// CreateRoom mints a new meeting room. Creation has no join side
// effects: the caller gets back the id and a link to hand out.
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	room := h.Rooms.Create()
	log.Info().Str("room_id", room.ID.String()).Msg("Room created")

	writeJSON(w, http.StatusCreated, createRoomResponse{
		RoomID:        room.ID.String(),
		ShareableLink: h.Cfg.PublicBaseURL + "/meeting/" + room.ID.String(),
	})
}

func (h *Handler) GetRoomInfo(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseRoomID(chi.URLParam(r, "roomID"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Room not found"})
		return
	}

	room, err := h.Rooms.Get(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Room not found"})
		return
	}

	writeJSON(w, http.StatusOK, roomInfoResponse{
		RoomID:           room.ID.String(),
		CreatedAt:        room.CreatedAt,
		ParticipantCount: len(room.Participants),
		Active:           room.Active,
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "Server is running"})
}
