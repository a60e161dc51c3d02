package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/voxmeet/signal/internal/core/domain"
	"github.com/voxmeet/signal/internal/core/port"
)

// SessionService drives the per-connection lifecycle: announce, join
// room, leave room, disconnect. It is the only writer of room
// membership and keeps the room store and the connection registry
// consistent with each other.
//
// A connection's events arrive sequentially from its read loop, so no
// two lifecycle transitions for the same connection ever run
// concurrently. Different connections interleave freely; the stores
// serialize access underneath.
type SessionService struct {
	registry port.ConnectionRegistry
	rooms    port.RoomStore
	gateway  port.RealTimeGateway
	chat     *ChatService
}

func NewSessionService(registry port.ConnectionRegistry, rooms port.RoomStore, gateway port.RealTimeGateway, chat *ChatService) *SessionService {
	return &SessionService{
		registry: registry,
		rooms:    rooms,
		gateway:  gateway,
		chat:     chat,
	}
}

// Announce attaches a display name to the connection and rebroadcasts
// the global roster to everyone.
func (s *SessionService) Announce(ctx context.Context, connID domain.ConnectionID, displayName string) {
	s.registry.Register(connID, displayName)
	log.Info().Str("connection_id", connID.String()).Str("display_name", displayName).Msg("Connection announced")
	s.broadcastRoster(ctx)
}

// JoinRoom moves the connection into a room. Joining a room that was
// never created is the one recoverable error: the requester gets a
// roomError event and stays out of any room. A join while already in
// another room is an implicit leave of the old room first.
func (s *SessionService) JoinRoom(ctx context.Context, connID domain.ConnectionID, roomID string, displayName string) {
	ident, err := s.registry.Lookup(connID)
	if err != nil {
		// joinRoom without a prior announce still carries the name, so
		// treat it as announce-then-join.
		s.Announce(ctx, connID, displayName)
		ident, _ = s.registry.Lookup(connID)
	}

	id, err := domain.ParseRoomID(roomID)
	if err != nil {
		// An unparseable id was certainly never created.
		s.sendRoomError(ctx, connID, "Meeting not found")
		return
	}

	alreadyMember := ident.InRoom() && ident.RoomID == id
	if ident.InRoom() && !alreadyMember {
		s.leave(ctx, ident)
	}

	participants, err := s.rooms.Join(id, connID, displayName)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			log.Debug().Str("connection_id", connID.String()).Str("room_id", roomID).Msg("Join rejected, room not found")
			s.sendRoomError(ctx, connID, "Meeting not found")
			return
		}
		log.Error().Err(err).Str("room_id", roomID).Msg("Room join failed")
		return
	}
	s.registry.AttachRoom(connID, id)

	infos := domain.ParticipantInfosOf(participants)

	s.send(ctx, connID, domain.Event{
		Name: domain.EventMeetingJoined,
		Data: domain.MeetingJoinedData{RoomID: id.String(), Participants: infos},
	})

	existing := make([]domain.ParticipantInfo, 0, len(infos))
	self := domain.ParticipantInfo{ConnectionID: connID.String(), DisplayName: displayName}
	for _, p := range infos {
		if p.ConnectionID == connID.String() {
			self = p
			continue
		}
		existing = append(existing, p)
	}
	s.send(ctx, connID, domain.Event{
		Name: domain.EventExistingParticipants,
		Data: domain.ExistingParticipantsData{Participants: existing},
	})

	if s.chat != nil {
		if history, err := s.chat.History(ctx, id); err == nil && len(history.Messages) > 0 {
			s.send(ctx, connID, domain.Event{Name: domain.EventChatHistory, Data: history})
		}
	}

	// A duplicate join from the same connection refreshes the joiner's
	// view but must not re-announce it to the room.
	if !alreadyMember {
		joined := domain.Event{
			Name: domain.EventParticipantJoined,
			Data: domain.ParticipantJoinedData{Participant: self, TotalParticipants: len(participants)},
		}
		for _, p := range participants {
			if p.ConnectionID == connID {
				continue
			}
			s.send(ctx, p.ConnectionID, joined)
		}
	}

	log.Info().Str("connection_id", connID.String()).Str("room_id", id.String()).Int("participants", len(participants)).Msg("Connection joined room")
}

// LeaveRoom is the explicit leave. Leaving a room the connection is not
// in (including leaving twice) has no observable effect.
func (s *SessionService) LeaveRoom(ctx context.Context, connID domain.ConnectionID, roomID string) {
	ident, err := s.registry.Lookup(connID)
	if err != nil {
		return
	}
	id, err := domain.ParseRoomID(roomID)
	if err != nil || !ident.InRoom() || ident.RoomID != id {
		return
	}
	s.leave(ctx, ident)
}

// Disconnect runs the terminal transition: synthesize a leave if the
// connection was in a room, drop the identity, then tell the world.
// The registry removal makes a second disconnect a no-op.
func (s *SessionService) Disconnect(ctx context.Context, connID domain.ConnectionID) {
	ident, err := s.registry.Remove(connID)
	if err != nil {
		return
	}

	if ident.InRoom() {
		remaining, err := s.rooms.Leave(ident.RoomID, connID)
		if err == nil {
			s.notifyLeft(ctx, ident, remaining)
		}
	}

	if err := s.gateway.Broadcast(ctx, domain.Event{
		Name: domain.EventPeerDisconnected,
		Data: domain.PeerDisconnectedData{ConnectionID: connID.String()},
	}); err != nil {
		log.Warn().Err(err).Msg("Failed to broadcast disconnect notice")
	}
	s.broadcastRoster(ctx)

	log.Info().Str("connection_id", connID.String()).Msg("Connection disconnected")
}

// leave removes ident from its current room and notifies the remaining
// members. The registry record stays (the connection is still alive),
// only its room membership is cleared.
func (s *SessionService) leave(ctx context.Context, ident domain.Identity) {
	remaining, err := s.rooms.Leave(ident.RoomID, ident.ConnectionID)
	if err != nil {
		return
	}
	s.registry.DetachRoom(ident.ConnectionID)
	s.notifyLeft(ctx, ident, remaining)
	log.Info().Str("connection_id", ident.ConnectionID.String()).Str("room_id", ident.RoomID.String()).Int("remaining", len(remaining)).Msg("Connection left room")
}

func (s *SessionService) notifyLeft(ctx context.Context, ident domain.Identity, remaining []domain.Participant) {
	evt := domain.Event{
		Name: domain.EventParticipantLeft,
		Data: domain.ParticipantLeftData{
			ConnectionID:      ident.ConnectionID.String(),
			DisplayName:       ident.DisplayName,
			TotalParticipants: len(remaining),
		},
	}
	for _, p := range remaining {
		s.send(ctx, p.ConnectionID, evt)
	}
}

func (s *SessionService) broadcastRoster(ctx context.Context) {
	idents := s.registry.Identities()
	roster := make([]domain.RosterEntry, 0, len(idents))
	for _, ident := range idents {
		roster = append(roster, domain.RosterEntry{
			ConnectionID: ident.ConnectionID.String(),
			DisplayName:  ident.DisplayName,
		})
	}
	if err := s.gateway.Broadcast(ctx, domain.Event{Name: domain.EventRoster, Data: roster}); err != nil {
		log.Warn().Err(err).Msg("Failed to broadcast roster")
	}
}

func (s *SessionService) sendRoomError(ctx context.Context, to domain.ConnectionID, message string) {
	s.send(ctx, to, domain.Event{
		Name: domain.EventRoomError,
		Data: domain.RoomErrorData{Message: message},
	})
}

// send is fire and forget like every delivery here.
func (s *SessionService) send(ctx context.Context, to domain.ConnectionID, evt domain.Event) {
	if err := s.gateway.Send(ctx, to, evt); err != nil && !errors.Is(err, domain.ErrUnknownConnection) {
		log.Debug().Err(err).Str("to", to.String()).Str("event", evt.Name).Msg("Event delivery skipped")
	}
}
