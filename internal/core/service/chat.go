package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/voxmeet/signal/internal/core/domain"
	"github.com/voxmeet/signal/internal/core/port"
)

// ChatService broadcasts live chat lines to a room and keeps a short
// in-memory history for replay to late joiners.
type ChatService struct {
	repo         port.MessageRepository
	rooms        port.RoomStore
	registry     port.ConnectionRegistry
	gateway      port.RealTimeGateway
	historyLimit int
}

func NewChatService(repo port.MessageRepository, rooms port.RoomStore, registry port.ConnectionRegistry, gateway port.RealTimeGateway, historyLimit int) *ChatService {
	return &ChatService{
		repo:         repo,
		rooms:        rooms,
		registry:     registry,
		gateway:      gateway,
		historyLimit: historyLimit,
	}
}

func (s *ChatService) Send(ctx context.Context, senderID domain.ConnectionID, roomID domain.RoomID, text string) error {
	ident, err := s.registry.Lookup(senderID)
	if err != nil || ident.RoomID != roomID {
		// Not a member of that room; drop like any other misaddressed
		// message.
		log.Debug().Str("connection_id", senderID.String()).Str("room_id", roomID.String()).Msg("Chat message from non-member dropped")
		return nil
	}

	msg, err := domain.NewChatMessage(senderID, ident.DisplayName, roomID, text)
	if err != nil {
		return err
	}

	if err := s.repo.Save(ctx, *msg); err != nil {
		return err
	}

	room, err := s.rooms.Get(roomID)
	if err != nil {
		return err
	}

	evt := domain.Event{
		Name: domain.EventChatMessage,
		Data: chatMessageData(*msg),
	}
	for _, p := range room.Participants {
		if err := s.gateway.Send(ctx, p.ConnectionID, evt); err != nil {
			log.Debug().Err(err).Str("to", p.ConnectionID.String()).Msg("Chat delivery skipped")
		}
	}
	return nil
}

// History returns the replay payload for a room, oldest first.
func (s *ChatService) History(ctx context.Context, roomID domain.RoomID) (domain.ChatHistoryData, error) {
	msgs, err := s.repo.Recent(ctx, roomID, s.historyLimit)
	if err != nil {
		return domain.ChatHistoryData{}, err
	}
	out := domain.ChatHistoryData{Messages: make([]domain.ChatMessageData, 0, len(msgs))}
	for _, m := range msgs {
		out.Messages = append(out.Messages, chatMessageData(m))
	}
	return out, nil
}

func chatMessageData(m domain.ChatMessage) domain.ChatMessageData {
	return domain.ChatMessageData{
		From:            m.SenderID.String(),
		FromDisplayName: m.SenderName,
		Text:            m.Text,
		SentAt:          m.SentAt,
	}
}
