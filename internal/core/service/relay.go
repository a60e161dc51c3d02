package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/voxmeet/signal/internal/core/domain"
	"github.com/voxmeet/signal/internal/core/port"
)

// RelayService forwards negotiation messages verbatim to their
// addressed recipient with the sender identity attached. It never
// inspects payloads and never reports delivery failures to the sender:
// the peer-to-peer layer owns its own timeouts and retries.
type RelayService struct {
	registry port.ConnectionRegistry
	gateway  port.RealTimeGateway
}

func NewRelayService(registry port.ConnectionRegistry, gateway port.RealTimeGateway) *RelayService {
	return &RelayService{
		registry: registry,
		gateway:  gateway,
	}
}

func (s *RelayService) Offer(ctx context.Context, from, to domain.ConnectionID, roomID string, offer json.RawMessage) {
	var senderName string
	if ident, err := s.registry.Lookup(from); err == nil {
		senderName = ident.DisplayName
	}

	s.deliver(ctx, to, domain.Event{
		Name: domain.EventIncomingCall,
		Data: domain.IncomingCallData{
			From:            from.String(),
			FromDisplayName: senderName,
			Offer:           offer,
			RoomID:          roomID,
		},
	})
}

func (s *RelayService) Answer(ctx context.Context, from, to domain.ConnectionID, answer json.RawMessage) {
	s.deliver(ctx, to, domain.Event{
		Name: domain.EventCallAnswered,
		Data: domain.CallAnsweredData{From: from.String(), Answer: answer},
	})
}

func (s *RelayService) IceCandidate(ctx context.Context, from, to domain.ConnectionID, candidate json.RawMessage) {
	s.deliver(ctx, to, domain.Event{
		Name: domain.EventIceCandidate,
		Data: domain.IceCandidateData{From: from.String(), Candidate: candidate},
	})
}

func (s *RelayService) Reject(ctx context.Context, from, to domain.ConnectionID) {
	s.deliver(ctx, to, domain.Event{
		Name: domain.EventCallRejected,
		Data: domain.CallPeerData{From: from.String()},
	})
}

func (s *RelayService) End(ctx context.Context, from, to domain.ConnectionID) {
	s.deliver(ctx, to, domain.Event{
		Name: domain.EventCallEnded,
		Data: domain.CallPeerData{From: from.String()},
	})
}

// deliver is at-most-once: an unknown recipient is logged and dropped.
func (s *RelayService) deliver(ctx context.Context, to domain.ConnectionID, evt domain.Event) {
	err := s.gateway.Send(ctx, to, evt)
	if err == nil {
		return
	}
	if errors.Is(err, domain.ErrUnknownConnection) {
		log.Debug().Str("to", to.String()).Str("event", evt.Name).Msg("Recipient not connected, dropping signal")
		return
	}
	log.Warn().Err(err).Str("to", to.String()).Str("event", evt.Name).Msg("Failed to relay signal")
}
