package ws

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/voxmeet/signal/internal/core/domain"
	"github.com/voxmeet/signal/internal/core/port"
)

// Hub implements port.RealTimeGateway over a table of live websocket
// clients keyed by connection id. Registration is synchronous: once
// Register returns, events addressed to the connection will reach it.
type Hub struct {
	mu      sync.RWMutex
	clients map[domain.ConnectionID]port.Client
	closed  bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[domain.ConnectionID]port.Client),
	}
}

func (h *Hub) Register(c port.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		c.Close()
		return
	}
	h.clients[c.ID()] = c
	log.Info().Str("connection_id", c.ID().String()).Int("connections", len(h.clients)).Msg("Client registered")
}

func (h *Hub) Unregister(c port.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.clients[c.ID()]; ok && current == c {
		delete(h.clients, c.ID())
		log.Info().Str("connection_id", c.ID().String()).Int("connections", len(h.clients)).Msg("Client unregistered")
	}
}

func (h *Hub) Send(ctx context.Context, to domain.ConnectionID, evt domain.Event) error {
	h.mu.RLock()
	client, ok := h.clients[to]
	h.mu.RUnlock()

	if !ok {
		return domain.ErrUnknownConnection
	}
	return client.Send(evt)
}

func (h *Hub) Broadcast(ctx context.Context, evt domain.Event) error {
	h.mu.RLock()
	targets := make([]port.Client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.Send(evt); err != nil {
			log.Debug().Err(err).Str("connection_id", c.ID().String()).Str("event", evt.Name).Msg("Broadcast delivery skipped")
		}
	}
	return nil
}

// Stop closes every live connection. Used on shutdown only.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, c := range h.clients {
		if err := c.Close(); err != nil {
			log.Error().Err(err).Str("connection_id", id.String()).Msg("Error closing client connection")
		}
		delete(h.clients, id)
	}
}
