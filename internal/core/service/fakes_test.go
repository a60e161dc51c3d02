package service

import (
	"context"
	"sync"

	"github.com/voxmeet/signal/internal/core/domain"
)

// fakeGateway records every delivery instead of touching a socket.
// When live is non-nil, sends to connections outside it fail with
// ErrUnknownConnection, like the real hub.
type fakeGateway struct {
	mu         sync.Mutex
	live       map[domain.ConnectionID]bool
	sent       map[domain.ConnectionID][]domain.Event
	broadcasts []domain.Event
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		sent: make(map[domain.ConnectionID][]domain.Event),
	}
}

func (g *fakeGateway) Send(ctx context.Context, to domain.ConnectionID, evt domain.Event) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.live != nil && !g.live[to] {
		return domain.ErrUnknownConnection
	}
	g.sent[to] = append(g.sent[to], evt)
	return nil
}

func (g *fakeGateway) Broadcast(ctx context.Context, evt domain.Event) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.broadcasts = append(g.broadcasts, evt)
	return nil
}

func (g *fakeGateway) eventsFor(to domain.ConnectionID, name string) []domain.Event {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out []domain.Event
	for _, evt := range g.sent[to] {
		if evt.Name == name {
			out = append(out, evt)
		}
	}
	return out
}

func (g *fakeGateway) allFor(to domain.ConnectionID) []domain.Event {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]domain.Event, len(g.sent[to]))
	copy(out, g.sent[to])
	return out
}

func (g *fakeGateway) broadcastsNamed(name string) []domain.Event {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out []domain.Event
	for _, evt := range g.broadcasts {
		if evt.Name == name {
			out = append(out, evt)
		}
	}
	return out
}
