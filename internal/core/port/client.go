package port

import "github.com/voxmeet/signal/internal/core/domain"

// Client is one live transport connection as seen from the core.
// Send must never block on a slow peer.
type Client interface {
	ID() domain.ConnectionID
	Send(evt domain.Event) error
	Close() error
}
