package port

import (
	"context"

	"github.com/voxmeet/signal/internal/core/domain"
)

// RealTimeGateway delivers events to live connections. Delivery is
// fire and forget: Send returns domain.ErrUnknownConnection when the
// target is not connected, and callers decide whether that matters.
type RealTimeGateway interface {
	Send(ctx context.Context, to domain.ConnectionID, evt domain.Event) error
	Broadcast(ctx context.Context, evt domain.Event) error
}
