// Package broadcast defines the port for pushing real-time events to
// connected dashboard clients.
package broadcast

import "context"

// Broadcaster fans a typed event out to every connected client. Delivery is
// best-effort; slow clients may be dropped by the implementation.
type Broadcaster interface {
	BroadcastEvent(ctx context.Context, eventType string, payload any)
}
