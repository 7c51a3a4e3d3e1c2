package ws

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/adoptiq/maturity/internal/port/broadcast"
)

var _ broadcast.Broadcaster = (*Hub)(nil)

// BroadcastEvent marshals a typed event and broadcasts it to all clients.
// The event types mirror the message queue subjects, so a dashboard can
// follow an assessment from creation through report generation on one socket.
func (h *Hub) BroadcastEvent(ctx context.Context, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal ws event payload", "type", eventType, "error", err)
		return
	}

	h.Broadcast(ctx, Message{
		Type:    eventType,
		Payload: json.RawMessage(data),
	})
}
