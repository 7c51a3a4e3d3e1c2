// Package service implements business logic on top of ports.
package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/adoptiq/maturity/internal/port/broadcast"
	"github.com/adoptiq/maturity/internal/port/messagequeue"
	"github.com/adoptiq/maturity/internal/resilience"
)

// events wraps the queue and websocket hub behind one fire-and-forget call.
// Publishing happens only after the triggering state change has committed;
// a publish failure is logged and never rolls the state change back, since
// subscribers tolerate at-least-once delivery and can reconcile from the API.
type events struct {
	queue   messagequeue.Queue
	hub     broadcast.Broadcaster
	breaker *resilience.Breaker
}

func newEvents(queue messagequeue.Queue, hub broadcast.Broadcaster, breaker *resilience.Breaker) *events {
	return &events{queue: queue, hub: hub, breaker: breaker}
}

// emit publishes payload on subject and mirrors it to connected clients.
func (e *events) emit(ctx context.Context, subject string, payload any) {
	if e == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal event payload", "subject", subject, "error", err)
		return
	}
	if err := messagequeue.Validate(subject, data); err != nil {
		slog.Error("event payload failed schema validation", "subject", subject, "error", err)
		return
	}

	if e.queue != nil {
		publish := func() error { return e.queue.Publish(ctx, subject, data) }
		var err error
		if e.breaker != nil {
			err = e.breaker.Execute(publish)
		} else {
			err = publish()
		}
		if err != nil {
			slog.Error("publish event", "subject", subject, "error", err)
		}
	}
	if e.hub != nil {
		e.hub.BroadcastEvent(ctx, subject, payload)
	}
}
