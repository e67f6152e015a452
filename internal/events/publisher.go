package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Sink receives published lifecycle events. Implementations must be safe
// for concurrent use.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher decouples event emission from the mutation transaction.
// Services call Emit after their store write committed; the worker drains
// the inbox into sinks. Emission never fails a business operation: a full
// inbox drops the event and logs it.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

const defaultInboxSize = 256

// NewPublisher builds a publisher with a buffered inbox.
func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{
		inbox:  make(chan Event, defaultInboxSize),
		logger: logger,
	}
}

// Emit queues a lifecycle event for delivery. The event gets an id and a
// timestamp if the caller did not set them.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
		if p.logger != nil {
			p.logger.WarnContext(ctx, "event inbox full, dropping event",
				"event_type", event.Type,
				"contract_id", event.ContractID,
			)
		}
	}
}

// Inbox exposes the receive side for the worker.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}
