package events

import (
	"context"
	"log/slog"
)

// Worker consumes lifecycle events from the publisher inbox and fans them
// out to sinks. A sink failure is logged and does not stop delivery to the
// remaining sinks.
type Worker struct {
	inbox  <-chan Event
	sinks  []Sink
	logger *slog.Logger
}

func NewWorker(inbox <-chan Event, logger *slog.Logger, sinks ...Sink) *Worker {
	return &Worker{inbox: inbox, sinks: sinks, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			for _, sink := range w.sinks {
				if err := sink.Append(ctx, event); err != nil && w.logger != nil {
					w.logger.ErrorContext(ctx, "event sink append failed",
						"event_type", event.Type,
						"event_id", event.ID,
						"error", err,
					)
				}
			}
		}
	}
}
