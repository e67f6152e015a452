package events

import (
	"context"
	"sync"

	id "tenure/pkg/domain"
)

// InMemoryLog keeps the append-only event log in memory for external
// observers without a Kafka deployment, and doubles as the test sink.
type InMemoryLog struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryLog() *InMemoryLog {
	return &InMemoryLog{}
}

func (l *InMemoryLog) Append(_ context.Context, event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

// ListByContract returns events for one contract in emission order.
func (l *InMemoryLog) ListByContract(_ context.Context, contractID id.ContractID) ([]Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Event
	for _, e := range l.events {
		if e.ContractID == contractID {
			out = append(out, e)
		}
	}
	return out, nil
}

// List returns all events in emission order.
func (l *InMemoryLog) List(_ context.Context) ([]Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Event{}, l.events...), nil
}
