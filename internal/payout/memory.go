package payout

import (
	"context"
	"sync"

	id "tenure/pkg/domain"
	dErrors "tenure/pkg/domain-errors"
)

// InMemoryLedger credits recipients in memory. It is the default provider
// for single-process deployments and gives tests visibility into who
// received what.
type InMemoryLedger struct {
	mu       sync.RWMutex
	balances map[id.Identity]int64

	// FailNext makes the next transfer fail, for exercising the
	// transfer-failure path in tests.
	FailNext bool
}

func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{balances: make(map[id.Identity]int64)}
}

func (l *InMemoryLedger) Transfer(_ context.Context, to id.Identity, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.FailNext {
		l.FailNext = false
		return dErrors.New(dErrors.CodeTransferFailed, "simulated transfer failure")
	}
	if to.IsZero() {
		return dErrors.New(dErrors.CodeTransferFailed, "recipient identity is empty")
	}
	if amount <= 0 {
		return dErrors.New(dErrors.CodeTransferFailed, "amount must be positive")
	}
	l.balances[to] += amount
	return nil
}

// BalanceOf returns the total credited to an identity.
func (l *InMemoryLedger) BalanceOf(identity id.Identity) int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[identity]
}
