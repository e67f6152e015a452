// Package payout abstracts native value movement to a recipient. The
// engine never holds funds itself; escrow balances are ledger entries and
// the provider performs the actual movement.
package payout

import (
	"context"

	id "tenure/pkg/domain"
)

// Provider moves native value to a recipient identity. A returned error
// means no value moved; the caller restores its escrow accounting and
// surfaces a transfer failure.
type Provider interface {
	Transfer(ctx context.Context, to id.Identity, amount int64) error
}
