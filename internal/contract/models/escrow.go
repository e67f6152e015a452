package models

import (
	dErrors "tenure/pkg/domain-errors"
)

// Escrow is the per-contract value ledger. It is embedded in the contract
// record but logically separable: Balance is the only field the lifecycle
// reads, Deposited and Released exist so conservation is checkable at any
// point.
//
// Invariant: Balance == Deposited - Released and Balance >= 0, after every
// operation.
type Escrow struct {
	Balance   int64 `json:"balance"`
	Deposited int64 `json:"deposited"`
	Released  int64 `json:"released"`
}

// Deposit credits the escrow.
func (e *Escrow) Deposit(amount int64) error {
	if amount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "deposit amount must be positive")
	}
	e.Balance += amount
	e.Deposited += amount
	return nil
}

// Drain zeroes the balance and records the release, returning the drained
// amount. Callers drain before attempting the funds movement so a failed or
// reentrant transfer cannot pay twice; Restore undoes a drain whose
// transfer definitively failed.
func (e *Escrow) Drain() int64 {
	amount := e.Balance
	e.Balance = 0
	e.Released += amount
	return amount
}

// Restore re-credits a drained amount after a failed transfer.
func (e *Escrow) Restore(amount int64) {
	e.Balance += amount
	e.Released -= amount
}

// Conserved reports whether the ledger equation holds.
func (e *Escrow) Conserved() bool {
	return e.Balance >= 0 && e.Balance == e.Deposited-e.Released
}
