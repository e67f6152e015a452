package models

import (
	"time"

	id "tenure/pkg/domain"
	dErrors "tenure/pkg/domain-errors"
)

// Contract is the aggregate root for one employment agreement.
//
// Invariants:
//   - Employee is resolved from the credential at creation and cached; the
//     credential is non-transferable so the pairing never changes
//   - StartTime is zero until the employee executes the contract
//   - Status only moves along the transitions in status.go
//   - Contracts are never deleted; terminal statuses end the lifecycle
type Contract struct {
	ID                    id.ContractID   `json:"id"`
	CompanyID             id.CompanyID    `json:"company_id"`
	CredentialID          id.CredentialID `json:"credential_id"`
	Employee              id.Identity     `json:"employee"`
	Salary                int64           `json:"salary"`
	Duration              time.Duration   `json:"duration"`
	StartTime             time.Time       `json:"start_time"`
	Responsibilities      string          `json:"responsibilities"`
	TerminationConditions string          `json:"termination_conditions"`
	Status                Status          `json:"status"`
	Escrow                Escrow          `json:"escrow"`
	Arbitrator            id.Identity     `json:"arbitrator"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// NewContract validates and builds a contract pending id assignment by the
// store.
func NewContract(
	companyID id.CompanyID,
	credentialID id.CredentialID,
	employee id.Identity,
	salary int64,
	duration time.Duration,
	responsibilities string,
	terminationConditions string,
	arbitrator id.Identity,
	now time.Time,
) (*Contract, error) {
	if !companyID.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, "company id is required")
	}
	if !credentialID.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, "credential id is required")
	}
	if employee.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "employee identity is required")
	}
	if salary <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "salary must be positive")
	}
	if duration <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "duration must be positive")
	}
	if arbitrator.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "arbitrator identity is required")
	}
	return &Contract{
		CompanyID:             companyID,
		CredentialID:          credentialID,
		Employee:              employee,
		Salary:                salary,
		Duration:              duration,
		Responsibilities:      responsibilities,
		TerminationConditions: terminationConditions,
		Status:                StatusCreated,
		Arbitrator:            arbitrator,
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

// Transition moves the contract to next, enforcing the machine.
func (c *Contract) Transition(next Status, now time.Time) error {
	if !c.Status.CanTransitionTo(next) {
		return dErrors.Newf(dErrors.CodeInvalidState, "cannot transition contract from %s to %s", c.Status, next)
	}
	c.Status = next
	c.UpdatedAt = now
	return nil
}

// IsActiveAt reports whether the contract is live: executed, status Active,
// and the term has not elapsed. Purely time-and-status derived; no
// background timer flips contracts off.
func (c *Contract) IsActiveAt(now time.Time) bool {
	if c.Status != StatusActive || c.StartTime.IsZero() {
		return false
	}
	return now.Before(c.StartTime.Add(c.Duration))
}

// TermElapsedAt reports whether the contracted duration has passed.
func (c *Contract) TermElapsedAt(now time.Time) bool {
	return !c.StartTime.IsZero() && !now.Before(c.StartTime.Add(c.Duration))
}

// Reviewable reports whether post-contract feedback is accepted.
func (c *Contract) Reviewable() bool {
	return c.Status == StatusTerminated || c.Status == StatusCompleted
}

// Clone returns a copy so stores can hand out snapshots.
func (c *Contract) Clone() *Contract {
	out := *c
	return &out
}
