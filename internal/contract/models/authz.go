package models

import (
	id "tenure/pkg/domain"
	dErrors "tenure/pkg/domain-errors"
)

// Operation names an action gated by the authorization matrix.
type Operation string

const (
	OpExecute        Operation = "execute"
	OpDeposit        Operation = "deposit"
	OpRelease        Operation = "release"
	OpDispute        Operation = "dispute"
	OpTerminate      Operation = "terminate"
	OpComplete       Operation = "complete"
	OpResolveDispute Operation = "resolve_dispute"
	OpSubmitReview   Operation = "submit_review"
)

// role is a caller relationship to a contract.
type role int

const (
	roleAnyone role = iota
	roleEmployee
	roleCompanyOwner
	roleArbitrator
)

// authzMatrix is the single source of truth for who may perform which
// lifecycle operation. Keeping it a table makes the full matrix testable in
// one place instead of scattering identity comparisons through the engine.
var authzMatrix = map[Operation][]role{
	OpExecute:        {roleEmployee},
	OpDeposit:        {roleAnyone},
	OpRelease:        {roleEmployee},
	OpDispute:        {roleEmployee, roleCompanyOwner},
	OpTerminate:      {roleEmployee, roleCompanyOwner},
	OpComplete:       {roleEmployee, roleCompanyOwner},
	OpResolveDispute: {roleArbitrator},
	OpSubmitReview:   {roleEmployee, roleCompanyOwner},
}

// Authorize checks whether caller may perform op on the contract. owner is
// the owning company's identity, resolved by the service. Returns an
// unauthorized error naming the operation when the caller holds none of the
// permitted roles.
func Authorize(op Operation, c *Contract, owner id.Identity, caller id.Identity) error {
	if caller.IsZero() {
		return dErrors.New(dErrors.CodeUnauthorized, "caller identity is required")
	}
	roles, ok := authzMatrix[op]
	if !ok {
		return dErrors.Newf(dErrors.CodeUnauthorized, "unknown operation %q", op)
	}
	for _, r := range roles {
		switch r {
		case roleAnyone:
			return nil
		case roleEmployee:
			if caller == c.Employee {
				return nil
			}
		case roleCompanyOwner:
			if !owner.IsZero() && caller == owner {
				return nil
			}
		case roleArbitrator:
			if caller == c.Arbitrator {
				return nil
			}
		}
	}
	return dErrors.Newf(dErrors.CodeUnauthorized, "caller may not %s this contract", op)
}
