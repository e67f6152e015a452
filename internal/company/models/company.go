package models

import (
	"time"

	id "tenure/pkg/domain"
	dErrors "tenure/pkg/domain-errors"
)

// Company is the aggregate root for an employer.
//
// Invariants:
//   - Owner is non-empty (registration requires an authenticated caller)
//   - EmployeeCredentials only grows; credentials are never detached
//   - Companies are never deleted; Active is the soft-deactivation flag
//
// Names are intentionally not unique keys: two companies may register the
// same name, and lookups go through the sequential id.
type Company struct {
	ID                  id.CompanyID      `json:"id"`
	Name                string            `json:"name"`
	Industry            string            `json:"industry"`
	Owner               id.Identity       `json:"owner"`
	EmployeeCredentials []id.CredentialID `json:"employee_credentials"`
	Active              bool              `json:"active"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// NewCompany validates and builds a company pending id assignment by the
// store.
func NewCompany(name, industry string, owner id.Identity, now time.Time) (*Company, error) {
	if owner.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "company owner cannot be empty")
	}
	return &Company{
		Name:      name,
		Industry:  industry,
		Owner:     owner,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsOwnedBy reports whether the caller owns the company.
func (c *Company) IsOwnedBy(caller id.Identity) bool {
	return !caller.IsZero() && c.Owner == caller
}

// Clone returns a deep copy so stores can hand out snapshots.
func (c *Company) Clone() *Company {
	out := *c
	out.EmployeeCredentials = append([]id.CredentialID{}, c.EmployeeCredentials...)
	return &out
}

// Stats are the derived per-company aggregates.
//
// AverageRating is the integer-truncated mean of all ratings across all
// reviews on all of the company's contracts; 0 when no reviews exist.
type Stats struct {
	TotalEmployees  int `json:"total_employees"`
	ActiveEmployees int `json:"active_employees"`
	TotalContracts  int `json:"total_contracts"`
	ActiveContracts int `json:"active_contracts"`
	AverageRating   int `json:"average_rating"`
}
