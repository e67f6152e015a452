package models

import (
	"time"

	id "tenure/pkg/domain"
	dErrors "tenure/pkg/domain-errors"
)

// Credential is a soulbound employee credential: permanently bound to one
// identity at mint time.
//
// Invariants:
//   - Owner is fixed at mint; there is no transfer operation and Locked is
//     true for the credential's entire lifetime
//   - At most one credential per identity (enforced by the store's
//     uniqueness constraint on owner)
//   - Credentials are never destroyed
type Credential struct {
	ID          id.CredentialID `json:"id"`
	Owner       id.Identity     `json:"owner"`
	CompanyID   id.CompanyID    `json:"company_id"`
	MetadataRef string          `json:"metadata_ref"`
	Locked      bool            `json:"locked"`
	IssuedAt    time.Time       `json:"issued_at"`
}

// NewCredential validates and builds a credential pending id assignment by
// the store.
func NewCredential(companyID id.CompanyID, owner id.Identity, metadataRef string, now time.Time) (*Credential, error) {
	if !companyID.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, "company id is required")
	}
	if owner.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "employee identity cannot be empty")
	}
	return &Credential{
		CompanyID:   companyID,
		Owner:       owner,
		MetadataRef: metadataRef,
		Locked:      true,
		IssuedAt:    now,
	}, nil
}

// Clone returns a copy so stores can hand out snapshots.
func (c *Credential) Clone() *Credential {
	out := *c
	return &out
}
