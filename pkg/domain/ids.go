// Package domain provides typed identifiers shared across features.
//
// All record identifiers are sequential int64 values assigned by the store
// that owns the table, starting at 1. Zero is reserved and never refers to a
// record. Caller identities are opaque strings supplied by the identity
// layer after authentication.
package domain

import (
	"strconv"
	"strings"

	dErrors "tenure/pkg/domain-errors"
)

// Identity is an authenticated caller identity. The identity layer (JWT
// middleware in this service) guarantees it is non-empty for authenticated
// requests; domain code treats the zero value as "no caller".
type Identity string

// ParseIdentity validates a raw identity string from a trust boundary.
func ParseIdentity(s string) (Identity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "identity cannot be empty")
	}
	return Identity(s), nil
}

// IsZero reports whether the identity is unset.
func (i Identity) IsZero() bool {
	return i == ""
}

func (i Identity) String() string {
	return string(i)
}

// CompanyID identifies a registered company.
type CompanyID int64

// CredentialID identifies a minted employee credential.
type CredentialID int64

// ContractID identifies an employment contract.
type ContractID int64

// Valid reports whether the id could refer to a record. It does not imply
// the record exists.
func (id CompanyID) Valid() bool { return id > 0 }

func (id CredentialID) Valid() bool { return id > 0 }

func (id ContractID) Valid() bool { return id > 0 }

func (id CompanyID) String() string { return strconv.FormatInt(int64(id), 10) }

func (id CredentialID) String() string { return strconv.FormatInt(int64(id), 10) }

func (id ContractID) String() string { return strconv.FormatInt(int64(id), 10) }

// ParseCompanyID parses and validates a company id from a trust boundary
// (URL path segments, request bodies).
func ParseCompanyID(s string) (CompanyID, error) {
	n, err := parseID(s)
	if err != nil {
		return 0, err
	}
	return CompanyID(n), nil
}

// ParseCredentialID parses and validates a credential id.
func ParseCredentialID(s string) (CredentialID, error) {
	n, err := parseID(s)
	if err != nil {
		return 0, err
	}
	return CredentialID(n), nil
}

// ParseContractID parses and validates a contract id.
func ParseContractID(s string) (ContractID, error) {
	n, err := parseID(s)
	if err != nil {
		return 0, err
	}
	return ContractID(n), nil
}

func parseID(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeValidation, "id must be a positive integer")
	}
	if n <= 0 {
		return 0, dErrors.New(dErrors.CodeValidation, "id must be a positive integer")
	}
	return n, nil
}
