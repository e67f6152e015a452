package events

import (
	"time"

	id "tenure/pkg/domain"
)

// Type classifies a lifecycle event.
type Type string

const (
	TypeCompanyRegistered  Type = "company_registered"
	TypeCredentialIssued   Type = "credential_issued"
	TypeCredentialLocked   Type = "credential_locked"
	TypeContractCreated    Type = "contract_created"
	TypeContractExecuted   Type = "contract_executed"
	TypeSalaryDeposited    Type = "salary_deposited"
	TypeSalaryReleased     Type = "salary_released"
	TypeDisputeRaised      Type = "dispute_raised"
	TypeDisputeResolved    Type = "dispute_resolved"
	TypeContractTerminated Type = "contract_terminated"
	TypeContractCompleted  Type = "contract_completed"
	TypeReviewSubmitted    Type = "review_submitted"
)

// Event is emitted after each successful state mutation. Keep it
// transport-agnostic so stores and sinks can fan out. Identifier fields are
// zero when not relevant to the event type; Amount is in native value units.
type Event struct {
	ID           string          `json:"id"`
	Type         Type            `json:"type"`
	Timestamp    time.Time       `json:"timestamp"`
	Actor        id.Identity     `json:"actor,omitempty"`
	CompanyID    id.CompanyID    `json:"company_id,omitempty"`
	CredentialID id.CredentialID `json:"credential_id,omitempty"`
	ContractID   id.ContractID   `json:"contract_id,omitempty"`
	Recipient    id.Identity     `json:"recipient,omitempty"`
	Amount       int64           `json:"amount,omitempty"`
	Reason       string          `json:"reason,omitempty"`
}
