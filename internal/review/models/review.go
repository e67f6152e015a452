package models

import (
	"time"

	id "tenure/pkg/domain"
	dErrors "tenure/pkg/domain-errors"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is append-only post-contract feedback. A contract may accumulate
// any number of reviews; there is no dedup or overwrite.
type Review struct {
	ContractID  id.ContractID `json:"contract_id"`
	Rating      int           `json:"rating"`
	Comments    string        `json:"comments"`
	Reviewer    id.Identity   `json:"reviewer"`
	SubmittedAt time.Time     `json:"submitted_at"`
}

// NewReview validates and builds a review.
func NewReview(contractID id.ContractID, rating int, comments string, reviewer id.Identity, now time.Time) (*Review, error) {
	if !contractID.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, "contract id is required")
	}
	if rating < MinRating || rating > MaxRating {
		return nil, dErrors.Newf(dErrors.CodeValidation, "rating must be between %d and %d", MinRating, MaxRating)
	}
	if reviewer.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "reviewer identity is required")
	}
	return &Review{
		ContractID:  contractID,
		Rating:      rating,
		Comments:    comments,
		Reviewer:    reviewer,
		SubmittedAt: now,
	}, nil
}
