package store

import (
	"context"
	"database/sql"
	"fmt"

	"tenure/internal/review/models"
	id "tenure/pkg/domain"
)

// PostgresStore persists reviews in PostgreSQL, append-only.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed review store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, review *models.Review) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (contract_id, rating, comments, reviewer_identity, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		review.ContractID,
		review.Rating,
		review.Comments,
		review.Reviewer.String(),
		review.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("append review: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByContract(ctx context.Context, contractID id.ContractID) ([]models.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT contract_id, rating, comments, reviewer_identity, submitted_at
		FROM reviews
		WHERE contract_id = $1
		ORDER BY id
	`, contractID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var out []models.Review
	for rows.Next() {
		var (
			review   models.Review
			reviewer string
		)
		if err := rows.Scan(&review.ContractID, &review.Rating, &review.Comments, &reviewer, &review.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		review.Reviewer = id.Identity(reviewer)
		out = append(out, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return out, nil
}
