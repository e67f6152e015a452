package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"tenure/internal/credential/models"
	id "tenure/pkg/domain"
	"tenure/pkg/platform/sentinel"
)

// PostgresStore persists credentials in PostgreSQL. The UNIQUE constraint
// on owner_identity is the authoritative one-credential-per-identity check.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed credential store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const uniqueViolation = "23505"

func (s *PostgresStore) CreateIfOwnerFree(ctx context.Context, credential *models.Credential) error {
	query := `
		INSERT INTO credentials (owner_identity, company_id, metadata_ref, locked, issued_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		credential.Owner.String(),
		credential.CompanyID,
		credential.MetadataRef,
		credential.Locked,
		credential.IssuedAt,
	).Scan(&credential.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create credential: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, credentialID id.CredentialID) (*models.Credential, error) {
	return s.findOne(ctx, `WHERE id = $1`, credentialID)
}

func (s *PostgresStore) FindByOwner(ctx context.Context, owner id.Identity) (*models.Credential, error) {
	return s.findOne(ctx, `WHERE owner_identity = $1`, owner.String())
}

func (s *PostgresStore) findOne(ctx context.Context, where string, arg any) (*models.Credential, error) {
	query := `
		SELECT id, owner_identity, company_id, metadata_ref, locked, issued_at
		FROM credentials ` + where
	var (
		credential models.Credential
		owner      string
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&credential.ID,
		&owner,
		&credential.CompanyID,
		&credential.MetadataRef,
		&credential.Locked,
		&credential.IssuedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}
	credential.Owner = id.Identity(owner)
	return &credential, nil
}
