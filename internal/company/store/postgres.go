package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tenure/internal/company/models"
	id "tenure/pkg/domain"
	"tenure/pkg/platform/sentinel"
)

// PostgresStore persists companies in PostgreSQL. Pure I/O; authorization
// and validation belong in the service.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed company store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (name, industry, owner_identity, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		company.Name,
		company.Industry,
		company.Owner.String(),
		company.Active,
		company.CreatedAt,
		company.UpdatedAt,
	).Scan(&company.ID)
	if err != nil {
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, companyID id.CompanyID) (*models.Company, error) {
	query := `
		SELECT id, name, industry, owner_identity, active, created_at, updated_at
		FROM companies
		WHERE id = $1
	`
	var (
		company models.Company
		owner   string
	)
	err := s.db.QueryRowContext(ctx, query, companyID).Scan(
		&company.ID,
		&company.Name,
		&company.Industry,
		&owner,
		&company.Active,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	company.Owner = id.Identity(owner)

	rows, err := s.db.QueryContext(ctx, `
		SELECT credential_id FROM company_employees
		WHERE company_id = $1
		ORDER BY credential_id
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list company employees: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var credentialID id.CredentialID
		if err := rows.Scan(&credentialID); err != nil {
			return nil, fmt.Errorf("scan company employee: %w", err)
		}
		company.EmployeeCredentials = append(company.EmployeeCredentials, credentialID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate company employees: %w", err)
	}
	return &company, nil
}

func (s *PostgresStore) AppendEmployee(ctx context.Context, companyID id.CompanyID, credentialID id.CredentialID, now time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO company_employees (company_id, credential_id, added_at)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`, companyID, credentialID, now)
	if err != nil {
		return fmt.Errorf("append company employee: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows > 0 {
		if _, err := s.db.ExecContext(ctx, `UPDATE companies SET updated_at = $2 WHERE id = $1`, companyID, now); err != nil {
			return fmt.Errorf("touch company: %w", err)
		}
	}
	return nil
}
