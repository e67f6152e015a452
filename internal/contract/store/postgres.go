package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tenure/internal/contract/models"
	id "tenure/pkg/domain"
	"tenure/pkg/platform/sentinel"
)

// PostgresStore persists contracts in PostgreSQL. Mutate takes a row lock
// (SELECT ... FOR UPDATE) so each contract's read-modify-write steps are
// serialized across processes.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed contract store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const contractColumns = `
	id, company_id, credential_id, employee_identity, salary,
	duration_seconds, start_time, responsibilities, termination_conditions,
	status, balance, deposited, released, arbitrator_identity,
	created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, contract *models.Contract) error {
	query := `
		INSERT INTO contracts (
			company_id, credential_id, employee_identity, salary,
			duration_seconds, start_time, responsibilities, termination_conditions,
			status, balance, deposited, released, arbitrator_identity,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		contract.CompanyID,
		contract.CredentialID,
		contract.Employee.String(),
		contract.Salary,
		int64(contract.Duration/time.Second),
		nullTime(contract.StartTime),
		contract.Responsibilities,
		contract.TerminationConditions,
		string(contract.Status),
		contract.Escrow.Balance,
		contract.Escrow.Deposited,
		contract.Escrow.Released,
		contract.Arbitrator.String(),
		contract.CreatedAt,
		contract.UpdatedAt,
	).Scan(&contract.ID)
	if err != nil {
		return fmt.Errorf("create contract: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, contractID id.ContractID) (*models.Contract, error) {
	row := s.db.QueryRowContext(ctx, `SELECT`+contractColumns+` FROM contracts WHERE id = $1`, contractID)
	contract, err := scanContract(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find contract: %w", err)
	}
	return contract, nil
}

// Mutate loads the contract under a row lock, applies fn, and persists the
// result in the same transaction. fn returning an error rolls everything
// back, leaving the record unchanged.
func (s *PostgresStore) Mutate(ctx context.Context, contractID id.ContractID, fn func(*models.Contract) error) (*models.Contract, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin contract mutation: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT`+contractColumns+` FROM contracts WHERE id = $1 FOR UPDATE`, contractID)
	contract, err := scanContract(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("lock contract: %w", err)
	}

	if err := fn(contract); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE contracts SET
			start_time = $2,
			status = $3,
			balance = $4,
			deposited = $5,
			released = $6,
			updated_at = $7
		WHERE id = $1
	`,
		contract.ID,
		nullTime(contract.StartTime),
		string(contract.Status),
		contract.Escrow.Balance,
		contract.Escrow.Deposited,
		contract.Escrow.Released,
		contract.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update contract: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit contract mutation: %w", err)
	}
	return contract, nil
}

func (s *PostgresStore) ListByCompany(ctx context.Context, companyID id.CompanyID) ([]*models.Contract, error) {
	return s.list(ctx, `WHERE company_id = $1`, companyID)
}

func (s *PostgresStore) ListByCredential(ctx context.Context, credentialID id.CredentialID) ([]*models.Contract, error) {
	return s.list(ctx, `WHERE credential_id = $1`, credentialID)
}

func (s *PostgresStore) list(ctx context.Context, where string, arg any) ([]*models.Contract, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT`+contractColumns+` FROM contracts `+where+` ORDER BY id`, arg)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	var out []*models.Contract
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		out = append(out, contract)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contracts: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (*models.Contract, error) {
	var (
		contract        models.Contract
		employee        string
		arbitrator      string
		durationSeconds int64
		startTime       sql.NullTime
		status          string
	)
	err := row.Scan(
		&contract.ID,
		&contract.CompanyID,
		&contract.CredentialID,
		&employee,
		&contract.Salary,
		&durationSeconds,
		&startTime,
		&contract.Responsibilities,
		&contract.TerminationConditions,
		&status,
		&contract.Escrow.Balance,
		&contract.Escrow.Deposited,
		&contract.Escrow.Released,
		&arbitrator,
		&contract.CreatedAt,
		&contract.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	contract.Employee = id.Identity(employee)
	contract.Arbitrator = id.Identity(arbitrator)
	contract.Duration = time.Duration(durationSeconds) * time.Second
	if startTime.Valid {
		contract.StartTime = startTime.Time
	}
	contract.Status = models.Status(status)
	return &contract, nil
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
