// Package postgres owns the database handle and schema for the service.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Open connects to PostgreSQL and verifies the connection.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Schema is the full DDL. Idempotent so startup can apply it
// unconditionally; real deployments run it through their migration
// pipeline instead.
const Schema = `
CREATE TABLE IF NOT EXISTS companies (
	id              BIGSERIAL PRIMARY KEY,
	name            TEXT        NOT NULL,
	industry        TEXT        NOT NULL DEFAULT '',
	owner_identity  TEXT        NOT NULL,
	active          BOOLEAN     NOT NULL DEFAULT TRUE,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS credentials (
	id              BIGSERIAL PRIMARY KEY,
	owner_identity  TEXT        NOT NULL UNIQUE,
	company_id      BIGINT      NOT NULL REFERENCES companies(id),
	metadata_ref    TEXT        NOT NULL DEFAULT '',
	locked          BOOLEAN     NOT NULL DEFAULT TRUE,
	issued_at       TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS company_employees (
	company_id      BIGINT NOT NULL REFERENCES companies(id),
	credential_id   BIGINT NOT NULL REFERENCES credentials(id),
	added_at        TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (company_id, credential_id)
);

CREATE TABLE IF NOT EXISTS contracts (
	id                      BIGSERIAL PRIMARY KEY,
	company_id              BIGINT      NOT NULL REFERENCES companies(id),
	credential_id           BIGINT      NOT NULL REFERENCES credentials(id),
	employee_identity       TEXT        NOT NULL,
	salary                  BIGINT      NOT NULL,
	duration_seconds        BIGINT      NOT NULL,
	start_time              TIMESTAMPTZ,
	responsibilities        TEXT        NOT NULL DEFAULT '',
	termination_conditions  TEXT        NOT NULL DEFAULT '',
	status                  TEXT        NOT NULL,
	balance                 BIGINT      NOT NULL DEFAULT 0,
	deposited               BIGINT      NOT NULL DEFAULT 0,
	released                BIGINT      NOT NULL DEFAULT 0,
	arbitrator_identity     TEXT        NOT NULL,
	created_at              TIMESTAMPTZ NOT NULL,
	updated_at              TIMESTAMPTZ NOT NULL,
	CONSTRAINT contracts_balance_non_negative CHECK (balance >= 0),
	CONSTRAINT contracts_conservation CHECK (balance = deposited - released)
);
CREATE INDEX IF NOT EXISTS contracts_company_idx ON contracts (company_id);
CREATE INDEX IF NOT EXISTS contracts_credential_idx ON contracts (credential_id);

CREATE TABLE IF NOT EXISTS reviews (
	id                BIGSERIAL PRIMARY KEY,
	contract_id       BIGINT      NOT NULL REFERENCES contracts(id),
	rating            INT         NOT NULL,
	comments          TEXT        NOT NULL DEFAULT '',
	reviewer_identity TEXT        NOT NULL,
	submitted_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS reviews_contract_idx ON reviews (contract_id);
`

// EnsureSchema applies the DDL.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
