package postgres

import (
	"database/sql"
	"fmt"
)

// Migrate creates the ledger tables if they do not exist yet. Statements are
// idempotent so the bootstrap can run on every start.
func Migrate(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			id BIGSERIAL PRIMARY KEY,
			account_number TEXT UNIQUE NOT NULL,
			issue_date DATE NOT NULL,
			interest_rate NUMERIC(6,2) NOT NULL,
			tenure INTEGER NOT NULL,
			emi_due NUMERIC(14,2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id BIGSERIAL PRIMARY KEY,
			customer_id BIGINT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
			account_number TEXT NOT NULL,
			payment_amount NUMERIC(14,2) NOT NULL,
			payment_date TIMESTAMPTZ NOT NULL DEFAULT now(),
			status TEXT NOT NULL DEFAULT 'completed',
			idempotency_key TEXT UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_account_number ON payments(account_number)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_payment_date ON payments(payment_date)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
