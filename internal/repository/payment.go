package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"emi-collect/internal/domain"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, customer_id, account_number, payment_amount, payment_date, status, idempotency_key, created_at`

// Create inserts the payment and fills in its assigned id and created_at.
func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `
		INSERT INTO payments (customer_id, account_number, payment_amount, payment_date, status, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.CustomerID,
		p.AccountNumber,
		p.Amount,
		p.PaymentDate,
		p.Status,
		p.IdempotencyKey,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return &domain.StorageError{Op: "insert payment", Err: err}
	}
	return nil
}

// ListByAccountNumber returns the account's payments newest first. An unknown
// account yields an empty result, not an error.
func (r *PaymentRepository) ListByAccountNumber(ctx context.Context, accountNumber string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE account_number = $1 ORDER BY payment_date DESC`
	return r.list(ctx, query, accountNumber)
}

// ListByCustomerID returns all payments belonging to a customer, used as
// input to the balance calculation.
func (r *PaymentRepository) ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE customer_id = $1 ORDER BY payment_date DESC`
	return r.list(ctx, query, customerID)
}

// GetByIdempotencyKey resolves a previously recorded payment for a retried
// submission.
func (r *PaymentRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE idempotency_key = $1`

	var p domain.Payment
	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&p.ID,
		&p.CustomerID,
		&p.AccountNumber,
		&p.Amount,
		&p.PaymentDate,
		&p.Status,
		&p.IdempotencyKey,
		&p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("idempotency key %q: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get payment by idempotency key", Err: err}
	}
	return &p, nil
}

func (r *PaymentRepository) list(ctx context.Context, query string, arg any) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, &domain.StorageError{Op: "list payments", Err: err}
	}
	defer rows.Close()

	var out []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(
			&p.ID,
			&p.CustomerID,
			&p.AccountNumber,
			&p.Amount,
			&p.PaymentDate,
			&p.Status,
			&p.IdempotencyKey,
			&p.CreatedAt,
		); err != nil {
			return nil, &domain.StorageError{Op: "scan payment", Err: err}
		}
		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list payments", Err: err}
	}
	return out, nil
}
