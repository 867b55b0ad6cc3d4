package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"emi-collect/internal/domain"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = `id, account_number, issue_date, interest_rate, tenure, emi_due`

// List returns every customer ordered by id ascending.
func (r *CustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &domain.StorageError{Op: "list customers", Err: err}
	}
	defer rows.Close()

	var out []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(
			&c.ID,
			&c.AccountNumber,
			&c.IssueDate,
			&c.InterestRate,
			&c.Tenure,
			&c.EMIDue,
		); err != nil {
			return nil, &domain.StorageError{Op: "scan customer", Err: err}
		}
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list customers", Err: err}
	}
	return out, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.getOne(ctx, query, fmt.Sprintf("customer %d", id), id)
}

func (r *CustomerRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE account_number = $1`
	return r.getOne(ctx, query, fmt.Sprintf("account %q", accountNumber), accountNumber)
}

func (r *CustomerRepository) getOne(ctx context.Context, query, desc string, arg any) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&c.ID,
		&c.AccountNumber,
		&c.IssueDate,
		&c.InterestRate,
		&c.Tenure,
		&c.EMIDue,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", desc, domain.ErrNotFound)
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get " + desc, Err: err}
	}
	return &c, nil
}
