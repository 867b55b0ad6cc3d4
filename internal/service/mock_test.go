package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"emi-collect/internal/domain"
)

func errorsIsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// in-memory repositories for service tests

type mockCustomerRepo struct {
	customers []domain.Customer
}

func (m *mockCustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	out := make([]domain.Customer, len(m.customers))
	copy(out, m.customers)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	for _, c := range m.customers {
		if c.ID == id {
			cc := c
			return &cc, nil
		}
	}
	return nil, fmt.Errorf("customer %d: %w", id, domain.ErrNotFound)
}

func (m *mockCustomerRepo) GetByAccountNumber(ctx context.Context, accountNumber string) (*domain.Customer, error) {
	for _, c := range m.customers {
		if c.AccountNumber == accountNumber {
			cc := c
			return &cc, nil
		}
	}
	return nil, fmt.Errorf("account %q: %w", accountNumber, domain.ErrNotFound)
}

type mockPaymentRepo struct {
	payments []domain.Payment
	nextID   int64
}

func (m *mockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	m.nextID++
	p.ID = m.nextID
	p.CreatedAt = p.PaymentDate
	m.payments = append(m.payments, *p)
	return nil
}

func (m *mockPaymentRepo) ListByAccountNumber(ctx context.Context, accountNumber string) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range m.payments {
		if p.AccountNumber == accountNumber {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentDate.After(out[j].PaymentDate) })
	return out, nil
}

func (m *mockPaymentRepo) ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range m.payments {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentDate.After(out[j].PaymentDate) })
	return out, nil
}

func (m *mockPaymentRepo) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error) {
	for _, p := range m.payments {
		if p.IdempotencyKey != nil && *p.IdempotencyKey == key {
			pp := p
			return &pp, nil
		}
	}
	return nil, fmt.Errorf("idempotency key %q: %w", key, domain.ErrNotFound)
}
