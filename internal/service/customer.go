package service

import (
	"context"

	"emi-collect/internal/domain"
)

type CustomerRepository interface {
	List(ctx context.Context) ([]domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (*domain.Customer, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	ListByAccountNumber(ctx context.Context, accountNumber string) ([]domain.Payment, error)
	ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Payment, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error)
}

// CustomerService is the read side: customer lookups and payment history,
// composed with the balance calculation for presentation.
type CustomerService struct {
	customers CustomerRepository
	payments  PaymentRepository
}

func NewCustomerService(customers CustomerRepository, payments PaymentRepository) *CustomerService {
	return &CustomerService{customers: customers, payments: payments}
}

// List returns every customer, ordered by id, enriched with the derived
// balance fields. Balances are recomputed from current rows on every call.
func (s *CustomerService) List(ctx context.Context) ([]CustomerBalance, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CustomerBalance, 0, len(customers))
	for _, c := range customers {
		payments, err := s.payments.ListByCustomerID(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, CustomerBalance{
			Customer: c,
			Balance:  ComputeBalance(c.EMIDue, payments),
		})
	}
	return out, nil
}

// GetByID returns the bare customer record without derived balance fields;
// the account-number lookup is the enriched one.
func (s *CustomerService) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *CustomerService) GetByAccountNumber(ctx context.Context, accountNumber string) (*CustomerBalance, error) {
	customer, err := s.customers.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	payments, err := s.payments.ListByCustomerID(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	return &CustomerBalance{
		Customer: *customer,
		Balance:  ComputeBalance(customer.EMIDue, payments),
	}, nil
}

// History returns the account's payments newest first. No existence check is
// performed: an unknown account and an account with no payments both yield an
// empty list.
func (s *CustomerService) History(ctx context.Context, accountNumber string) ([]domain.Payment, error) {
	payments, err := s.payments.ListByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}
