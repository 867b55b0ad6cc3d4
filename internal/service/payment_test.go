package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"emi-collect/internal/domain"

	"github.com/shopspring/decimal"
)

func newPaymentService(customers *mockCustomerRepo, payments *mockPaymentRepo) *PaymentService {
	// redis and websocket are optional collaborators
	return NewPaymentService(customers, payments, nil, nil)
}

func TestRecord_Success(t *testing.T) {
	customers := &mockCustomerRepo{customers: []domain.Customer{testCustomer(1, "ACC001", "4500.00")}}
	payments := &mockPaymentRepo{}
	svc := newPaymentService(customers, payments)

	p, err := svc.Record(context.Background(), RecordPaymentInput{
		AccountNumber: "ACC001",
		Amount:        decimal.RequireFromString("4500.00"),
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	if p.ID == 0 {
		t.Error("expected assigned payment id")
	}
	if p.CustomerID != 1 {
		t.Errorf("expected customer id 1, got %d", p.CustomerID)
	}
	if p.Status != domain.PaymentStatusCompleted {
		t.Errorf("expected default status completed, got %s", p.Status)
	}
	if p.PaymentDate.IsZero() {
		t.Error("expected payment date to default to now")
	}
	if len(payments.payments) != 1 {
		t.Fatalf("expected 1 persisted payment, got %d", len(payments.payments))
	}
}

func TestRecord_ExplicitDateAndStatus(t *testing.T) {
	customers := &mockCustomerRepo{customers: []domain.Customer{testCustomer(1, "ACC001", "4500.00")}}
	payments := &mockPaymentRepo{}
	svc := newPaymentService(customers, payments)

	date := time.Date(2024, time.June, 1, 10, 30, 0, 0, time.UTC)
	p, err := svc.Record(context.Background(), RecordPaymentInput{
		AccountNumber: "ACC001",
		Amount:        decimal.RequireFromString("1000.00"),
		Date:          &date,
		Status:        domain.PaymentStatusPending,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	if !p.PaymentDate.Equal(date) {
		t.Errorf("expected payment date %s, got %s", date, p.PaymentDate)
	}
	if p.Status != domain.PaymentStatusPending {
		t.Errorf("expected status pending, got %s", p.Status)
	}
}

func TestRecord_MissingAccountNumber(t *testing.T) {
	svc := newPaymentService(&mockCustomerRepo{}, &mockPaymentRepo{})

	_, err := svc.Record(context.Background(), RecordPaymentInput{
		Amount: decimal.RequireFromString("100.00"),
	})

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestRecord_NonPositiveAmount(t *testing.T) {
	customers := &mockCustomerRepo{customers: []domain.Customer{testCustomer(1, "ACC001", "4500.00")}}
	payments := &mockPaymentRepo{}
	svc := newPaymentService(customers, payments)

	for _, amount := range []string{"-10", "0"} {
		_, err := svc.Record(context.Background(), RecordPaymentInput{
			AccountNumber: "ACC001",
			Amount:        decimal.RequireFromString(amount),
		})

		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("amount %s: expected ValidationError, got %v", amount, err)
		}
	}

	if len(payments.payments) != 0 {
		t.Fatalf("rejected submissions must persist nothing, got %d rows", len(payments.payments))
	}
}

func TestRecord_InvalidStatus(t *testing.T) {
	customers := &mockCustomerRepo{customers: []domain.Customer{testCustomer(1, "ACC001", "4500.00")}}
	svc := newPaymentService(customers, &mockPaymentRepo{})

	_, err := svc.Record(context.Background(), RecordPaymentInput{
		AccountNumber: "ACC001",
		Amount:        decimal.RequireFromString("100.00"),
		Status:        "reversed",
	})

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestRecord_UnknownAccount(t *testing.T) {
	payments := &mockPaymentRepo{}
	svc := newPaymentService(&mockCustomerRepo{}, payments)

	_, err := svc.Record(context.Background(), RecordPaymentInput{
		AccountNumber: "ACC999",
		Amount:        decimal.RequireFromString("100.00"),
	})

	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(payments.payments) != 0 {
		t.Fatalf("unknown account must persist nothing, got %d rows", len(payments.payments))
	}
}

func TestRecord_DuplicatesWithoutIdempotencyKey(t *testing.T) {
	customers := &mockCustomerRepo{customers: []domain.Customer{testCustomer(1, "ACC001", "4500.00")}}
	payments := &mockPaymentRepo{}
	svc := newPaymentService(customers, payments)

	in := RecordPaymentInput{
		AccountNumber: "ACC001",
		Amount:        decimal.RequireFromString("100.00"),
	}
	if _, err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("Record: %v", err)
	}

	// at-least-once: retries without a key create duplicates
	if len(payments.payments) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(payments.payments))
	}
}

func TestRecord_IdempotencyKeyReturnsExisting(t *testing.T) {
	customers := &mockCustomerRepo{customers: []domain.Customer{testCustomer(1, "ACC001", "4500.00")}}
	payments := &mockPaymentRepo{}
	svc := newPaymentService(customers, payments)

	in := RecordPaymentInput{
		AccountNumber:  "ACC001",
		Amount:         decimal.RequireFromString("100.00"),
		IdempotencyKey: "retry-abc",
	}

	first, err := svc.Record(context.Background(), in)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	second, err := svc.Record(context.Background(), in)
	if err != nil {
		t.Fatalf("Record retry: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("retry should return the original payment, got ids %d and %d", first.ID, second.ID)
	}
	if len(payments.payments) != 1 {
		t.Fatalf("expected 1 persisted row, got %d", len(payments.payments))
	}
}
