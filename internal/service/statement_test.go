package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"emi-collect/internal/domain"

	"github.com/shopspring/decimal"
)

type mockStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (m *mockStorage) Save(ctx context.Context, fileName string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[fileName] = data
	return fileName, nil
}

func (m *mockStorage) URL(ctx context.Context, fileName string) (string, error) {
	return "/files/" + fileName, nil
}

func (m *mockStorage) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

func TestStatementStart_UnknownAccount(t *testing.T) {
	svc := NewStatementService(&mockCustomerRepo{}, &mockPaymentRepo{}, nil, &mockStorage{}, nil)

	_, err := svc.Start(context.Background(), "ACC999", nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatementStart_UnknownField(t *testing.T) {
	customers := &mockCustomerRepo{customers: []domain.Customer{testCustomer(1, "ACC001", "4500.00")}}
	svc := NewStatementService(customers, &mockPaymentRepo{}, nil, &mockStorage{}, nil)

	_, err := svc.Start(context.Background(), "ACC001", []string{"payment_date", "ssn"})

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestStatementStart_GeneratesWorkbook(t *testing.T) {
	customers := &mockCustomerRepo{customers: []domain.Customer{testCustomer(1, "ACC001", "4500.00")}}
	payments := &mockPaymentRepo{}
	for i := 0; i < 3; i++ {
		_ = payments.Create(context.Background(), &domain.Payment{
			CustomerID:    1,
			AccountNumber: "ACC001",
			Amount:        decimal.RequireFromString("1500.00"),
			PaymentDate:   time.Date(2024, time.July, 1+i, 10, 0, 0, 0, time.UTC),
			Status:        domain.PaymentStatusCompleted,
		})
	}

	storage := &mockStorage{}
	svc := NewStatementService(customers, payments, nil, storage, nil)

	exportID, err := svc.Start(context.Background(), "ACC001", nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !strings.HasPrefix(exportID, "statements:") {
		t.Errorf("unexpected export id %q", exportID)
	}

	// the export runs in the background; wait for the upload
	deadline := time.Now().Add(5 * time.Second)
	for storage.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for statement upload")
		}
		time.Sleep(10 * time.Millisecond)
	}

	storage.mu.Lock()
	defer storage.mu.Unlock()
	for name, data := range storage.files {
		if !strings.HasPrefix(name, "statement_ACC001_") || !strings.HasSuffix(name, ".xlsx") {
			t.Errorf("unexpected statement filename %q", name)
		}
		if len(data) == 0 {
			t.Error("expected non-empty workbook")
		}
	}
}
