package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"emi-collect/internal/clients"
	"emi-collect/internal/domain"

	"github.com/shopspring/decimal"
)

const idempotencyTTL = 24 * time.Hour

// RecordPaymentInput carries a payment submission. Date and Status are
// optional; Date defaults to the time of recording and Status to completed.
// IdempotencyKey is empty unless the caller opted in via the Idempotency-Key
// header.
type RecordPaymentInput struct {
	AccountNumber  string
	Amount         decimal.Decimal
	Date           *time.Time
	Status         string
	IdempotencyKey string
}

// PaymentService records payments against the ledger.
type PaymentService struct {
	customers CustomerRepository
	payments  PaymentRepository
	redis     *clients.RedisClient
	ws        *clients.WebSocketClient
}

func NewPaymentService(customers CustomerRepository, payments PaymentRepository, redis *clients.RedisClient, ws *clients.WebSocketClient) *PaymentService {
	return &PaymentService{customers: customers, payments: payments, redis: redis, ws: ws}
}

// Record validates the submission, resolves the customer by account number
// and persists one payment row. Without an idempotency key retried
// submissions create duplicate rows; with a key the previously recorded
// payment is returned instead.
func (s *PaymentService) Record(ctx context.Context, in RecordPaymentInput) (*domain.Payment, error) {
	if in.AccountNumber == "" {
		return nil, &domain.ValidationError{Field: "account_number", Message: "account number and payment amount are required"}
	}
	if !in.Amount.IsPositive() {
		return nil, &domain.ValidationError{Field: "payment_amount", Message: "payment amount must be a positive number"}
	}

	status := in.Status
	if status == "" {
		status = domain.PaymentStatusCompleted
	}
	if status != domain.PaymentStatusCompleted && status != domain.PaymentStatusPending {
		return nil, &domain.ValidationError{Field: "status", Message: "status must be completed or pending"}
	}

	if in.IdempotencyKey != "" {
		if p, ok := s.findRecorded(ctx, in.IdempotencyKey); ok {
			return p, nil
		}
	}

	customer, err := s.customers.GetByAccountNumber(ctx, in.AccountNumber)
	if err != nil {
		return nil, err
	}

	paymentDate := time.Now()
	if in.Date != nil {
		paymentDate = *in.Date
	}

	payment := &domain.Payment{
		CustomerID:    customer.ID,
		AccountNumber: in.AccountNumber,
		Amount:        in.Amount,
		PaymentDate:   paymentDate,
		Status:        status,
	}
	if in.IdempotencyKey != "" {
		key := in.IdempotencyKey
		payment.IdempotencyKey = &key
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" {
		s.cacheRecorded(ctx, in.IdempotencyKey, payment)
	}

	if s.ws != nil {
		_ = s.ws.NotifyPaymentRecorded(ctx, payment.AccountNumber, payment.ID, payment.Amount.StringFixed(2))
	}

	return payment, nil
}

// findRecorded resolves a retried submission: redis fast path first, then the
// unique idempotency_key column.
func (s *PaymentService) findRecorded(ctx context.Context, key string) (*domain.Payment, bool) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, idempotencyCacheKey(key))
		if err == nil {
			var p domain.Payment
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, true
			}
		} else if !clients.IsNil(err) {
			log.Printf("idempotency cache read error: %v", err)
		}
	}

	p, err := s.payments.GetByIdempotencyKey(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("idempotency lookup error: %v", err)
		}
		return nil, false
	}
	return p, true
}

func (s *PaymentService) cacheRecorded(ctx context.Context, key string, p *domain.Payment) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, idempotencyCacheKey(key), string(data), idempotencyTTL); err != nil {
		log.Printf("idempotency cache write error: %v", err)
	}
}

func idempotencyCacheKey(key string) string {
	return fmt.Sprintf("idempotency:%s", key)
}
