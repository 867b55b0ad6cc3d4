package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
)

// Payment is one recorded installment payment. AccountNumber is denormalized
// from the owning customer at recording time. Rows are never updated or
// deleted once written.
type Payment struct {
	ID            int64           `json:"id"`
	CustomerID    int64           `json:"customer_id"`
	AccountNumber string          `json:"account_number"`
	Amount        decimal.Decimal `json:"payment_amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	Status        string          `json:"status"`

	// Set only when the caller submitted an Idempotency-Key header.
	IdempotencyKey *string `json:"idempotency_key,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
