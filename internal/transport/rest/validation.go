package rest

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"emi-collect/internal/domain"
	"emi-collect/internal/service"

	"github.com/shopspring/decimal"
)

type rawPaymentRequest struct {
	AccountNumber string      `json:"account_number"`
	PaymentAmount interface{} `json:"payment_amount"`
	PaymentDate   interface{} `json:"payment_date"`
	Status        string      `json:"status"`
}

var paymentDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ValidatePaymentRequest parses and validates JSON input for payment
// submission. payment_amount may arrive as a JSON number or a numeric string;
// payment_date accepts the common date layouts; the Idempotency-Key header is
// optional.
func ValidatePaymentRequest(r *http.Request) (*service.RecordPaymentInput, error) {
	var raw rawPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil && err != io.EOF {
		return nil, err
	}

	if raw.AccountNumber == "" || raw.PaymentAmount == nil {
		return nil, &domain.ValidationError{Field: "account_number", Message: "Account number and payment amount are required"}
	}

	amount, err := toDecimal(raw.PaymentAmount)
	if err != nil {
		return nil, err
	}

	date, err := toPaymentDate(raw.PaymentDate)
	if err != nil {
		return nil, err
	}

	return &service.RecordPaymentInput{
		AccountNumber:  raw.AccountNumber,
		Amount:         amount,
		Date:           date,
		Status:         raw.Status,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	}, nil
}

func toDecimal(v interface{}) (decimal.Decimal, error) {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t), nil
	case string:
		d, err := decimal.NewFromString(t)
		if err != nil {
			return decimal.Zero, &domain.ValidationError{Field: "payment_amount", Message: "payment_amount must be a number"}
		}
		return d, nil
	default:
		return decimal.Zero, &domain.ValidationError{Field: "payment_amount", Message: "payment_amount must be a number"}
	}
}

func toPaymentDate(v interface{}) (*time.Time, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		if t == "" {
			return nil, nil
		}
		for _, layout := range paymentDateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return &parsed, nil
			}
		}
		return nil, &domain.ValidationError{Field: "payment_date", Message: "payment_date must be a valid date"}
	default:
		return nil, &domain.ValidationError{Field: "payment_date", Message: "payment_date must be a valid date"}
	}
}
