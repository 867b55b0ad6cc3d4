package service

import (
	"time"

	"emi-collect/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	EMIStatusPaid    = "paid"
	EMIStatusPending = "pending"
)

// Balance is the derived monthly payment status for a customer.
type Balance struct {
	TotalPaidThisMonth decimal.Decimal `json:"total_paid_this_month"`
	RemainingEMI       decimal.Decimal `json:"remaining_emi"`
	EMIStatus          string          `json:"emi_status"`
}

// CustomerBalance is a customer enriched with its derived balance fields.
type CustomerBalance struct {
	domain.Customer
	Balance
}

// ComputeBalance sums the customer's completed payments that fall in the
// current calendar month and floors emi_due minus that total at zero. The
// month is wall-clock, not loan-cycle-relative.
func ComputeBalance(emiDue decimal.Decimal, payments []domain.Payment) Balance {
	return computeBalanceAt(emiDue, payments, time.Now())
}

func computeBalanceAt(emiDue decimal.Decimal, payments []domain.Payment, now time.Time) Balance {
	total := decimal.Zero
	for _, p := range payments {
		if p.Status != domain.PaymentStatusCompleted {
			continue
		}
		if p.PaymentDate.Year() != now.Year() || p.PaymentDate.Month() != now.Month() {
			continue
		}
		total = total.Add(p.Amount)
	}

	remaining := emiDue.Sub(total).Round(2)
	status := EMIStatusPending
	if !remaining.IsPositive() {
		// overpayment floors at zero, no carry-forward credit
		remaining = decimal.Zero
		status = EMIStatusPaid
	}

	return Balance{
		TotalPaidThisMonth: total,
		RemainingEMI:       remaining,
		EMIStatus:          status,
	}
}
