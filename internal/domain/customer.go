package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a single loan account. AccountNumber is the business key used
// by the collection front end; ID stays internal.
type Customer struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"account_number"`
	IssueDate     time.Time       `json:"issue_date"`
	InterestRate  decimal.Decimal `json:"interest_rate"`
	Tenure        int             `json:"tenure"`
	EMIDue        decimal.Decimal `json:"emi_due"`
}
