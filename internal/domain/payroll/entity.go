package payroll

import "github.com/shopspring/decimal"

// Payout is the result of applying a daily rate to credited days.
type Payout struct {
	DailyRate decimal.Decimal `json:"daily_rate"`
	Payout    decimal.Decimal `json:"payout"`
}
