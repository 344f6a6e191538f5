package payroll

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/presenz/presenz-backend-go/internal/domain/payroll"
)

var amountPattern = regexp.MustCompile(`-?\d+(\.\d+)?`)

// ParseSalary reads a salary entered free-form, ignoring currency symbols,
// thousands separators and spaces. Anything without a number is zero.
func ParseSalary(raw string) decimal.Decimal {
	cleaned := strings.ReplaceAll(raw, ",", "")
	match := amountPattern.FindString(cleaned)
	if match == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ComputePayout derives a whole-unit daily rate from the monthly salary and
// multiplies it by the credited days, rounding half away from zero at each step.
func ComputePayout(salary decimal.Decimal, presentDays float64, daysInMonth int) payroll.Payout {
	if daysInMonth <= 0 || !salary.IsPositive() {
		return payroll.Payout{DailyRate: decimal.Zero, Payout: decimal.Zero}
	}

	rate := salary.Div(decimal.NewFromInt(int64(daysInMonth))).Round(0)
	payout := rate.Mul(decimal.NewFromFloat(presentDays)).Round(0)

	return payroll.Payout{DailyRate: rate, Payout: payout}
}
