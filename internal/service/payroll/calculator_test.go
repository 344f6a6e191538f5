package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseSalary(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"30000", "30000"},
		{"₹30,000", "30000"},
		{"$ 45,500.50", "45500.5"},
		{"Rs. 12000", "12000"},
		{"", "0"},
		{"negotiable", "0"},
		{"1.2.3", "1.2"},
		{"-500", "-500"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSalary(tt.raw).String())
		})
	}
}

func TestComputePayout(t *testing.T) {
	tests := []struct {
		name        string
		salary      string
		presentDays float64
		daysInMonth int
		wantRate    string
		wantPayout  string
	}{
		{"scenario E", "30000", 22, 30, "1000", "22000"},
		{"half days count", "30000", 21.5, 30, "1000", "21500"},
		{"rate rounds half up", "31000", 1, 31, "1000", "1000"},
		{"rate rounds fraction", "25000", 10, 31, "806", "8060"},
		{"rate rounds at half", "45", 1, 30, "2", "2"},
		{"payout rounds at half", "30", 0.5, 30, "1", "1"},
		{"zero salary", "0", 20, 30, "0", "0"},
		{"negative salary", "-100", 20, 30, "0", "0"},
		{"no days in month", "30000", 20, 0, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePayout(decimal.RequireFromString(tt.salary), tt.presentDays, tt.daysInMonth)

			assert.Equal(t, tt.wantRate, got.DailyRate.String())
			assert.Equal(t, tt.wantPayout, got.Payout.String())
		})
	}
}
