package payroll

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/presenz/presenz-backend-go/internal/domain/attendance"
	"github.com/presenz/presenz-backend-go/internal/domain/payroll"
	"github.com/presenz/presenz-backend-go/internal/pkg/metrics"
	"github.com/presenz/presenz-backend-go/internal/pkg/spreadsheet"
	"github.com/presenz/presenz-backend-go/internal/service/status"
)

type PayrollServiceImpl struct {
	loader  status.Loader
	metrics *metrics.Metrics
	loc     *time.Location
	now     func() time.Time
}

func NewPayrollService(loader status.Loader, m *metrics.Metrics, loc *time.Location) payroll.PayrollService {
	if loc == nil {
		loc = time.Local
	}
	return &PayrollServiceImpl{
		loader:  loader,
		metrics: m,
		loc:     loc,
		now:     time.Now,
	}
}

// Summary implements payroll.PayrollService.
func (s *PayrollServiceImpl) Summary(ctx context.Context, req payroll.PayrollRequest) (payroll.PayrollSummary, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollSummary{}, err
	}

	today := s.now().In(s.loc)
	year, month := req.Period(today)
	from, to := status.MonthRange(year, month, s.loc)
	days := status.DaysInMonth(year, month)

	staff, snap, err := s.loader.Load(ctx, from, to)
	if err != nil {
		return payroll.PayrollSummary{}, err
	}

	summary := payroll.PayrollSummary{
		Month:       from.Format(attendance.MonthLayout),
		DaysInMonth: days,
		GeneratedAt: s.now(),
		Rows:        make([]payroll.PayrollRow, 0, len(staff)),
		Total:       decimal.Zero,
	}
	for _, emp := range staff {
		agg := status.AggregateRange(emp, from, to, today, snap)
		salary := ParseSalary(emp.Salary)
		pay := ComputePayout(salary, agg.PresentDays, days)

		summary.Rows = append(summary.Rows, payroll.PayrollRow{
			EmployeeID:  emp.ID,
			EmployeeKey: emp.Key(),
			Name:        emp.Name,
			Email:       emp.Email,
			Role:        emp.Role,
			Salary:      salary,
			DailyRate:   pay.DailyRate,
			PresentDays: agg.PresentDays,
			AbsentDays:  agg.AbsentDays,
			HalfDays:    agg.HalfDays,
			Payout:      pay.Payout,
		})
		summary.Total = summary.Total.Add(pay.Payout)
	}
	return summary, nil
}

// ExportXLSX implements payroll.PayrollService.
func (s *PayrollServiceImpl) ExportXLSX(ctx context.Context, req payroll.PayrollRequest) (*bytes.Buffer, string, error) {
	summary, err := s.Summary(ctx, req)
	if err != nil {
		return nil, "", err
	}

	rows := make([][]any, 0, len(summary.Rows)+1)
	for _, r := range summary.Rows {
		rows = append(rows, []any{
			r.Name,
			r.Email,
			r.Role,
			r.Salary.InexactFloat64(),
			r.DailyRate.InexactFloat64(),
			r.PresentDays,
			r.AbsentDays,
			r.HalfDays,
			r.Payout.InexactFloat64(),
		})
	}
	rows = append(rows, []any{"Total", "", "", "", "", "", "", "", summary.Total.InexactFloat64()})

	buf, err := spreadsheet.Build(spreadsheet.Sheet{
		Name:   "Payroll " + summary.Month,
		Header: []string{"Employee", "Email", "Role", "Salary", "Daily Rate", "Present Days", "Absent Days", "Half Days", "Payout"},
		Rows:   rows,
		Widths: []float64{28, 30, 20, 14, 12, 14, 12, 10, 14},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to build payroll workbook: %w", err)
	}

	s.metrics.Export("payroll", "xlsx")
	slog.Info("payroll exported", "month", summary.Month, "employees", len(summary.Rows), "total", summary.Total.String())
	return buf, fmt.Sprintf("Payroll_%s.xlsx", summary.Month), nil
}
