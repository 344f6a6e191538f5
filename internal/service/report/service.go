package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/presenz/presenz-backend-go/internal/domain/attendance"
	"github.com/presenz/presenz-backend-go/internal/domain/employee"
	"github.com/presenz/presenz-backend-go/internal/domain/report"
	"github.com/presenz/presenz-backend-go/internal/pkg/metrics"
	employeeService "github.com/presenz/presenz-backend-go/internal/service/employee"
	"github.com/presenz/presenz-backend-go/internal/service/payroll"
	"github.com/presenz/presenz-backend-go/internal/service/status"
)

var (
	summaryHeader = []string{"Employee Name", "Email", "Shift", "Present Days", "Half Days", "Absent Days", "Late Days", "Weekly Offs", "Holidays", "Total Hours"}
	detailHeader  = []string{"Employee", "Date", "Status", "Punch In", "Punch Out", "Hours"}
)

type ReportServiceImpl struct {
	loader  status.Loader
	metrics *metrics.Metrics
	loc     *time.Location
	now     func() time.Time
}

func NewReportService(loader status.Loader, m *metrics.Metrics, loc *time.Location) report.ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportServiceImpl{
		loader:  loader,
		metrics: m,
		loc:     loc,
		now:     time.Now,
	}
}

func (s *ReportServiceImpl) today() time.Time {
	return s.now().In(s.loc)
}

// Monthly implements report.ReportService.
func (s *ReportServiceImpl) Monthly(ctx context.Context, req report.MonthRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	today := s.today()
	year, month := req.Period(today)
	from, to := status.MonthRange(year, month, s.loc)

	staff, snap, err := s.loader.Load(ctx, from, to)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	out := report.MonthlyReport{
		Month:       from.Format(attendance.MonthLayout),
		DaysInMonth: status.DaysInMonth(year, month),
		GeneratedAt: s.now(),
		Employees:   make([]report.EmployeeMonthly, 0, len(staff)),
	}
	for _, emp := range staff {
		out.Employees = append(out.Employees, report.EmployeeMonthly{
			EmployeeID:  emp.ID,
			EmployeeKey: emp.Key(),
			Name:        emp.Name,
			Email:       emp.Email,
			ShiftName:   status.ResolveRule(emp, snap.Settings.RuleSets).Name,
			Summary:     status.AggregateRange(emp, from, to, today, snap),
		})
	}
	return out, nil
}

// ExportMonthlyCSV implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthlyCSV(ctx context.Context, req report.MonthRequest, w io.Writer) error {
	monthly, err := s.Monthly(ctx, req)
	if err != nil {
		return err
	}

	if err := WriteCSV(w, monthly); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	s.metrics.Export("monthly_report", "csv")
	slog.Info("monthly report exported", "month", monthly.Month, "employees", len(monthly.Employees))
	return nil
}

// WriteCSV renders the summary table, a blank line, then per-day detail rows.
func WriteCSV(w io.Writer, monthly report.MonthlyReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(summaryHeader); err != nil {
		return err
	}
	for _, e := range monthly.Employees {
		sum := e.Summary
		if err := cw.Write([]string{
			e.Name,
			e.Email,
			e.ShiftName,
			formatDays(sum.PresentDays),
			strconv.Itoa(sum.HalfDays),
			strconv.Itoa(sum.AbsentDays),
			strconv.Itoa(sum.LateDays),
			strconv.Itoa(sum.WeeklyOffDays),
			strconv.Itoa(sum.HolidayDays),
			strconv.FormatFloat(sum.TotalHours, 'f', 1, 64),
		}); err != nil {
			return err
		}
	}

	if err := cw.Write(nil); err != nil {
		return err
	}
	if err := cw.Write(detailHeader); err != nil {
		return err
	}
	for _, e := range monthly.Employees {
		for _, d := range e.Summary.Days {
			if err := cw.Write([]string{e.Name, d.Date, label(d.Verdict), d.PunchIn, d.PunchOut, formatHours(d.Hours)}); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func label(v attendance.Verdict) string {
	if v.Status == attendance.CategoryUpcoming {
		return status.NoPunch
	}
	if v.Label != "" {
		return v.Label
	}
	return string(v.Status)
}

func formatHours(h *float64) string {
	if h == nil || *h <= 0 {
		return status.NoPunch
	}
	return strconv.FormatFloat(*h, 'f', 1, 64)
}

func formatDays(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

// History implements report.ReportService. An empty EmployeeKey means the caller.
func (s *ReportServiceImpl) History(ctx context.Context, req report.HistoryRequest) (report.HistoryResponse, error) {
	if err := req.Validate(); err != nil {
		return report.HistoryResponse{}, err
	}

	var (
		emp employee.Employee
		err error
	)
	if req.EmployeeKey == "" {
		emp, err = employeeService.Current(ctx, s.loader.Staff)
	} else {
		emp, err = s.loader.Staff.GetByKey(ctx, req.EmployeeKey)
	}
	if err != nil {
		return report.HistoryResponse{}, err
	}

	today := s.today()
	year, month := req.Period(today)
	from, to := status.MonthRange(year, month, s.loc)

	_, snap, err := s.loader.Load(ctx, from, to)
	if err != nil {
		return report.HistoryResponse{}, err
	}

	agg := status.AggregateRange(emp, from, to, today, snap)
	salary := payroll.ParseSalary(emp.Salary)
	pay := payroll.ComputePayout(salary, agg.PresentDays, status.DaysInMonth(year, month))

	return report.HistoryResponse{
		Month:           from.Format(attendance.MonthLayout),
		EmployeeKey:     emp.Key(),
		Name:            emp.Name,
		Salary:          salary.String(),
		DailyRate:       pay.DailyRate.String(),
		EstimatedPayout: pay.Payout.String(),
		PresentDays:     agg.PresentDays,
		AbsentDays:      agg.AbsentDays,
		Days:            agg.History(),
	}, nil
}
