package report

import (
	"context"
	"io"
)

type ReportService interface {
	// Monthly evaluates every active employee over a month (admin)
	Monthly(ctx context.Context, req MonthRequest) (MonthlyReport, error)

	// ExportMonthlyCSV writes the monthly report as CSV (admin)
	ExportMonthlyCSV(ctx context.Context, req MonthRequest, w io.Writer) error

	// History returns an employee's evaluated month, newest first, with an estimated payout
	History(ctx context.Context, req HistoryRequest) (HistoryResponse, error)
}
