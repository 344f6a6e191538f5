package payroll

import (
	"bytes"
	"context"
)

type PayrollService interface {
	// Summary computes every active employee's payout for a month
	Summary(ctx context.Context, req PayrollRequest) (PayrollSummary, error)

	// ExportXLSX renders the month's payroll as a workbook and returns it with a file name
	ExportXLSX(ctx context.Context, req PayrollRequest) (*bytes.Buffer, string, error)
}
