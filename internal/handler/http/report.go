package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/presenz/presenz-backend-go/internal/domain/report"
	"github.com/presenz/presenz-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	GetMonthlyReport(w http.ResponseWriter, r *http.Request)
	ExportMonthlyReport(w http.ResponseWriter, r *http.Request)
	GetMyHistory(w http.ResponseWriter, r *http.Request)
	GetEmployeeHistory(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func monthRequest(r *http.Request) report.MonthRequest {
	return report.MonthRequest{Month: r.URL.Query().Get("month")}
}

// GetMonthlyReport handles GET /reports/monthly
func (h *reportHandlerImpl) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	req := monthRequest(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.Monthly(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportMonthlyReport handles GET /reports/monthly/export
func (h *reportHandlerImpl) ExportMonthlyReport(w http.ResponseWriter, r *http.Request) {
	req := monthRequest(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// Buffer so a failure can still be reported as JSON
	var buf bytes.Buffer
	if err := h.reportService.ExportMonthlyCSV(r.Context(), req, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	month := req.Month
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="Attendance_Report_%s.csv"`, month))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// GetMyHistory handles GET /reports/history
func (h *reportHandlerImpl) GetMyHistory(w http.ResponseWriter, r *http.Request) {
	h.history(w, r, "")
}

// GetEmployeeHistory handles GET /reports/history/{employeeKey}
func (h *reportHandlerImpl) GetEmployeeHistory(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "employeeKey")
	if key == "" {
		response.BadRequest(w, "Employee key is required", nil)
		return
	}
	h.history(w, r, key)
}

func (h *reportHandlerImpl) history(w http.ResponseWriter, r *http.Request, employeeKey string) {
	req := report.HistoryRequest{MonthRequest: monthRequest(r), EmployeeKey: employeeKey}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.History(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
