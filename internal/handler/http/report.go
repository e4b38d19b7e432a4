package http

import (
	"net/http"
	"time"

	"github.com/internhub/internship-backend-go/internal/domain/report"
	"github.com/internhub/internship-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	InternSummaries(w http.ResponseWriter, r *http.Request)
	InternSummariesCSV(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// InternSummaries implements ReportHandler.
func (h *reportHandlerImpl) InternSummaries(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.InternSummaries(r.Context(), principal, parseSummaryFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// InternSummariesCSV implements ReportHandler.
func (h *reportHandlerImpl) InternSummariesCSV(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	data, err := h.reportService.InternSummariesCSV(r.Context(), principal, parseSummaryFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="intern-summaries.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func parseSummaryFilter(r *http.Request) report.SummaryFilter {
	filter := report.SummaryFilter{}

	if branchID := r.URL.Query().Get("branch_id"); branchID != "" {
		filter.BranchID = &branchID
	}
	if supervisorID := r.URL.Query().Get("supervisor_id"); supervisorID != "" {
		filter.SupervisorID = &supervisorID
	}
	if from := r.URL.Query().Get("date_from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.DateFrom = &t
		}
	}
	if to := r.URL.Query().Get("date_to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.DateTo = &t
		}
	}
	return filter
}
