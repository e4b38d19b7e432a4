package report

import (
	"context"

	"github.com/internhub/internship-backend-go/internal/domain/user"
)

type ReportService interface {
	// InternSummaries aggregates per-intern figures. Supervisors are scoped
	// to their directly assigned interns.
	InternSummaries(ctx context.Context, principal user.Principal, filter SummaryFilter) ([]InternSummary, error)

	// InternSummariesCSV renders the same aggregation as a CSV document.
	InternSummariesCSV(ctx context.Context, principal user.Principal, filter SummaryFilter) ([]byte, error)
}
