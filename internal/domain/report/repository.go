package report

import "context"

type ReportRepository interface {
	InternSummaries(ctx context.Context, filter SummaryFilter) ([]InternSummary, error)
}
