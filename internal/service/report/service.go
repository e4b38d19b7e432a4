package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"github.com/internhub/internship-backend-go/internal/domain/report"
	"github.com/internhub/internship-backend-go/internal/domain/user"
)

type ReportServiceImpl struct {
	report.ReportRepository
}

func NewReportService(repo report.ReportRepository) *ReportServiceImpl {
	return &ReportServiceImpl{ReportRepository: repo}
}

func (s *ReportServiceImpl) InternSummaries(ctx context.Context, principal user.Principal, filter report.SummaryFilter) ([]report.InternSummary, error) {
	if !principal.Can(user.PermissionReportsView) {
		return nil, user.ErrPermissionDenied
	}

	// Supervisors only ever report on their own interns.
	if principal.Role == user.RoleSupervisor && !principal.IsManagerOrAdmin() {
		filter.SupervisorID = &principal.UserID
	}

	return s.ReportRepository.InternSummaries(ctx, filter)
}

var csvHeader = []string{
	"intern_id",
	"intern_name",
	"branch",
	"attendance_total",
	"attendance_approved",
	"attendance_pending",
	"attendance_rejected",
	"absence_days_approved",
	"assessment_count",
	"average_score",
}

func (s *ReportServiceImpl) InternSummariesCSV(ctx context.Context, principal user.Principal, filter report.SummaryFilter) ([]byte, error) {
	summaries, err := s.InternSummaries(ctx, principal, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, row := range summaries {
		branchName := ""
		if row.BranchName != nil {
			branchName = *row.BranchName
		}
		avgScore := ""
		if row.AverageScore != nil {
			avgScore = strconv.FormatFloat(*row.AverageScore, 'f', 2, 64)
		}
		record := []string{
			row.InternID,
			row.InternName,
			branchName,
			strconv.Itoa(row.AttendanceTotal),
			strconv.Itoa(row.AttendanceApproved),
			strconv.Itoa(row.AttendancePending),
			strconv.Itoa(row.AttendanceRejected),
			strconv.Itoa(row.AbsenceDaysApproved),
			strconv.Itoa(row.AssessmentCount),
			avgScore,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
