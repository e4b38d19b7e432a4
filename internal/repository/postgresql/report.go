package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/internhub/internship-backend-go/internal/domain/report"
	"github.com/internhub/internship-backend-go/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepository{db: db}
}

// InternSummaries implements report.ReportRepository. Counts are computed in
// one pass with filtered aggregates; the optional date range narrows which
// attendance and absence rows count.
func (r *reportRepository) InternSummaries(ctx context.Context, filter report.SummaryFilter) ([]report.InternSummary, error) {
	q := GetQuerier(ctx, r.db)

	var conds []string
	var args []interface{}

	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		conds = append(conds, fmt.Sprintf("ip.branch_id = $%d", len(args)))
	}
	if filter.SupervisorID != nil {
		args = append(args, *filter.SupervisorID)
		conds = append(conds, fmt.Sprintf("ip.supervisor_id = $%d", len(args)))
	}

	dateFromIdx, dateToIdx := 0, 0
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		dateFromIdx = len(args)
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		dateToIdx = len(args)
	}

	attendanceRange := ""
	absenceRange := ""
	if dateFromIdx > 0 {
		attendanceRange += fmt.Sprintf(" AND a.check_in_date >= $%d", dateFromIdx)
		absenceRange += fmt.Sprintf(" AND ab.end_date >= $%d", dateFromIdx)
	}
	if dateToIdx > 0 {
		attendanceRange += fmt.Sprintf(" AND a.check_in_date <= $%d", dateToIdx)
		absenceRange += fmt.Sprintf(" AND ab.start_date <= $%d", dateToIdx)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT
			ip.id,
			u.first_name || ' ' || u.last_name AS intern_name,
			b.name AS branch_name,
			COALESCE(att.total, 0),
			COALESCE(att.approved, 0),
			COALESCE(att.pending, 0),
			COALESCE(att.rejected, 0),
			COALESCE(abs.days_approved, 0),
			COALESCE(ass.count, 0),
			ass.avg_score
		FROM intern_profiles ip
		JOIN users u ON u.id = ip.user_id
		LEFT JOIN branches b ON b.id = ip.branch_id
		LEFT JOIN LATERAL (
			SELECT
				COUNT(*) AS total,
				COUNT(*) FILTER (WHERE a.approval_status = 'approved') AS approved,
				COUNT(*) FILTER (WHERE a.approval_status = 'pending') AS pending,
				COUNT(*) FILTER (WHERE a.approval_status = 'rejected') AS rejected
			FROM attendances a
			WHERE a.intern_id = ip.id%s
		) att ON TRUE
		LEFT JOIN LATERAL (
			SELECT COALESCE(SUM(ab.end_date - ab.start_date + 1), 0) AS days_approved
			FROM absence_requests ab
			WHERE ab.intern_id = ip.id AND ab.status = 'approved'%s
		) abs ON TRUE
		LEFT JOIN LATERAL (
			SELECT
				COUNT(*) AS count,
				AVG(pa.supervisor_score) FILTER (WHERE pa.supervisor_score IS NOT NULL) AS avg_score
			FROM performance_assessments pa
			WHERE pa.intern_id = ip.id
		) ass ON TRUE
		%s
		ORDER BY intern_name`, attendanceRange, absenceRange, where)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query intern summaries: %w", err)
	}
	defer rows.Close()

	var summaries []report.InternSummary
	for rows.Next() {
		var s report.InternSummary
		if err := rows.Scan(
			&s.InternID, &s.InternName, &s.BranchName,
			&s.AttendanceTotal, &s.AttendanceApproved, &s.AttendancePending, &s.AttendanceRejected,
			&s.AbsenceDaysApproved, &s.AssessmentCount, &s.AverageScore,
		); err != nil {
			return nil, fmt.Errorf("failed to scan intern summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}
