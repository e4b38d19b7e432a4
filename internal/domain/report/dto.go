package report

import "time"

// InternSummary aggregates an intern's attendance, absence and assessment
// figures for dashboards and CSV export. Read-only.
type InternSummary struct {
	InternID            string   `json:"intern_id"`
	InternName          string   `json:"intern_name"`
	BranchName          *string  `json:"branch_name,omitempty"`
	AttendanceTotal     int      `json:"attendance_total"`
	AttendanceApproved  int      `json:"attendance_approved"`
	AttendancePending   int      `json:"attendance_pending"`
	AttendanceRejected  int      `json:"attendance_rejected"`
	AbsenceDaysApproved int      `json:"absence_days_approved"`
	AssessmentCount     int      `json:"assessment_count"`
	AverageScore        *float64 `json:"average_score,omitempty"`
}

type SummaryFilter struct {
	BranchID     *string
	SupervisorID *string
	DateFrom     *time.Time
	DateTo       *time.Time
}
