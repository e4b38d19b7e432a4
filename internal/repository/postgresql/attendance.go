package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/internhub/internship-backend-go/internal/domain/attendance"
	"github.com/internhub/internship-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.intern_id, a.branch_id, a.check_in_time, a.check_in_date, a.check_out_time,
	a.latitude, a.longitude, a.location_accuracy_m,
	a.approval_status, a.auto_approved, a.notes,
	a.approved_by, a.approved_at, a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, withJoins bool) (attendance.Attendance, error) {
	var att attendance.Attendance
	dest := []interface{}{
		&att.ID, &att.InternID, &att.BranchID, &att.CheckInTime, &att.CheckInDate, &att.CheckOutTime,
		&att.Latitude, &att.Longitude, &att.LocationAccuracyM,
		&att.ApprovalStatus, &att.AutoApproved, &att.Notes,
		&att.ApprovedBy, &att.ApprovedAt, &att.CreatedAt, &att.UpdatedAt,
	}
	if withJoins {
		dest = append(dest, &att.InternName, &att.BranchName)
	}
	if err := row.Scan(dest...); err != nil {
		return attendance.Attendance{}, err
	}
	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			intern_id, branch_id, check_in_time, check_in_date,
			latitude, longitude, location_accuracy_m,
			approval_status, auto_approved, notes, approved_by, approved_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.InternID,
		newAttendance.BranchID,
		newAttendance.CheckInTime,
		newAttendance.CheckInDate,
		newAttendance.Latitude,
		newAttendance.Longitude,
		newAttendance.LocationAccuracyM,
		newAttendance.ApprovalStatus,
		newAttendance.AutoApproved,
		newAttendance.Notes,
		newAttendance.ApprovedBy,
		newAttendance.ApprovedAt,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		// The unique index on (intern_id, check_in_date) closes the
		// concurrent double check-in race.
		if isUniqueViolation(err, "attendances_intern_id_check_in_date_key") {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `,
			u.first_name || ' ' || u.last_name AS intern_name,
			b.name AS branch_name
		FROM attendances a
		LEFT JOIN intern_profiles ip ON ip.id = a.intern_id
		LEFT JOIN users u ON u.id = ip.user_id
		LEFT JOIN branches b ON b.id = a.branch_id
		WHERE a.id = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// HasCheckedInOn implements attendance.AttendanceRepository.
func (a *attendanceRepository) HasCheckedInOn(ctx context.Context, internID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendances
			WHERE intern_id = $1 AND check_in_date = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, internID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	return exists, nil
}

// Decide implements attendance.AttendanceRepository. The WHERE clause on the
// current status makes the transition at-most-once under concurrent calls.
func (a *attendanceRepository) Decide(ctx context.Context, id string, status attendance.ApprovalStatus, approverID string, decidedAt time.Time, note string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET approval_status = $1,
			auto_approved = FALSE,
			approved_by = $2,
			approved_at = $3,
			notes = CASE WHEN $4 <> '' THEN $4 ELSE notes END,
			updated_at = NOW()
		WHERE id = $5 AND approval_status = 'pending'
	`

	tag, err := q.Exec(ctx, query, status, approverID, decidedAt, note, id)
	if err != nil {
		return false, fmt.Errorf("failed to decide attendance: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// CheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) CheckOut(ctx context.Context, id string, checkOutTime time.Time, notes string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out_time = $1,
			notes = CASE WHEN $2 <> '' THEN TRIM(notes || E'\n' || $2) ELSE notes END,
			updated_at = NOW()
		WHERE id = $3 AND check_out_time IS NULL
	`

	tag, err := q.Exec(ctx, query, checkOutTime, notes, id)
	if err != nil {
		return false, fmt.Errorf("failed to check out attendance: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func buildAttendanceFilter(filter attendance.AttendanceFilter, args []interface{}) (string, []interface{}) {
	var conds []string

	if filter.InternID != nil {
		args = append(args, *filter.InternID)
		conds = append(conds, fmt.Sprintf("a.intern_id = $%d", len(args)))
	}
	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		conds = append(conds, fmt.Sprintf("a.branch_id = $%d", len(args)))
	}
	if filter.SupervisorID != nil {
		args = append(args, *filter.SupervisorID)
		conds = append(conds, fmt.Sprintf("ip.supervisor_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("a.approval_status = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conds = append(conds, fmt.Sprintf("a.check_in_date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conds = append(conds, fmt.Sprintf("a.check_in_date <= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " AND " + strings.Join(conds, " AND "), args
}

func (a *attendanceRepository) list(ctx context.Context, where string, args []interface{}, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	filterSQL, args := buildAttendanceFilter(filter, args)
	where += filterSQL

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		LEFT JOIN intern_profiles ip ON ip.id = a.intern_id
		WHERE 1=1` + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	args = append(args, limit, (page-1)*limit)
	query := `
		SELECT ` + attendanceColumns + `,
			u.first_name || ' ' || u.last_name AS intern_name,
			b.name AS branch_name
		FROM attendances a
		LEFT JOIN intern_profiles ip ON ip.id = a.intern_id
		LEFT JOIN users u ON u.id = ip.user_id
		LEFT JOIN branches b ON b.id = a.branch_id
		WHERE 1=1` + where + `
		ORDER BY a.check_in_time DESC
		LIMIT $` + fmt.Sprint(len(args)-1) + ` OFFSET $` + fmt.Sprint(len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}

	return result, total, rows.Err()
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return a.list(ctx, "", nil, filter)
}

// ListByIntern implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByIntern(ctx context.Context, internID string, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	filter.InternID = &internID
	return a.list(ctx, "", nil, filter)
}
