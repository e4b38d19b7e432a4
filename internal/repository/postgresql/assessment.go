package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/internhub/internship-backend-go/internal/domain/assessment"
	"github.com/internhub/internship-backend-go/internal/pkg/database"
)

type assessmentRepository struct {
	db *database.DB
}

func NewAssessmentRepository(db *database.DB) assessment.AssessmentRepository {
	return &assessmentRepository{db: db}
}

// intern_note and acknowledgement_note stay NULL until the intern
// self-assesses and the supervisor reviews; coalesce so they scan into the
// entity's plain string fields.
const assessmentColumns = `
	pa.id, pa.intern_id, pa.assessed_by, pa.assessment_date,
	pa.period_start, pa.period_end, pa.week_number, pa.status,
	pa.supervisor_score, COALESCE(pa.supervisor_note, ''),
	pa.intern_score, COALESCE(pa.intern_note, ''), COALESCE(pa.acknowledgement_note, ''),
	pa.created_at, pa.updated_at,
	u.first_name || ' ' || u.last_name AS intern_name`

const assessmentJoins = `
	FROM performance_assessments pa
	LEFT JOIN intern_profiles ip ON ip.id = pa.intern_id
	LEFT JOIN users u ON u.id = ip.user_id`

func scanAssessment(row pgx.Row) (assessment.PerformanceAssessment, error) {
	var a assessment.PerformanceAssessment
	err := row.Scan(
		&a.ID, &a.InternID, &a.AssessedBy, &a.AssessmentDate,
		&a.PeriodStart, &a.PeriodEnd, &a.WeekNumber, &a.Status,
		&a.SupervisorScore, &a.SupervisorNote,
		&a.InternScore, &a.InternNote, &a.AcknowledgementNote,
		&a.CreatedAt, &a.UpdatedAt,
		&a.InternName,
	)
	return a, err
}

// Create implements assessment.AssessmentRepository.
func (r *assessmentRepository) Create(ctx context.Context, a assessment.PerformanceAssessment) (assessment.PerformanceAssessment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO performance_assessments (
			intern_id, assessed_by, assessment_date,
			period_start, period_end, week_number, status,
			supervisor_score, supervisor_note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.InternID, a.AssessedBy, a.AssessmentDate,
		a.PeriodStart, a.PeriodEnd, a.WeekNumber, a.Status,
		a.SupervisorScore, a.SupervisorNote,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		// (intern_id, week_number) is unique, closing the concurrent
		// same-week creation race.
		if isUniqueViolation(err, "performance_assessments_intern_id_week_number_key") {
			return assessment.PerformanceAssessment{}, assessment.ErrDuplicateWeek
		}
		return assessment.PerformanceAssessment{}, fmt.Errorf("failed to create assessment: %w", err)
	}

	return a, nil
}

// GetByID implements assessment.AssessmentRepository.
func (r *assessmentRepository) GetByID(ctx context.Context, id string) (assessment.PerformanceAssessment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + assessmentColumns + assessmentJoins + ` WHERE pa.id = $1`

	a, err := scanAssessment(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return assessment.PerformanceAssessment{}, assessment.ErrAssessmentNotFound
		}
		return assessment.PerformanceAssessment{}, fmt.Errorf("failed to get assessment by ID: %w", err)
	}

	return a, nil
}

// NextWeekNumber implements assessment.AssessmentRepository.
func (r *assessmentRepository) NextWeekNumber(ctx context.Context, internID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var next int
	query := `SELECT COALESCE(MAX(week_number), 0) + 1 FROM performance_assessments WHERE intern_id = $1`
	if err := q.QueryRow(ctx, query, internID).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to compute next week number: %w", err)
	}

	return next, nil
}

// SetSelfAssessment implements assessment.AssessmentRepository.
func (r *assessmentRepository) SetSelfAssessment(ctx context.Context, id string, score int, note string) (assessment.PerformanceAssessment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE performance_assessments
		SET intern_score = $1,
			intern_note = $2,
			status = CASE WHEN status = 'draft' THEN 'submitted' ELSE status END,
			updated_at = NOW()
		WHERE id = $3
		RETURNING id, intern_id, assessed_by, assessment_date,
			period_start, period_end, week_number, status,
			supervisor_score, supervisor_note,
			intern_score, intern_note, acknowledgement_note,
			created_at, updated_at
	`

	var a assessment.PerformanceAssessment
	err := q.QueryRow(ctx, query, score, note, id).Scan(
		&a.ID, &a.InternID, &a.AssessedBy, &a.AssessmentDate,
		&a.PeriodStart, &a.PeriodEnd, &a.WeekNumber, &a.Status,
		&a.SupervisorScore, &a.SupervisorNote,
		&a.InternScore, &a.InternNote, &a.AcknowledgementNote,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return assessment.PerformanceAssessment{}, assessment.ErrAssessmentNotFound
		}
		return assessment.PerformanceAssessment{}, fmt.Errorf("failed to set self assessment: %w", err)
	}

	return a, nil
}

// SetReview implements assessment.AssessmentRepository.
func (r *assessmentRepository) SetReview(ctx context.Context, id string, score int, note, ackNote string) (assessment.PerformanceAssessment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE performance_assessments
		SET supervisor_score = $1,
			supervisor_note = $2,
			acknowledgement_note = $3,
			status = 'reviewed',
			updated_at = NOW()
		WHERE id = $4
		RETURNING id, intern_id, assessed_by, assessment_date,
			period_start, period_end, week_number, status,
			supervisor_score, supervisor_note,
			intern_score, intern_note, acknowledgement_note,
			created_at, updated_at
	`

	var a assessment.PerformanceAssessment
	err := q.QueryRow(ctx, query, score, note, ackNote, id).Scan(
		&a.ID, &a.InternID, &a.AssessedBy, &a.AssessmentDate,
		&a.PeriodStart, &a.PeriodEnd, &a.WeekNumber, &a.Status,
		&a.SupervisorScore, &a.SupervisorNote,
		&a.InternScore, &a.InternNote, &a.AcknowledgementNote,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return assessment.PerformanceAssessment{}, assessment.ErrAssessmentNotFound
		}
		return assessment.PerformanceAssessment{}, fmt.Errorf("failed to set review: %w", err)
	}

	return a, nil
}

// List implements assessment.AssessmentRepository.
func (r *assessmentRepository) List(ctx context.Context, filter assessment.AssessmentFilter) ([]assessment.PerformanceAssessment, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conds []string
	var args []interface{}

	if filter.InternID != nil {
		args = append(args, *filter.InternID)
		conds = append(conds, fmt.Sprintf("pa.intern_id = $%d", len(args)))
	}
	if filter.SupervisorID != nil {
		args = append(args, *filter.SupervisorID)
		conds = append(conds, fmt.Sprintf("ip.supervisor_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("pa.status = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*)`+assessmentJoins+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count assessments: %w", err)
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

	query := fmt.Sprintf(`SELECT %s %s%s ORDER BY pa.week_number DESC, pa.created_at DESC LIMIT $%d OFFSET $%d`,
		assessmentColumns, assessmentJoins, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var assessments []assessment.PerformanceAssessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan assessment: %w", err)
		}
		assessments = append(assessments, a)
	}

	return assessments, total, rows.Err()
}
