package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/internhub/internship-backend-go/internal/domain/absence"
	"github.com/internhub/internship-backend-go/internal/pkg/database"
)

type absenceRequestRepository struct {
	db *database.DB
}

func NewAbsenceRequestRepository(db *database.DB) absence.RequestRepository {
	return &absenceRequestRepository{db: db}
}

// decision_note is NULL until a decision is made; coalesce so it scans into
// the entity's plain string field.
const absenceColumns = `
	ar.id, ar.intern_id, ar.reason, ar.start_date, ar.end_date, ar.status,
	ar.supporting_document_path, ar.approver_id, ar.submitted_at,
	ar.decision_at, COALESCE(ar.decision_note, ''), ar.created_at, ar.updated_at,
	u.first_name || ' ' || u.last_name AS intern_name`

const absenceJoins = `
	FROM absence_requests ar
	LEFT JOIN intern_profiles ip ON ip.id = ar.intern_id
	LEFT JOIN users u ON u.id = ip.user_id`

func scanAbsenceRequest(row pgx.Row) (absence.Request, error) {
	var req absence.Request
	err := row.Scan(
		&req.ID, &req.InternID, &req.Reason, &req.StartDate, &req.EndDate, &req.Status,
		&req.SupportingDocumentPath, &req.ApproverID, &req.SubmittedAt,
		&req.DecisionAt, &req.DecisionNote, &req.CreatedAt, &req.UpdatedAt,
		&req.InternName,
	)
	return req, err
}

// Create implements absence.RequestRepository.
func (r *absenceRequestRepository) Create(ctx context.Context, req absence.Request) (absence.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO absence_requests (
			intern_id, reason, start_date, end_date, status,
			supporting_document_path, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.InternID, req.Reason, req.StartDate, req.EndDate, req.Status,
		req.SupportingDocumentPath, req.SubmittedAt,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return absence.Request{}, fmt.Errorf("failed to create absence request: %w", err)
	}

	return req, nil
}

// GetByID implements absence.RequestRepository.
func (r *absenceRequestRepository) GetByID(ctx context.Context, id string) (absence.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + absenceColumns + absenceJoins + ` WHERE ar.id = $1`

	req, err := scanAbsenceRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return absence.Request{}, absence.ErrRequestNotFound
		}
		return absence.Request{}, fmt.Errorf("failed to get absence request by ID: %w", err)
	}

	return req, nil
}

// Decide implements absence.RequestRepository. Approval, rejection and
// cancellation all route through the same conditional update so only one
// transition can ever leave pending.
func (r *absenceRequestRepository) Decide(ctx context.Context, id string, status absence.Status, approverID *string, decidedAt time.Time, note string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE absence_requests
		SET status = $1,
			approver_id = $2,
			decision_at = $3,
			decision_note = $4,
			updated_at = NOW()
		WHERE id = $5 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, status, approverID, decidedAt, note, id)
	if err != nil {
		return false, fmt.Errorf("failed to decide absence request: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func buildAbsenceFilter(filter absence.RequestFilter, args []interface{}) (string, []interface{}) {
	var conds []string

	if filter.InternID != nil {
		args = append(args, *filter.InternID)
		conds = append(conds, fmt.Sprintf("ar.intern_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("ar.status = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conds = append(conds, fmt.Sprintf("ar.end_date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conds = append(conds, fmt.Sprintf("ar.start_date <= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " AND " + strings.Join(conds, " AND "), args
}

func (r *absenceRequestRepository) list(ctx context.Context, where string, args []interface{}, filter absence.RequestFilter) ([]absence.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	filterSQL, args := buildAbsenceFilter(filter, args)
	where += filterSQL

	var total int64
	countQuery := `SELECT COUNT(*)` + absenceJoins + ` WHERE 1=1` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count absence requests: %w", err)
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

	query := fmt.Sprintf(`SELECT %s %s WHERE 1=1%s ORDER BY ar.submitted_at DESC LIMIT $%d OFFSET $%d`,
		absenceColumns, absenceJoins, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list absence requests: %w", err)
	}
	defer rows.Close()

	var requests []absence.Request
	for rows.Next() {
		req, err := scanAbsenceRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan absence request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, rows.Err()
}

// List implements absence.RequestRepository.
func (r *absenceRequestRepository) List(ctx context.Context, filter absence.RequestFilter) ([]absence.Request, int64, error) {
	return r.list(ctx, "", nil, filter)
}

// ListForSupervisor implements absence.RequestRepository.
func (r *absenceRequestRepository) ListForSupervisor(ctx context.Context, supervisorID string, filter absence.RequestFilter) ([]absence.Request, int64, error) {
	return r.list(ctx, " AND ip.supervisor_id = $1", []interface{}{supervisorID}, filter)
}
