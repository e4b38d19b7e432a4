package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/internhub/internship-backend-go/internal/domain/intern"
	"github.com/internhub/internship-backend-go/internal/pkg/database"
)

type internRepository struct {
	db *database.DB
}

func NewInternRepository(db *database.DB) intern.InternRepository {
	return &internRepository{db: db}
}

const internColumns = `
	ip.id, ip.user_id, ip.school_id, ip.branch_id, ip.supervisor_id,
	ip.academic_supervisor_name, ip.intern_type,
	ip.profile_photo_path, ip.application_letter_path,
	ip.start_date, ip.end_date,
	ip.emergency_contact_name, ip.emergency_contact_phone,
	ip.created_at, ip.updated_at,
	u.first_name || ' ' || u.last_name AS full_name,
	u.email,
	b.name AS branch_name,
	s.name AS school_name`

const internJoins = `
	FROM intern_profiles ip
	JOIN users u ON u.id = ip.user_id
	LEFT JOIN branches b ON b.id = ip.branch_id
	LEFT JOIN schools s ON s.id = ip.school_id`

func scanInternProfile(row pgx.Row) (intern.InternProfile, error) {
	var p intern.InternProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.SchoolID, &p.BranchID, &p.SupervisorID,
		&p.AcademicSupervisorName, &p.InternType,
		&p.ProfilePhotoPath, &p.ApplicationLetterPath,
		&p.StartDate, &p.EndDate,
		&p.EmergencyContactName, &p.EmergencyContactPhone,
		&p.CreatedAt, &p.UpdatedAt,
		&p.FullName, &p.Email, &p.BranchName, &p.SchoolName,
	)
	return p, err
}

// Create implements intern.InternRepository.
func (r *internRepository) Create(ctx context.Context, p intern.InternProfile) (intern.InternProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO intern_profiles (
			user_id, school_id, branch_id, supervisor_id,
			academic_supervisor_name, intern_type,
			start_date, end_date,
			emergency_contact_name, emergency_contact_phone
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.UserID, p.SchoolID, p.BranchID, p.SupervisorID,
		p.AcademicSupervisorName, p.InternType,
		p.StartDate, p.EndDate,
		p.EmergencyContactName, p.EmergencyContactPhone,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "intern_profiles_user_id_key") {
			return intern.InternProfile{}, intern.ErrProfileExists
		}
		return intern.InternProfile{}, fmt.Errorf("failed to create intern profile: %w", err)
	}

	return p, nil
}

// GetByID implements intern.InternRepository.
func (r *internRepository) GetByID(ctx context.Context, id string) (intern.InternProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + internColumns + internJoins + ` WHERE ip.id = $1`

	p, err := scanInternProfile(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return intern.InternProfile{}, intern.ErrProfileNotFound
		}
		return intern.InternProfile{}, fmt.Errorf("failed to get intern profile by ID: %w", err)
	}

	return p, nil
}

// GetByUserID implements intern.InternRepository.
func (r *internRepository) GetByUserID(ctx context.Context, userID string) (intern.InternProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + internColumns + internJoins + ` WHERE ip.user_id = $1`

	p, err := scanInternProfile(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return intern.InternProfile{}, intern.ErrProfileNotFound
		}
		return intern.InternProfile{}, fmt.Errorf("failed to get intern profile by user ID: %w", err)
	}

	return p, nil
}

// Update implements intern.InternRepository.
func (r *internRepository) Update(ctx context.Context, p intern.InternProfile) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE intern_profiles
		SET school_id = $1, branch_id = $2, supervisor_id = $3,
			academic_supervisor_name = $4, intern_type = $5,
			profile_photo_path = $6, application_letter_path = $7,
			start_date = $8, end_date = $9,
			emergency_contact_name = $10, emergency_contact_phone = $11,
			updated_at = NOW()
		WHERE id = $12
	`

	tag, err := q.Exec(ctx, query,
		p.SchoolID, p.BranchID, p.SupervisorID,
		p.AcademicSupervisorName, p.InternType,
		p.ProfilePhotoPath, p.ApplicationLetterPath,
		p.StartDate, p.EndDate,
		p.EmergencyContactName, p.EmergencyContactPhone,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update intern profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return intern.ErrProfileNotFound
	}

	return nil
}

// List implements intern.InternRepository.
func (r *internRepository) List(ctx context.Context, filter intern.ListInternFilter) ([]intern.InternProfile, int64, error) {
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
	if filter.SchoolID != nil {
		args = append(args, *filter.SchoolID)
		conds = append(conds, fmt.Sprintf("ip.school_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf(
			"(u.first_name || ' ' || u.last_name ILIKE $%d OR u.email ILIKE $%d)",
			len(args), len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*)` + internJoins + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count intern profiles: %w", err)
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

	query := fmt.Sprintf(`SELECT %s %s%s ORDER BY ip.created_at DESC LIMIT $%d OFFSET $%d`,
		internColumns, internJoins, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list intern profiles: %w", err)
	}
	defer rows.Close()

	var profiles []intern.InternProfile
	for rows.Next() {
		p, err := scanInternProfile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan intern profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, total, rows.Err()
}

// ListBySupervisor implements intern.InternRepository.
func (r *internRepository) ListBySupervisor(ctx context.Context, supervisorID string) ([]intern.InternProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + internColumns + internJoins + ` WHERE ip.supervisor_id = $1 ORDER BY u.first_name`

	rows, err := q.Query(ctx, query, supervisorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list intern profiles by supervisor: %w", err)
	}
	defer rows.Close()

	var profiles []intern.InternProfile
	for rows.Next() {
		p, err := scanInternProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan intern profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}
