package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/internhub/internship-backend-go/internal/domain/school"
	"github.com/internhub/internship-backend-go/internal/pkg/database"
)

type schoolRepository struct {
	db *database.DB
}

func NewSchoolRepository(db *database.DB) school.SchoolRepository {
	return &schoolRepository{db: db}
}

const schoolColumns = `id, name, contact_person, contact_email, contact_phone, address, created_at, updated_at`

func scanSchool(row pgx.Row) (school.School, error) {
	var s school.School
	err := row.Scan(
		&s.ID, &s.Name, &s.ContactPerson, &s.ContactEmail, &s.ContactPhone,
		&s.Address, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create implements school.SchoolRepository.
func (r *schoolRepository) Create(ctx context.Context, s school.School) (school.School, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schools (name, contact_person, contact_email, contact_phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.Name, s.ContactPerson, s.ContactEmail, s.ContactPhone, s.Address,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "schools_name_key") {
			return school.School{}, school.ErrNameExists
		}
		return school.School{}, fmt.Errorf("failed to create school: %w", err)
	}

	return s, nil
}

// GetByID implements school.SchoolRepository.
func (r *schoolRepository) GetByID(ctx context.Context, id string) (school.School, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSchool(q.QueryRow(ctx, `SELECT `+schoolColumns+` FROM schools WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return school.School{}, school.ErrSchoolNotFound
		}
		return school.School{}, fmt.Errorf("failed to get school by ID: %w", err)
	}

	return s, nil
}

// Update implements school.SchoolRepository.
func (r *schoolRepository) Update(ctx context.Context, s school.School) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schools
		SET name = $1, contact_person = $2, contact_email = $3, contact_phone = $4,
			address = $5, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query,
		s.Name, s.ContactPerson, s.ContactEmail, s.ContactPhone, s.Address, s.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "schools_name_key") {
			return school.ErrNameExists
		}
		return fmt.Errorf("failed to update school: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return school.ErrSchoolNotFound
	}

	return nil
}

// Delete implements school.SchoolRepository.
func (r *schoolRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM schools WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete school: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return school.ErrSchoolNotFound
	}

	return nil
}

// List implements school.SchoolRepository.
func (r *schoolRepository) List(ctx context.Context) ([]school.School, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+schoolColumns+` FROM schools ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}
	defer rows.Close()

	var schools []school.School
	for rows.Next() {
		s, err := scanSchool(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan school: %w", err)
		}
		schools = append(schools, s)
	}

	return schools, rows.Err()
}
