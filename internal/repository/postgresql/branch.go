package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/internhub/internship-backend-go/internal/domain/branch"
	"github.com/internhub/internship-backend-go/internal/pkg/database"
)

type branchRepository struct {
	db *database.DB
}

func NewBranchRepository(db *database.DB) branch.BranchRepository {
	return &branchRepository{db: db}
}

const branchColumns = `
	id, name, code, address_line1, address_line2, city, state, country,
	latitude, longitude, proximity_threshold_m, created_at, updated_at`

func scanBranch(row pgx.Row) (branch.Branch, error) {
	var b branch.Branch
	err := row.Scan(
		&b.ID, &b.Name, &b.Code, &b.AddressLine1, &b.AddressLine2,
		&b.City, &b.State, &b.Country,
		&b.Latitude, &b.Longitude, &b.ProximityThresholdMeters,
		&b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// Create implements branch.BranchRepository.
func (r *branchRepository) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO branches (
			name, code, address_line1, address_line2, city, state, country,
			latitude, longitude, proximity_threshold_m
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		b.Name, b.Code, b.AddressLine1, b.AddressLine2, b.City, b.State, b.Country,
		b.Latitude, b.Longitude, b.ProximityThresholdMeters,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "branches_code_key") {
			return branch.Branch{}, branch.ErrCodeExists
		}
		return branch.Branch{}, fmt.Errorf("failed to create branch: %w", err)
	}

	return b, nil
}

// GetByID implements branch.BranchRepository.
func (r *branchRepository) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	b, err := scanBranch(q.QueryRow(ctx, `SELECT `+branchColumns+` FROM branches WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, fmt.Errorf("failed to get branch by ID: %w", err)
	}

	return b, nil
}

// GetByCode implements branch.BranchRepository.
func (r *branchRepository) GetByCode(ctx context.Context, code string) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	b, err := scanBranch(q.QueryRow(ctx, `SELECT `+branchColumns+` FROM branches WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, fmt.Errorf("failed to get branch by code: %w", err)
	}

	return b, nil
}

// Update implements branch.BranchRepository.
func (r *branchRepository) Update(ctx context.Context, b branch.Branch) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE branches
		SET name = $1, code = $2, address_line1 = $3, address_line2 = $4,
			city = $5, state = $6, country = $7,
			latitude = $8, longitude = $9, proximity_threshold_m = $10,
			updated_at = NOW()
		WHERE id = $11
	`

	tag, err := q.Exec(ctx, query,
		b.Name, b.Code, b.AddressLine1, b.AddressLine2,
		b.City, b.State, b.Country,
		b.Latitude, b.Longitude, b.ProximityThresholdMeters,
		b.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "branches_code_key") {
			return branch.ErrCodeExists
		}
		return fmt.Errorf("failed to update branch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return branch.ErrBranchNotFound
	}

	return nil
}

// Delete implements branch.BranchRepository.
func (r *branchRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return branch.ErrBranchNotFound
	}

	return nil
}

// List implements branch.BranchRepository.
func (r *branchRepository) List(ctx context.Context) ([]branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+branchColumns+` FROM branches ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	var branches []branch.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		branches = append(branches, b)
	}

	return branches, rows.Err()
}
