package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/internhub/internship-backend-go/internal/domain/activitylog"
	"github.com/internhub/internship-backend-go/internal/pkg/database"
)

type activityLogRepository struct {
	db *database.DB
}

func NewActivityLogRepository(db *database.DB) activitylog.Repository {
	return &activityLogRepository{db: db}
}

// Create implements activitylog.Repository.
func (r *activityLogRepository) Create(ctx context.Context, e activitylog.Entry) error {
	q := GetQuerier(ctx, r.db)

	var metadata []byte
	if e.Metadata != nil {
		var err error
		metadata, err = json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal activity metadata: %w", err)
		}
	}

	query := `
		INSERT INTO activity_logs (actor_id, action, entity_kind, entity_id, metadata, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := q.Exec(ctx, query,
		e.ActorID, e.Action, e.EntityKind, e.EntityID, metadata, e.IPAddress, e.UserAgent,
	); err != nil {
		return fmt.Errorf("failed to create activity log entry: %w", err)
	}

	return nil
}

func (r *activityLogRepository) list(ctx context.Context, where string, args []interface{}, page, limit int) ([]activitylog.Entry, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM activity_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity log entries: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	query := fmt.Sprintf(`
		SELECT id, actor_id, action, entity_kind, entity_id, metadata, ip_address, user_agent, created_at
		FROM activity_logs%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity log entries: %w", err)
	}
	defer rows.Close()

	var entries []activitylog.Entry
	for rows.Next() {
		var e activitylog.Entry
		var metadata []byte
		if err := rows.Scan(
			&e.ID, &e.ActorID, &e.Action, &e.EntityKind, &e.EntityID,
			&metadata, &e.IPAddress, &e.UserAgent, &e.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity log entry: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal activity metadata: %w", err)
			}
		}
		entries = append(entries, e)
	}

	return entries, total, rows.Err()
}

// ListByActor implements activitylog.Repository.
func (r *activityLogRepository) ListByActor(ctx context.Context, actorID string, page, limit int) ([]activitylog.Entry, int64, error) {
	return r.list(ctx, ` WHERE actor_id = $1`, []interface{}{actorID}, page, limit)
}

// List implements activitylog.Repository.
func (r *activityLogRepository) List(ctx context.Context, page, limit int) ([]activitylog.Entry, int64, error) {
	return r.list(ctx, "", nil, page, limit)
}
