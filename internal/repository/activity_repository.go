package repository

import (
	"context"
	"encoding/json"

	"career-portal/internal/database"
	"career-portal/internal/domain/activity"

	"github.com/google/uuid"
)

type ActivityRepository interface {
	Append(ctx context.Context, a activity.Activity) error
	// ListByUser returns the user's activities newest first. limit <= 0 returns all.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]activity.Activity, error)
}

type PostgresActivityRepository struct {
	db database.DB
}

func NewPostgresActivityRepository(db database.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

func (r *PostgresActivityRepository) Append(ctx context.Context, a activity.Activity) error {
	meta := a.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO activities (id, user_id, action, description, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.UserID, a.Action, a.Description, b, a.Timestamp.UTC(),
	)
	return err
}

func (r *PostgresActivityRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]activity.Activity, error) {
	q := `SELECT id, user_id, action, description, metadata, created_at
		 FROM activities
		 WHERE user_id = $1
		 ORDER BY created_at DESC`
	args := []any{userID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activity.Activity, 0)
	for rows.Next() {
		var a activity.Activity
		var meta []byte
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.Description, &meta, &a.Timestamp); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &a.Metadata); err != nil {
				return nil, err
			}
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
