package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"career-portal/internal/database"
	"career-portal/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

func (r *PostgresResumeRepository) Get(ctx context.Context, userID uuid.UUID) (user.Resume, error) {
	row := r.db.QueryRow(ctx,
		`SELECT file_name, original_name, storage_key, content_type, size_bytes, parsed, uploaded_at
		 FROM resumes WHERE user_id = $1`,
		userID,
	)

	var out user.Resume
	var parsed []byte
	if err := row.Scan(&out.FileName, &out.OriginalName, &out.StorageKey, &out.ContentType, &out.Size, &parsed, &out.UploadedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return user.Resume{}, user.ErrNoResume
		}
		return user.Resume{}, err
	}
	if len(parsed) > 0 {
		if err := json.Unmarshal(parsed, &out.Parsed); err != nil {
			return user.Resume{}, err
		}
	}
	return out, nil
}

func (r *PostgresResumeRepository) Save(ctx context.Context, userID uuid.UUID, res user.Resume) error {
	parsed, err := json.Marshal(res.Parsed)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO resumes (user_id, file_name, original_name, storage_key, content_type, size_bytes, parsed, uploaded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (user_id) DO UPDATE SET
		   file_name = EXCLUDED.file_name,
		   original_name = EXCLUDED.original_name,
		   storage_key = EXCLUDED.storage_key,
		   content_type = EXCLUDED.content_type,
		   size_bytes = EXCLUDED.size_bytes,
		   parsed = EXCLUDED.parsed,
		   uploaded_at = EXCLUDED.uploaded_at`,
		userID, res.FileName, res.OriginalName, res.StorageKey, res.ContentType, res.Size, parsed, res.UploadedAt.UTC(),
	)
	return err
}

func (r *PostgresResumeRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM resumes WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNoResume
	}
	return nil
}
