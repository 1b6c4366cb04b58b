package repository

import (
	"context"
	"strings"

	"career-portal/internal/database"
	"career-portal/internal/domain/job"

	"github.com/google/uuid"
)

type ApplicationView struct {
	Application job.Application
	Job         job.Job
}

type ApplicationFilter struct {
	Status string
	Limit  int
	Offset int
}

type ApplicationRepository interface {
	// Apply records the application and bumps the job's counter atomically.
	// A second application for the same (job, user) returns job.ErrAlreadyApplied.
	Apply(ctx context.Context, app job.Application) error
	HasApplied(ctx context.Context, jobID, userID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID, f ApplicationFilter) ([]ApplicationView, int, error)
	StatusCounts(ctx context.Context, userID uuid.UUID) (map[string]int, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Apply(ctx context.Context, app job.Application) error {
	status := app.Status
	if status == "" {
		status = job.ApplicationApplied
	}
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		n, err := tx.Exec(ctx,
			`INSERT INTO job_applications (job_id, user_id, match_score, status, applied_at)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (job_id, user_id) DO NOTHING`,
			app.JobID, app.UserID, app.MatchScore, status, app.AppliedAt.UTC(),
		)
		if err != nil {
			return err
		}
		if n == 0 {
			return job.ErrAlreadyApplied
		}
		if _, err := tx.Exec(ctx, `UPDATE jobs SET applications = applications + 1 WHERE id = $1`, app.JobID); err != nil {
			return err
		}
		return nil
	})
}

func (r *PostgresApplicationRepository) HasApplied(ctx context.Context, jobID, userID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM job_applications WHERE job_id = $1 AND user_id = $2)`,
		jobID, userID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID, f ApplicationFilter) ([]ApplicationView, int, error) {
	var w whereBuilder
	w.add("a.user_id = ?", userID)
	if v := strings.TrimSpace(f.Status); v != "" {
		w.add("a.status = ?", v)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM job_applications a`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	args := append(append([]any{}, w.args...), limit, offset)

	rows, err := r.db.Query(ctx,
		`SELECT a.job_id, a.user_id, a.match_score, a.status, a.applied_at,
		   j.title, j.company_name, j.city, j.state, j.country, j.job_type, j.work_arrangement, j.status
		 FROM job_applications a
		 JOIN jobs j ON j.id = a.job_id`+w.sql()+`
		 ORDER BY a.applied_at DESC
		 LIMIT $`+itoa(len(args)-1)+` OFFSET $`+itoa(len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]ApplicationView, 0)
	for rows.Next() {
		var v ApplicationView
		a := &v.Application
		j := &v.Job
		if err := rows.Scan(
			&a.JobID, &a.UserID, &a.MatchScore, &a.Status, &a.AppliedAt,
			&j.Title, &j.CompanyName, &j.Location.City, &j.Location.State, &j.Location.Country,
			&j.JobType, &j.WorkArrangement, &j.Status,
		); err != nil {
			return nil, 0, err
		}
		j.ID = a.JobID
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresApplicationRepository) StatusCounts(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status, COUNT(1) FROM job_applications WHERE user_id = $1 GROUP BY status`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
