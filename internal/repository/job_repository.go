package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"career-portal/internal/database"
	"career-portal/internal/domain/job"
	"career-portal/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type JobFilter struct {
	JobType         string
	WorkArrangement string
	Location        string
	Company         string
	Search          string
	Skills          []string
	SortBy          string
	SortOrder       string
	Limit           int
	Offset          int
}

type JobPreferenceFilter struct {
	JobTypes        []string
	WorkArrangement string
	Industries      []string
	Limit           int
}

type JobRepository interface {
	List(ctx context.Context, f JobFilter) ([]job.Job, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	ListActiveByPreference(ctx context.Context, f JobPreferenceFilter) ([]job.Job, error)
	// ActiveSkillSets returns the skill list of every active job.
	ActiveSkillSets(ctx context.Context) ([][]skill.Requirement, error)
	Upsert(ctx context.Context, jobs []job.Job) (int, error)
}

var jobSortColumns = map[string]string{
	"created_at":   "j.created_at",
	"title":        "lower(j.title)",
	"views":        "j.views",
	"applications": "j.applications",
}

const jobColumns = `j.id, j.title, j.company_name, j.company_website, j.description, j.city, j.state, j.country,
	j.job_type, j.work_arrangement, j.industry, j.experience_level, j.salary_min, j.salary_max, j.salary_currency,
	j.status, j.source, j.source_url, COALESCE(j.external_id, ''), j.views, j.applications, j.deadline,
	j.created_at, j.updated_at`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) List(ctx context.Context, f JobFilter) ([]job.Job, int, error) {
	var w whereBuilder
	w.add("j.status = ?", job.StatusActive)
	if v := strings.TrimSpace(f.JobType); v != "" {
		w.add("j.job_type = ?", v)
	}
	if v := strings.TrimSpace(f.WorkArrangement); v != "" {
		w.add("j.work_arrangement = ?", v)
	}
	if v := strings.TrimSpace(f.Location); v != "" {
		p := w.next()
		w.add("(j.city ILIKE "+p+" OR j.state ILIKE "+p+" OR j.country ILIKE ?)", likePattern(v))
	}
	if v := strings.TrimSpace(f.Company); v != "" {
		w.add("j.company_name ILIKE ?", likePattern(v))
	}
	if v := strings.TrimSpace(f.Search); v != "" {
		p := w.next()
		w.add("(j.title ILIKE "+p+" OR j.description ILIKE "+p+" OR j.company_name ILIKE ?)", likePattern(v))
	}
	if names := lowerAll(f.Skills); len(names) > 0 {
		w.add("EXISTS (SELECT 1 FROM job_skills js WHERE js.job_id = j.id AND lower(js.name) = ANY(?::text[]))", names)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM jobs j`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := jobSortColumns[f.SortBy]
	if !ok {
		col = jobSortColumns["created_at"]
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
	q := `SELECT ` + jobColumns + ` FROM jobs j` + w.sql() +
		` ORDER BY ` + col + ` ` + sortDirection(f.SortOrder) + `, j.id ASC` +
		` LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	jobs, err := r.queryJobs(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	jobs, err := r.queryJobs(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1`, id)
	if err != nil {
		return job.Job{}, err
	}
	if len(jobs) == 0 {
		return job.Job{}, job.ErrNotFound
	}
	return jobs[0], nil
}

func (r *PostgresJobRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `UPDATE jobs SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) ListActiveByPreference(ctx context.Context, f JobPreferenceFilter) ([]job.Job, error) {
	var w whereBuilder
	w.add("j.status = ?", job.StatusActive)
	if len(f.JobTypes) > 0 {
		w.add("j.job_type = ANY(?::text[])", f.JobTypes)
	}
	if v := strings.TrimSpace(f.WorkArrangement); v != "" {
		w.add("j.work_arrangement = ?", v)
	}
	if len(f.Industries) > 0 {
		w.add("j.industry = ANY(?::text[])", f.Industries)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 30
	}
	args := append(append([]any{}, w.args...), limit)
	q := `SELECT ` + jobColumns + ` FROM jobs j` + w.sql() + ` ORDER BY j.created_at DESC, j.id ASC LIMIT $` + itoa(len(args))
	return r.queryJobs(ctx, q, args...)
}

func (r *PostgresJobRepository) ActiveSkillSets(ctx context.Context) ([][]skill.Requirement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT js.job_id, js.name, js.level, js.required
		 FROM job_skills js
		 JOIN jobs j ON j.id = js.job_id
		 WHERE j.status = 'active'
		 ORDER BY j.created_at DESC, js.job_id ASC, js.position ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([][]skill.Requirement, 0)
	var cur uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		var req skill.Requirement
		var level string
		if err := rows.Scan(&id, &req.Name, &level, &req.Required); err != nil {
			return nil, err
		}
		req.Level = skill.Level(level)
		if len(out) == 0 || id != cur {
			out = append(out, nil)
			cur = id
		}
		out[len(out)-1] = append(out[len(out)-1], req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert inserts or refreshes jobs keyed by (source, external_id) and replaces
// their skill lists. Jobs without an external id are always inserted.
func (r *PostgresJobRepository) Upsert(ctx context.Context, jobs []job.Job) (int, error) {
	written := 0
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, j := range jobs {
			if j.ID == uuid.Nil {
				j.ID = uuid.New()
			}
			if j.Status == "" {
				j.Status = job.StatusActive
			}
			if j.Source == "" {
				j.Source = "manual"
			}
			var ext *string
			if v := strings.TrimSpace(j.ExternalID); v != "" {
				ext = &v
			}

			var id uuid.UUID
			err := tx.QueryRow(ctx,
				`INSERT INTO jobs (id, title, company_name, company_website, description, city, state, country,
				   job_type, work_arrangement, industry, experience_level, salary_min, salary_max, salary_currency,
				   status, source, source_url, external_id, deadline)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
				 ON CONFLICT (source, external_id) WHERE external_id IS NOT NULL DO UPDATE SET
				   title = EXCLUDED.title,
				   company_name = EXCLUDED.company_name,
				   description = EXCLUDED.description,
				   city = EXCLUDED.city,
				   state = EXCLUDED.state,
				   country = EXCLUDED.country,
				   job_type = EXCLUDED.job_type,
				   work_arrangement = EXCLUDED.work_arrangement,
				   status = EXCLUDED.status,
				   source_url = EXCLUDED.source_url,
				   updated_at = NOW()
				 RETURNING id`,
				j.ID, j.Title, j.CompanyName, j.CompanyWebsite, j.Description, j.Location.City, j.Location.State, j.Location.Country,
				j.JobType, j.WorkArrangement, j.Industry, j.ExperienceLevel, j.Salary.Min, j.Salary.Max, j.Salary.Currency,
				j.Status, j.Source, j.SourceURL, ext, j.Deadline,
			).Scan(&id)
			if err != nil {
				return err
			}

			if _, err := tx.Exec(ctx, `DELETE FROM job_skills WHERE job_id = $1`, id); err != nil {
				return err
			}
			for i, s := range j.Skills {
				if _, err := tx.Exec(ctx,
					`INSERT INTO job_skills (job_id, position, name, level, required) VALUES ($1, $2, $3, $4, $5)`,
					id, i, strings.TrimSpace(s.Name), string(s.Level), s.Required,
				); err != nil {
					return err
				}
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

func (r *PostgresJobRepository) queryJobs(ctx context.Context, q string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachSkills(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) attachSkills(ctx context.Context, jobs []job.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(jobs))
	pos := make(map[uuid.UUID]int, len(jobs))
	for i, j := range jobs {
		ids = append(ids, j.ID.String())
		pos[j.ID] = i
		jobs[i].Skills = make([]skill.Requirement, 0)
	}

	rows, err := r.db.Query(ctx,
		`SELECT job_id, name, level, required
		 FROM job_skills
		 WHERE job_id = ANY($1::uuid[])
		 ORDER BY job_id ASC, position ASC`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var req skill.Requirement
		var level string
		if err := rows.Scan(&id, &req.Name, &level, &req.Required); err != nil {
			return err
		}
		req.Level = skill.Level(level)
		if i, ok := pos[id]; ok {
			jobs[i].Skills = append(jobs[i].Skills, req)
		}
	}
	return rows.Err()
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	var deadline *time.Time
	err := row.Scan(
		&j.ID, &j.Title, &j.CompanyName, &j.CompanyWebsite, &j.Description,
		&j.Location.City, &j.Location.State, &j.Location.Country,
		&j.JobType, &j.WorkArrangement, &j.Industry, &j.ExperienceLevel,
		&j.Salary.Min, &j.Salary.Max, &j.Salary.Currency,
		&j.Status, &j.Source, &j.SourceURL, &j.ExternalID, &j.Views, &j.Applications, &deadline,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	j.Deadline = deadline
	return j, nil
}
