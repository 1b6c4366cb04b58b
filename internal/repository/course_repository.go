package repository

import (
	"context"
	"strings"

	"career-portal/internal/database"
	"career-portal/internal/domain/course"
	"career-portal/internal/domain/skill"

	"github.com/google/uuid"
)

type CourseFilter struct {
	Level     string
	Category  string
	Provider  string
	Pricing   string
	Search    string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

type CourseRepository interface {
	List(ctx context.Context, f CourseFilter) ([]course.Course, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (course.Course, error)
	// Enroll records the enrollment and bumps the students counter atomically.
	// A second enrollment for the same (course, user) returns course.ErrAlreadyEnrolled.
	Enroll(ctx context.Context, e course.Enrollment) error
	Upsert(ctx context.Context, courses []course.Course) (int, error)
}

var courseSortColumns = map[string]string{
	"rating":     "c.rating_average",
	"created_at": "c.created_at",
	"title":      "lower(c.title)",
	"students":   "c.students_count",
}

const courseColumns = `c.id, c.title, c.description, c.provider, c.instructor, c.category, c.level, c.duration_hours,
	c.pricing_type, c.pricing_amount::float8, c.pricing_currency, c.rating_average, c.rating_count, c.url,
	c.students_count, c.is_active, c.created_at, c.updated_at`

type PostgresCourseRepository struct {
	db database.DB
}

func NewPostgresCourseRepository(db database.DB) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db}
}

func (r *PostgresCourseRepository) List(ctx context.Context, f CourseFilter) ([]course.Course, int, error) {
	var w whereBuilder
	w.add("c.is_active = ?", true)
	if v := strings.TrimSpace(f.Level); v != "" {
		w.add("c.level = ?", strings.ToLower(v))
	}
	if v := strings.TrimSpace(f.Category); v != "" {
		w.add("c.category ILIKE ?", likePattern(v))
	}
	if v := strings.TrimSpace(f.Provider); v != "" {
		w.add("c.provider ILIKE ?", likePattern(v))
	}
	if v := strings.TrimSpace(f.Pricing); v != "" {
		w.add("c.pricing_type = ?", strings.ToLower(v))
	}
	if v := strings.TrimSpace(f.Search); v != "" {
		p := w.next()
		w.add("(c.title ILIKE "+p+" OR c.description ILIKE ?)", likePattern(v))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM courses c`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := courseSortColumns[f.SortBy]
	if !ok {
		col = courseSortColumns["rating"]
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
	q := `SELECT ` + courseColumns + ` FROM courses c` + w.sql() +
		` ORDER BY ` + col + ` ` + sortDirection(f.SortOrder) + `, c.id ASC` +
		` LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	out, err := r.queryCourses(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresCourseRepository) GetByID(ctx context.Context, id uuid.UUID) (course.Course, error) {
	out, err := r.queryCourses(ctx, `SELECT `+courseColumns+` FROM courses c WHERE c.id = $1`, id)
	if err != nil {
		return course.Course{}, err
	}
	if len(out) == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return out[0], nil
}

func (r *PostgresCourseRepository) Enroll(ctx context.Context, e course.Enrollment) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		n, err := tx.Exec(ctx,
			`INSERT INTO course_enrollments (course_id, user_id, progress, enrolled_at)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (course_id, user_id) DO NOTHING`,
			e.CourseID, e.UserID, e.Progress, e.EnrolledAt.UTC(),
		)
		if err != nil {
			return err
		}
		if n == 0 {
			return course.ErrAlreadyEnrolled
		}
		_, err = tx.Exec(ctx, `UPDATE courses SET students_count = students_count + 1 WHERE id = $1`, e.CourseID)
		return err
	})
}

// Upsert inserts or refreshes courses keyed by case-insensitive (title, provider)
// and replaces their skill lists.
func (r *PostgresCourseRepository) Upsert(ctx context.Context, courses []course.Course) (int, error) {
	written := 0
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, c := range courses {
			if c.ID == uuid.Nil {
				c.ID = uuid.New()
			}
			if c.Pricing.Type == "" {
				c.Pricing.Type = course.PricingFree
			}
			var id uuid.UUID
			err := tx.QueryRow(ctx,
				`INSERT INTO courses (id, title, description, provider, instructor, category, level, duration_hours,
				   pricing_type, pricing_amount, pricing_currency, rating_average, rating_count, url, is_active)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, TRUE)
				 ON CONFLICT (lower(title), lower(provider)) DO UPDATE SET
				   description = EXCLUDED.description,
				   instructor = EXCLUDED.instructor,
				   category = EXCLUDED.category,
				   level = EXCLUDED.level,
				   duration_hours = EXCLUDED.duration_hours,
				   pricing_type = EXCLUDED.pricing_type,
				   pricing_amount = EXCLUDED.pricing_amount,
				   pricing_currency = EXCLUDED.pricing_currency,
				   rating_average = EXCLUDED.rating_average,
				   rating_count = EXCLUDED.rating_count,
				   url = EXCLUDED.url,
				   updated_at = NOW()
				 RETURNING id`,
				c.ID, c.Title, c.Description, c.Provider, c.Instructor, c.Category, string(c.Level.OrDefault(skill.LevelBeginner)),
				c.DurationHours, c.Pricing.Type, c.Pricing.Amount, c.Pricing.Currency, c.Rating.Average, c.Rating.Count, c.URL,
			).Scan(&id)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `DELETE FROM course_skills WHERE course_id = $1`, id); err != nil {
				return err
			}
			for i, s := range c.Skills {
				if _, err := tx.Exec(ctx,
					`INSERT INTO course_skills (course_id, position, name, level) VALUES ($1, $2, $3, $4)`,
					id, i, strings.TrimSpace(s.Name), string(s.Level),
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

func (r *PostgresCourseRepository) queryCourses(ctx context.Context, q string, args ...any) ([]course.Course, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]course.Course, 0)
	for rows.Next() {
		var c course.Course
		var level string
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.Provider, &c.Instructor, &c.Category, &level, &c.DurationHours,
			&c.Pricing.Type, &c.Pricing.Amount, &c.Pricing.Currency, &c.Rating.Average, &c.Rating.Count, &c.URL,
			&c.StudentsCount, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		c.Level = skill.Level(level)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachSkills(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCourseRepository) attachSkills(ctx context.Context, courses []course.Course) error {
	if len(courses) == 0 {
		return nil
	}
	ids := make([]string, 0, len(courses))
	pos := make(map[uuid.UUID]int, len(courses))
	for i, c := range courses {
		ids = append(ids, c.ID.String())
		pos[c.ID] = i
		courses[i].Skills = make([]skill.Skill, 0)
	}

	rows, err := r.db.Query(ctx,
		`SELECT course_id, name, level FROM course_skills
		 WHERE course_id = ANY($1::uuid[])
		 ORDER BY course_id ASC, position ASC`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var s skill.Skill
		var level string
		if err := rows.Scan(&id, &s.Name, &level); err != nil {
			return err
		}
		s.Level = skill.Level(level)
		if i, ok := pos[id]; ok {
			courses[i].Skills = append(courses[i].Skills, s)
		}
	}
	return rows.Err()
}
