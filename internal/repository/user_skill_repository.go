package repository

import (
	"context"
	"strings"
	"time"

	"career-portal/internal/database"
	"career-portal/internal/domain/skill"
	"career-portal/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

func (r *PostgresUserSkillRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT name, level, category, added_at
		 FROM user_skills
		 WHERE user_id = $1
		 ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		var level, category string
		if err := rows.Scan(&s.Name, &level, &category, &s.AddedAt); err != nil {
			return nil, err
		}
		s.Level = skill.Level(level)
		s.Category = skill.Category(category)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert inserts new skills at the end of the list and updates level and
// category of skills already present under the same case-insensitive name.
func (r *PostgresUserSkillRepository) Upsert(ctx context.Context, userID uuid.UUID, skills []skill.Skill) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, s := range skills {
			if _, err := tx.Exec(ctx,
				`INSERT INTO user_skills (user_id, name, level, category, added_at)
				 VALUES ($1, $2, $3, $4, $5)
				 ON CONFLICT (user_id, lower(name))
				 DO UPDATE SET level = EXCLUDED.level, category = EXCLUDED.category`,
				userID, strings.TrimSpace(s.Name), string(s.Level), string(s.Category), addedAt(s),
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddMissing inserts only skills the user does not already have and returns how
// many rows were added.
func (r *PostgresUserSkillRepository) AddMissing(ctx context.Context, userID uuid.UUID, skills []skill.Skill) (int, error) {
	added := 0
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, s := range skills {
			n, err := tx.Exec(ctx,
				`INSERT INTO user_skills (user_id, name, level, category, added_at)
				 VALUES ($1, $2, $3, $4, $5)
				 ON CONFLICT (user_id, lower(name)) DO NOTHING`,
				userID, strings.TrimSpace(s.Name), string(s.Level), string(s.Category), addedAt(s),
			)
			if err != nil {
				return err
			}
			added += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

func (r *PostgresUserSkillRepository) Delete(ctx context.Context, userID uuid.UUID, name string) error {
	n, err := r.db.Exec(ctx,
		`DELETE FROM user_skills WHERE user_id = $1 AND lower(name) = lower($2)`,
		userID, strings.TrimSpace(name),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrSkillNotFound
	}
	return nil
}

func addedAt(s skill.Skill) time.Time {
	if s.AddedAt.IsZero() {
		return time.Now().UTC()
	}
	return s.AddedAt.UTC()
}
