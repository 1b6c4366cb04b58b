package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"career-portal/internal/database"
	dbpostgres "career-portal/internal/database/postgres"
	"career-portal/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, password_hash, first_name, last_name, role, profile, preferences, career_goals,
	is_active, last_login, created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	profile, prefs, goals, err := marshalUserDocs(u)
	if err != nil {
		return err
	}
	role := u.Role
	if role == "" {
		role = user.RoleStudent
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, first_name, last_name, role, profile, preferences, career_goals, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, strings.ToLower(u.Email), u.PasswordHash, u.FirstName, u.LastName, role, profile, prefs, goals, u.IsActive,
	)
	if err != nil {
		if dbpostgres.IsUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, strings.TrimSpace(email))
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`, strings.TrimSpace(email))
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, u user.User) error {
	profile, prefs, goals, err := marshalUserDocs(u)
	if err != nil {
		return err
	}
	n, err := r.db.Exec(ctx,
		`UPDATE users
		 SET first_name = $1, last_name = $2, profile = $3, preferences = $4, career_goals = $5, updated_at = NOW()
		 WHERE id = $6`,
		u.FirstName, u.LastName, profile, prefs, goals, u.ID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	n, err := r.db.Exec(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, at.UTC(), id)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func marshalUserDocs(u user.User) ([]byte, []byte, []byte, error) {
	profile, err := json.Marshal(u.Profile)
	if err != nil {
		return nil, nil, nil, err
	}
	prefs, err := json.Marshal(u.Preferences)
	if err != nil {
		return nil, nil, nil, err
	}
	goals, err := json.Marshal(u.CareerGoals)
	if err != nil {
		return nil, nil, nil, err
	}
	return profile, prefs, goals, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var profile, prefs, goals []byte
	var lastLogin *time.Time
	if err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role,
		&profile, &prefs, &goals, &u.IsActive, &lastLogin, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.LastLogin = lastLogin

	if len(profile) > 0 {
		if err := json.Unmarshal(profile, &u.Profile); err != nil {
			return user.User{}, err
		}
	}
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &u.Preferences); err != nil {
			return user.User{}, err
		}
	}
	if len(goals) > 0 {
		if err := json.Unmarshal(goals, &u.CareerGoals); err != nil {
			return user.User{}, err
		}
	}
	return u, nil
}
