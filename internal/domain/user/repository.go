package user

import (
	"context"
	"errors"
	"time"

	"career-portal/internal/domain/skill"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrSkillNotFound = errors.New("skill not found")
	ErrNoResume      = errors.New("resume not found")
)

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, u User) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// SkillRepository stores a user's skills in append order. Names are unique per
// user regardless of case.
type SkillRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error)
	Upsert(ctx context.Context, userID uuid.UUID, skills []skill.Skill) error
	AddMissing(ctx context.Context, userID uuid.UUID, skills []skill.Skill) (int, error)
	Delete(ctx context.Context, userID uuid.UUID, name string) error
}

type ResumeRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (Resume, error)
	Save(ctx context.Context, userID uuid.UUID, r Resume) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
