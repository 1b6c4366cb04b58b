package usecase

import (
	"context"
	"errors"

	"career-portal/internal/domain/user"
	"career-portal/internal/pkg/logger"

	"github.com/google/uuid"
)

// UserStore assembles a full user record (profile, skills, resume) from the
// three user repositories.
type UserStore struct {
	Users   user.Repository
	Skills  user.SkillRepository
	Resumes user.ResumeRepository
	Logger  *logger.Logger
}

func (s UserStore) Load(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		s.Logger.Error("[Users] load failed", "user_id", id, "error", err)
		return user.User{}, ErrInternal
	}

	skills, err := s.Skills.ListByUser(ctx, id)
	if err != nil {
		s.Logger.Error("[Users] load skills failed", "user_id", id, "error", err)
		return user.User{}, ErrInternal
	}
	u.Skills = skills

	res, err := s.Resumes.Get(ctx, id)
	switch {
	case err == nil:
		u.Resume = &res
	case errors.Is(err, user.ErrNoResume):
		u.Resume = nil
	default:
		s.Logger.Error("[Users] load resume failed", "user_id", id, "error", err)
		return user.User{}, ErrInternal
	}

	u.PasswordHash = ""
	return u, nil
}
