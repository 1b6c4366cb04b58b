package usecase

import (
	"context"

	"career-portal/internal/domain/matching"
	"career-portal/internal/domain/skill"
	"career-portal/internal/domain/user"
	"career-portal/internal/pkg/logger"
	"career-portal/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type SkillAnalysisUsecase interface {
	Analysis(ctx context.Context, userID uuid.UUID) (matching.GapAnalysis, error)
}

// SkillAnalysis compares a user's skills with demand across all active jobs.
// It reads the full job corpus on every call.
type SkillAnalysis struct {
	jobs   repository.JobRepository
	skills user.SkillRepository
	logger *logger.Logger
}

func NewSkillAnalysis(jobs repository.JobRepository, store UserStore, log *logger.Logger) *SkillAnalysis {
	if log == nil {
		log = logger.Nop()
	}
	return &SkillAnalysis{jobs: jobs, skills: store.Skills, logger: log}
}

func (s *SkillAnalysis) Analysis(ctx context.Context, userID uuid.UUID) (matching.GapAnalysis, error) {
	a, _, err := s.analyze(ctx, userID)
	return a, err
}

func (s *SkillAnalysis) analyze(ctx context.Context, userID uuid.UUID) (matching.GapAnalysis, []skill.Skill, error) {
	var (
		userSkills []skill.Skill
		sets       [][]skill.Requirement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		userSkills, err = s.skills.ListByUser(gctx, userID)
		if err != nil {
			s.logger.Error("[Skills] load user skills failed", "user_id", userID, "error", err)
			return ErrInternal
		}
		return nil
	})
	g.Go(func() error {
		var err error
		sets, err = s.jobs.ActiveSkillSets(gctx)
		if err != nil {
			s.logger.Error("[Skills] load job skills failed", "error", err)
			return ErrInternal
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return matching.GapAnalysis{}, nil, err
	}
	return matching.AnalyzeSkillGaps(sets, userSkills), userSkills, nil
}
