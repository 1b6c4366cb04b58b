package usecase

import (
	"context"
	"time"

	"career-portal/internal/domain/activity"
	"career-portal/internal/domain/progress"
	"career-portal/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type ProgressStats struct {
	ProfileCompletion int
	ProfileDetails    int
	LastProfileUpdate time.Time
	Skills            progress.SkillStats
	Activity          progress.ActivityCounts
	Goals             progress.GoalStats
}

type ProgressUsecase interface {
	Timeline(ctx context.Context, userID uuid.UUID) (progress.Timeline, error)
	Stats(ctx context.Context, userID uuid.UUID) (ProgressStats, error)
}

type Progress struct {
	store    UserStore
	activity *ActivityLog
	now      func() time.Time
}

func NewProgressUsecase(store UserStore, activityLog *ActivityLog) *Progress {
	return &Progress{store: store, activity: activityLog, now: time.Now}
}

func (p *Progress) Timeline(ctx context.Context, userID uuid.UUID) (progress.Timeline, error) {
	items, err := p.activity.Recent(ctx, userID, 0)
	if err != nil {
		return progress.Timeline{}, err
	}
	return progress.BuildTimeline(items, progress.TimelineLimit), nil
}

func (p *Progress) Stats(ctx context.Context, userID uuid.UUID) (ProgressStats, error) {
	var (
		u     user.User
		items []activity.Activity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		u, err = p.store.Load(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = p.activity.Recent(gctx, userID, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return ProgressStats{}, err
	}

	now := p.now().UTC()
	return ProgressStats{
		ProfileCompletion: progress.CareerProgressCompletion(u),
		ProfileDetails:    progress.ProfileDetailsCompletion(u),
		LastProfileUpdate: progress.LastProfileUpdate(items, u.UpdatedAt),
		Skills:            progress.Skills(u.Skills, now),
		Activity:          progress.CountActivities(items, now),
		Goals:             progress.Goals(u.CareerGoals),
	}, nil
}
