package usecase

import (
	"context"

	"career-portal/internal/domain/activity"
	"career-portal/internal/pkg/logger"
	"career-portal/internal/repository"

	"github.com/google/uuid"
)

// ActivityNotifier receives every activity after it has been stored.
type ActivityNotifier interface {
	NotifyActivity(ctx context.Context, a activity.Activity)
}

// ActivityLog appends to a user's activity log. Recording is best effort: a
// failure is logged and never fails the operation that triggered it.
type ActivityLog struct {
	repo      repository.ActivityRepository
	notifiers []ActivityNotifier
	logger    *logger.Logger
}

func NewActivityLog(repo repository.ActivityRepository, log *logger.Logger, notifiers ...ActivityNotifier) *ActivityLog {
	if log == nil {
		log = logger.Nop()
	}
	out := make([]ActivityNotifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return &ActivityLog{repo: repo, notifiers: out, logger: log}
}

func (l *ActivityLog) Record(ctx context.Context, userID uuid.UUID, action, description string, metadata map[string]any) {
	if l == nil || l.repo == nil {
		return
	}
	a := activity.New(userID, action, description, metadata)
	if err := l.repo.Append(ctx, a); err != nil {
		l.logger.Warn("[Activity] append failed", "user_id", userID, "action", action, "error", err)
		return
	}
	for _, n := range l.notifiers {
		n.NotifyActivity(ctx, a)
	}
}

// Recent returns the newest activities for a user; limit <= 0 returns all.
func (l *ActivityLog) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]activity.Activity, error) {
	if l == nil || l.repo == nil {
		return []activity.Activity{}, nil
	}
	items, err := l.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}
