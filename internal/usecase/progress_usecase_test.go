package usecase

import (
	"context"
	"testing"
	"time"

	"career-portal/internal/domain/activity"
	"career-portal/internal/domain/skill"
	"career-portal/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress_Timeline(t *testing.T) {
	h := newHarness()
	u := h.addUser("Ana")
	other := h.addUser("Budi")
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 55; i++ {
		h.activities.items = append(h.activities.items, activity.Activity{
			ID: uuid.New(), UserID: u.ID, Action: activity.ActionUserLogin, Timestamp: now.Add(-time.Duration(i) * time.Hour),
		})
	}
	h.activities.items = append(h.activities.items, activity.Activity{ID: uuid.New(), UserID: other.ID, Action: activity.ActionUserLogin, Timestamp: now})

	tl, err := NewProgressUsecase(h.store, h.activity).Timeline(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 55, tl.Total)
	n := 0
	for _, d := range tl.Days {
		n += len(d.Entries)
	}
	assert.Equal(t, 50, n)
	assert.Equal(t, "2025-03-10", tl.Days[0].Date)
}

func TestProgress_Stats(t *testing.T) {
	h := newHarness()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	u := h.addUser("Ana",
		skill.Skill{Name: "Go", Category: skill.CategoryTechnical, AddedAt: now.Add(-24 * time.Hour)},
		skill.Skill{Name: "Speaking", AddedAt: now.Add(-60 * 24 * time.Hour)},
	)
	stored := h.users.byID[u.ID]
	stored.Profile.Phone = "+62 811"
	stored.CareerGoals = user.CareerGoals{ShortTerm: []string{"internship"}, TargetRoles: []string{"backend", "sre"}}
	h.users.byID[u.ID] = stored

	updated := now.Add(-2 * time.Hour)
	h.activities.items = []activity.Activity{
		{ID: uuid.New(), UserID: u.ID, Action: activity.ActionProfileUpdated, Timestamp: updated},
		{ID: uuid.New(), UserID: u.ID, Action: activity.ActionUserLogin, Timestamp: now.Add(-10 * 24 * time.Hour)},
	}

	uc := NewProgressUsecase(h.store, h.activity)
	uc.now = func() time.Time { return now }
	st, err := uc.Stats(context.Background(), u.ID)
	require.NoError(t, err)

	assert.Equal(t, 50, st.ProfileCompletion)
	assert.Equal(t, 33, st.ProfileDetails)
	assert.Equal(t, updated, st.LastProfileUpdate)
	assert.Equal(t, 2, st.Skills.Total)
	assert.Equal(t, 1, st.Skills.RecentlyAdded)
	assert.Equal(t, map[string]int{"technical": 1, "other": 1}, st.Skills.ByCategory)
	assert.Equal(t, 1, st.Activity.ThisWeek)
	assert.Equal(t, 2, st.Activity.ThisMonth)
	assert.Equal(t, 1, st.Goals.ShortTerm)
	assert.Equal(t, 2, st.Goals.TargetRoles)

	_, err = uc.Stats(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
