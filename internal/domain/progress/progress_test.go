package progress

import (
	"testing"
	"time"

	"career-portal/internal/domain/activity"
	"career-portal/internal/domain/skill"
	"career-portal/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion_Empty(t *testing.T) {
	var u user.User
	assert.Equal(t, 0, CareerProgressCompletion(u))
	assert.Equal(t, 0, ProfileDetailsCompletion(u))
	assert.False(t, ProfileComplete(u))
}

func TestCompletion_Full(t *testing.T) {
	u := user.User{
		Profile: user.Profile{
			Phone:     "+62 811",
			Bio:       "CS student",
			Location:  user.Location{City: "Bandung"},
			Education: user.Education{UniversityName: "ITB"},
		},
		Skills:      []skill.Skill{{Name: "Go"}},
		Resume:      &user.Resume{FileName: "cv.pdf"},
		CareerGoals: user.CareerGoals{ShortTerm: []string{"internship"}},
	}
	assert.Equal(t, 100, CareerProgressCompletion(u))
	assert.Equal(t, 100, ProfileDetailsCompletion(u))
	assert.True(t, ProfileComplete(u))
}

func TestCompletion_MetricsDiffer(t *testing.T) {
	u := user.User{
		Profile:     user.Profile{Location: user.Location{City: "Bandung"}},
		CareerGoals: user.CareerGoals{ShortTerm: []string{"x"}},
	}
	// goals count only toward career progress, city only toward profile details
	assert.Equal(t, 17, CareerProgressCompletion(u))
	assert.Equal(t, 17, ProfileDetailsCompletion(u))

	u.Profile.Phone = "1"
	u.Profile.Bio = "   "
	assert.Equal(t, 33, CareerProgressCompletion(u))
	assert.Equal(t, 33, ProfileDetailsCompletion(u))
}

func TestCompletion_AlwaysInRange(t *testing.T) {
	for mask := 0; mask < 64; mask++ {
		var u user.User
		if mask&1 != 0 {
			u.Profile.Phone = "1"
		}
		if mask&2 != 0 {
			u.Profile.Bio = "b"
		}
		if mask&4 != 0 {
			u.Profile.Location.City = "c"
		}
		if mask&8 != 0 {
			u.Profile.Education.UniversityName = "u"
		}
		if mask&16 != 0 {
			u.Skills = []skill.Skill{{Name: "Go"}}
		}
		if mask&32 != 0 {
			u.Resume = &user.Resume{FileName: "cv.pdf"}
		}
		for _, v := range []int{CareerProgressCompletion(u), ProfileDetailsCompletion(u)} {
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, 100)
		}
	}
}

func at(now time.Time, ago time.Duration, action string) activity.Activity {
	return activity.Activity{ID: uuid.New(), Action: action, Timestamp: now.Add(-ago)}
}

func TestCountActivities(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	items := []activity.Activity{
		at(now, time.Hour, activity.ActionUserLogin),
		at(now, 6*24*time.Hour, activity.ActionUserLogin),
		at(now, Week, activity.ActionUserLogin),
		at(now, 20*24*time.Hour, activity.ActionUserLogin),
		at(now, 40*24*time.Hour, activity.ActionUserLogin),
	}

	got := CountActivities(items, now)
	assert.Equal(t, 2, got.ThisWeek)
	assert.Equal(t, 4, got.ThisMonth)
	assert.Equal(t, 5, got.Total)
}

func TestBuildTimeline(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	items := []activity.Activity{
		at(now, 26*time.Hour, activity.ActionUserRegistered),
		at(now, time.Hour, activity.ActionJobApplied),
		at(now, 2*time.Hour, "something_else"),
		at(now, 25*time.Hour, activity.ActionCourseEnrolled),
	}

	tl := BuildTimeline(items, 0)
	assert.Equal(t, 4, tl.Total)
	require.Len(t, tl.Days, 2)

	assert.Equal(t, "2025-03-10", tl.Days[0].Date)
	require.Len(t, tl.Days[0].Entries, 2)
	assert.Equal(t, "job", tl.Days[0].Entries[0].Type)
	assert.Equal(t, "other", tl.Days[0].Entries[1].Type)

	assert.Equal(t, "2025-03-09", tl.Days[1].Date)
	assert.Equal(t, "learning", tl.Days[1].Entries[0].Type)
	assert.Equal(t, "account", tl.Days[1].Entries[1].Type)
}

func TestBuildTimeline_Limit(t *testing.T) {
	now := time.Now().UTC()
	var items []activity.Activity
	for i := 0; i < 60; i++ {
		items = append(items, at(now, time.Duration(i)*time.Minute, activity.ActionUserLogin))
	}

	tl := BuildTimeline(items, TimelineLimit)
	n := 0
	for _, d := range tl.Days {
		n += len(d.Entries)
	}
	assert.Equal(t, 50, n)
	assert.Equal(t, 60, tl.Total)
}

func TestLastProfileUpdate(t *testing.T) {
	now := time.Now().UTC()
	created := now.Add(-90 * 24 * time.Hour)

	assert.Equal(t, created, LastProfileUpdate(nil, created))

	items := []activity.Activity{
		at(now, 3*time.Hour, activity.ActionProfileUpdated),
		at(now, time.Hour, activity.ActionUserLogin),
		at(now, 2*time.Hour, activity.ActionProfileUpdated),
	}
	assert.Equal(t, now.Add(-2*time.Hour), LastProfileUpdate(items, created))
}

func TestSkillsStats(t *testing.T) {
	now := time.Now().UTC()
	got := Skills([]skill.Skill{
		{Name: "Go", Category: skill.CategoryTechnical, AddedAt: now.Add(-time.Hour)},
		{Name: "Teamwork", Category: skill.CategorySoft, AddedAt: now.Add(-60 * 24 * time.Hour)},
		{Name: "Chess"},
	}, now)

	assert.Equal(t, 3, got.Total)
	assert.Equal(t, map[string]int{"technical": 1, "soft": 1, "other": 1}, got.ByCategory)
	assert.Equal(t, 1, got.RecentlyAdded)
}

func TestQuickActions(t *testing.T) {
	u := user.User{Resume: &user.Resume{FileName: "cv.pdf"}}
	qa := QuickActions(u, 80)
	require.Len(t, qa, 3)
	assert.True(t, qa[0].Completed)
	assert.True(t, qa[1].Completed)
	assert.False(t, qa[2].Completed)
}
