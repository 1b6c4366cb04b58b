package usecase

import (
	"context"
	"testing"

	"career-portal/internal/domain/activity"
	"career-portal/internal/domain/skill"
	"career-portal/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourses(h *harness, cache ListingCache) *Courses {
	analysis := NewSkillAnalysis(h.jobs, h.store, logger.Nop())
	return NewCourseUsecase(h.courses, analysis, cache, h.activity, logger.Nop())
}

func TestCourses_ListScoresWithLiveGaps(t *testing.T) {
	h := newHarness()
	u := h.addUser("Ana", has("Go", skill.LevelBeginner))
	h.addJob("Backend", req("Docker", ""), req("Go", ""))
	h.addCourse("Containers", has("Docker", skill.LevelBeginner))
	h.addCourse("Advanced Go", has("Go", skill.LevelAdvanced))
	h.addCourse("Painting", has("Watercolor", skill.LevelBeginner))

	res, err := newCourses(h, nil).List(context.Background(), &u.ID, CourseListParams{})
	require.NoError(t, err)
	require.Len(t, res.Courses, 3)
	assert.Equal(t, 20, *res.Courses[0].RelevanceScore, "docker is a gap")
	assert.Equal(t, 5, *res.Courses[1].RelevanceScore, "course level above the user's")
	assert.Equal(t, 10, *res.Courses[2].RelevanceScore, "missing but not in demand")

	anon, err := newCourses(h, nil).List(context.Background(), nil, CourseListParams{})
	require.NoError(t, err)
	assert.Nil(t, anon.Courses[0].RelevanceScore)
}

func TestCourses_ListValidation(t *testing.T) {
	uc := newCourses(newHarness(), nil)
	_, err := uc.List(context.Background(), nil, CourseListParams{Level: "wizard"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.List(context.Background(), nil, CourseListParams{SortBy: "price"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCourses_Recommendations(t *testing.T) {
	h := newHarness()
	u := h.addUser("Ana", has("Go", skill.LevelExpert))
	h.addCourse("Go Basics", has("Go", skill.LevelBeginner))
	h.addCourse("SQL", has("SQL", skill.LevelBeginner))
	h.addCourse("Kubernetes", has("Kubernetes", ""), has("Docker", ""))

	recs, err := newCourses(h, nil).Recommendations(context.Background(), u.ID, 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Kubernetes", recs[0].Course.Title)
	assert.Equal(t, 20, *recs[0].RelevanceScore)
	assert.Equal(t, "SQL", recs[1].Course.Title)
}

func TestCourses_GetAndEnroll(t *testing.T) {
	h := newHarness()
	cache := newFakeCache()
	u := h.addUser("Ana")
	c := h.addCourse("Go Basics", has("Go", skill.LevelBeginner))
	uc := newCourses(h, cache)

	got, err := uc.Get(context.Background(), &u.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, *got.RelevanceScore)

	_, err = uc.Get(context.Background(), nil, uuid.New())
	assert.ErrorIs(t, err, ErrCourseNotFound)

	_, err = uc.List(context.Background(), nil, CourseListParams{})
	require.NoError(t, err)
	require.Equal(t, 1, cache.size())

	e, err := uc.Enroll(context.Background(), u.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, e.CourseID)
	assert.Equal(t, 0, cache.size())
	assert.Contains(t, h.activities.actions(u.ID), activity.ActionCourseEnrolled)

	_, err = uc.Enroll(context.Background(), u.ID, c.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	_, err = uc.Enroll(context.Background(), u.ID, uuid.New())
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestSkillAnalysis(t *testing.T) {
	h := newHarness()
	u := h.addUser("Ana", has("go", ""))
	h.addJob("A", req("Go", ""), req("Docker", skill.LevelExpert))
	h.addJob("B", req("Docker", skill.LevelExpert), opt("SQL", ""))

	a, err := NewSkillAnalysis(h.jobs, h.store, logger.Nop()).Analysis(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, a.TotalSkills)
	assert.Equal(t, []string{"Docker", "SQL"}, a.GapNames())
	require.Len(t, a.Trending, 3)
	assert.True(t, a.Trending[1].HasSkill)
}
