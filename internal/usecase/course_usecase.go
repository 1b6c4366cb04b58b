package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"career-portal/internal/domain/activity"
	"career-portal/internal/domain/course"
	"career-portal/internal/domain/matching"
	"career-portal/internal/domain/skill"
	"career-portal/internal/pkg/logger"
	"career-portal/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type CourseListParams struct {
	Page      int
	Limit     int
	Level     string
	Category  string
	Provider  string
	Pricing   string
	Search    string
	SortBy    string
	SortOrder string
}

// ScoredCourse carries a course with the viewer's relevance score; nil for
// anonymous viewers.
type ScoredCourse struct {
	Course         course.Course
	RelevanceScore *int
}

type CourseListResult struct {
	Courses    []ScoredCourse
	Pagination Pagination
}

type CourseUsecase interface {
	List(ctx context.Context, viewer *uuid.UUID, p CourseListParams) (CourseListResult, error)
	Recommendations(ctx context.Context, userID uuid.UUID, limit int) ([]ScoredCourse, error)
	Get(ctx context.Context, viewer *uuid.UUID, id uuid.UUID) (ScoredCourse, error)
	Enroll(ctx context.Context, userID, courseID uuid.UUID) (course.Enrollment, error)
}

type Courses struct {
	courses  repository.CourseRepository
	skills   *SkillAnalysis
	cache    ListingCache
	activity *ActivityLog
	logger   *logger.Logger
	now      func() time.Time
}

func NewCourseUsecase(courses repository.CourseRepository, skills *SkillAnalysis, cache ListingCache, activityLog *ActivityLog, log *logger.Logger) *Courses {
	if log == nil {
		log = logger.Nop()
	}
	return &Courses{courses: courses, skills: skills, cache: cache, activity: activityLog, logger: log, now: time.Now}
}

type coursePage struct {
	Courses []course.Course `json:"courses"`
	Total   int             `json:"total"`
}

// viewerContext is what relevance scoring needs about the viewer.
type viewerContext struct {
	skills []skill.Skill
	gaps   []string
}

func (u *Courses) List(ctx context.Context, viewer *uuid.UUID, p CourseListParams) (CourseListResult, error) {
	page, limit, err := normalizePage(p.Page, p.Limit, defaultPageLimit)
	if err != nil {
		return CourseListResult{}, err
	}
	p.Page, p.Limit = page, limit
	p.SortOrder = strings.ToLower(strings.TrimSpace(p.SortOrder))
	if !validSort(p.SortBy, p.SortOrder, "rating", "created_at", "title", "students") {
		return CourseListResult{}, ErrInvalidInput
	}
	if p.SortOrder == "" {
		p.SortOrder = "desc"
	}
	if p.Level != "" {
		if _, ok := skill.ParseLevel(p.Level); !ok {
			return CourseListResult{}, ErrInvalidInput
		}
	}

	var (
		pg coursePage
		vc *viewerContext
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pg, err = u.listPage(gctx, p)
		return err
	})
	if viewer != nil {
		g.Go(func() error {
			var err error
			vc, err = u.viewer(gctx, *viewer)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return CourseListResult{}, err
	}

	out := make([]ScoredCourse, 0, len(pg.Courses))
	for _, c := range pg.Courses {
		out = append(out, vc.score(c))
	}
	return CourseListResult{Courses: out, Pagination: paginate(page, limit, pg.Total)}, nil
}

func (u *Courses) viewer(ctx context.Context, userID uuid.UUID) (*viewerContext, error) {
	a, userSkills, err := u.skills.analyze(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &viewerContext{skills: userSkills, gaps: a.GapNames()}, nil
}

func (vc *viewerContext) score(c course.Course) ScoredCourse {
	if vc == nil {
		return ScoredCourse{Course: c}
	}
	s := matching.CourseRelevanceScore(vc.skills, c.Skills, vc.gaps)
	return ScoredCourse{Course: c, RelevanceScore: &s}
}

func (u *Courses) listPage(ctx context.Context, p CourseListParams) (coursePage, error) {
	key := CourseListCacheKey(p)
	if u.cache != nil {
		var cached coursePage
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	items, total, err := u.courses.List(ctx, repository.CourseFilter{
		Level:     p.Level,
		Category:  p.Category,
		Provider:  p.Provider,
		Pricing:   p.Pricing,
		Search:    p.Search,
		SortBy:    p.SortBy,
		SortOrder: p.SortOrder,
		Limit:     p.Limit,
		Offset:    (p.Page - 1) * p.Limit,
	})
	if err != nil {
		u.logger.Error("[Courses] list failed", "error", err)
		return coursePage{}, ErrInternal
	}
	pg := coursePage{Courses: items, Total: total}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, pg, 0)
	}
	return pg, nil
}

func (u *Courses) Recommendations(ctx context.Context, userID uuid.UUID, limit int) ([]ScoredCourse, error) {
	if limit == 0 {
		limit = defaultRecommendationCap
	}
	if limit < 1 || limit > maxPageLimit {
		return nil, ErrInvalidInput
	}

	var (
		items []course.Course
		vc    *viewerContext
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, _, err = u.courses.List(gctx, repository.CourseFilter{SortBy: "rating", SortOrder: "desc", Limit: limit * 2})
		if err != nil {
			u.logger.Error("[Courses] recommendations query failed", "user_id", userID, "error", err)
			return ErrInternal
		}
		return nil
	})
	g.Go(func() error {
		var err error
		vc, err = u.viewer(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rankCourses(items, vc, limit), nil
}

// rankCourses keeps courses with a positive relevance score, best first.
func rankCourses(items []course.Course, vc *viewerContext, limit int) []ScoredCourse {
	out := make([]ScoredCourse, 0, len(items))
	for _, c := range items {
		sc := vc.score(c)
		if sc.RelevanceScore == nil || *sc.RelevanceScore <= 0 {
			continue
		}
		out = append(out, sc)
	}
	sort.SliceStable(out, func(i, j int) bool { return *out[i].RelevanceScore > *out[j].RelevanceScore })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (u *Courses) Get(ctx context.Context, viewer *uuid.UUID, id uuid.UUID) (ScoredCourse, error) {
	c, err := u.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return ScoredCourse{}, ErrCourseNotFound
		}
		u.logger.Error("[Courses] get failed", "course_id", id, "error", err)
		return ScoredCourse{}, ErrInternal
	}
	if viewer == nil {
		return ScoredCourse{Course: c}, nil
	}
	vc, err := u.viewer(ctx, *viewer)
	if err != nil {
		return ScoredCourse{}, err
	}
	return vc.score(c), nil
}

func (u *Courses) Enroll(ctx context.Context, userID, courseID uuid.UUID) (course.Enrollment, error) {
	c, err := u.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return course.Enrollment{}, ErrCourseNotFound
		}
		return course.Enrollment{}, ErrInternal
	}
	if !c.IsActive {
		return course.Enrollment{}, ErrCourseNotFound
	}

	e := course.Enrollment{CourseID: courseID, UserID: userID, EnrolledAt: u.now().UTC()}
	if err := u.courses.Enroll(ctx, e); err != nil {
		if errors.Is(err, course.ErrAlreadyEnrolled) {
			return course.Enrollment{}, ErrAlreadyEnrolled
		}
		u.logger.Error("[Courses] enroll failed", "course_id", courseID, "user_id", userID, "error", err)
		return course.Enrollment{}, ErrInternal
	}

	u.activity.Record(ctx, userID, activity.ActionCourseEnrolled, "Enrolled in "+c.Title, map[string]any{
		"course_id": courseID.String(),
		"title":     c.Title,
		"provider":  c.Provider,
	})
	if u.cache != nil {
		_ = u.cache.DeleteByPattern(ctx, courseListKeyPrefix+"*")
	}
	return e, nil
}
