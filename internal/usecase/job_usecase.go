package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"career-portal/internal/domain/activity"
	"career-portal/internal/domain/job"
	"career-portal/internal/domain/matching"
	"career-portal/internal/domain/skill"
	"career-portal/internal/domain/user"
	"career-portal/internal/pkg/logger"
	"career-portal/internal/repository"

	"github.com/google/uuid"
)

const (
	recommendationMinScore   = 20
	defaultRecommendationCap = 10
)

type JobListParams struct {
	Page            int
	Limit           int
	JobType         string
	WorkArrangement string
	Location        string
	Company         string
	Search          string
	Skills          []string
	SortBy          string
	SortOrder       string
}

// ScoredJob carries a job with the viewer's match score; MatchScore is nil for
// anonymous viewers.
type ScoredJob struct {
	Job        job.Job
	MatchScore *int
}

type JobListResult struct {
	Jobs       []ScoredJob
	Pagination Pagination
}

type JobDetail struct {
	Job        job.Job
	MatchScore *int
	HasApplied *bool
	SkillGaps  []string
}

type ApplyResult struct {
	Application job.Application
	JobTitle    string
	Company     string
}

type ApplicationsResult struct {
	Applications []repository.ApplicationView
	Pagination   Pagination
	StatusCounts map[string]int
}

type JobUsecase interface {
	List(ctx context.Context, viewer *uuid.UUID, p JobListParams) (JobListResult, error)
	Recommendations(ctx context.Context, userID uuid.UUID, limit int) ([]ScoredJob, error)
	Get(ctx context.Context, viewer *uuid.UUID, id uuid.UUID) (JobDetail, error)
	Apply(ctx context.Context, userID, jobID uuid.UUID) (ApplyResult, error)
	Applications(ctx context.Context, userID uuid.UUID, status string, page, limit int) (ApplicationsResult, error)
}

type Jobs struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	store        UserStore
	cache        ListingCache
	activity     *ActivityLog
	logger       *logger.Logger
	now          func() time.Time
}

func NewJobUsecase(jobs repository.JobRepository, applications repository.ApplicationRepository, store UserStore, cache ListingCache, activityLog *ActivityLog, log *logger.Logger) *Jobs {
	if log == nil {
		log = logger.Nop()
	}
	return &Jobs{
		jobs:         jobs,
		applications: applications,
		store:        store,
		cache:        cache,
		activity:     activityLog,
		logger:       log,
		now:          time.Now,
	}
}

type jobPage struct {
	Jobs  []job.Job `json:"jobs"`
	Total int       `json:"total"`
}

func (u *Jobs) List(ctx context.Context, viewer *uuid.UUID, p JobListParams) (JobListResult, error) {
	page, limit, err := normalizePage(p.Page, p.Limit, defaultPageLimit)
	if err != nil {
		return JobListResult{}, err
	}
	p.Page, p.Limit = page, limit
	p.SortOrder = strings.ToLower(strings.TrimSpace(p.SortOrder))
	if !validSort(p.SortBy, p.SortOrder, "created_at", "title", "views", "applications") {
		return JobListResult{}, ErrInvalidInput
	}
	if p.SortOrder == "" {
		p.SortOrder = "desc"
	}

	pg, err := u.listPage(ctx, p)
	if err != nil {
		return JobListResult{}, err
	}

	out := make([]ScoredJob, 0, len(pg.Jobs))
	for _, j := range pg.Jobs {
		out = append(out, ScoredJob{Job: j})
	}

	if viewer != nil {
		userSkills, err := u.store.Skills.ListByUser(ctx, *viewer)
		if err != nil {
			u.logger.Error("[Jobs] load viewer skills failed", "user_id", *viewer, "error", err)
			return JobListResult{}, ErrInternal
		}
		for i := range out {
			s := matching.JobMatchScore(userSkills, out[i].Job.Skills)
			out[i].MatchScore = &s
		}
		if p.SortBy == "" || p.SortBy == "created_at" {
			sort.SliceStable(out, func(i, j int) bool { return *out[i].MatchScore > *out[j].MatchScore })
		}
	}

	return JobListResult{Jobs: out, Pagination: paginate(page, limit, pg.Total)}, nil
}

func (u *Jobs) listPage(ctx context.Context, p JobListParams) (jobPage, error) {
	key := JobListCacheKey(p)
	if u.cache != nil {
		var cached jobPage
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			u.logger.Debug("[Jobs] Cache HIT", "key", key)
			return cached, nil
		}
		u.logger.Debug("[Jobs] Cache MISS", "key", key)
	}

	jobs, total, err := u.jobs.List(ctx, repository.JobFilter{
		JobType:         p.JobType,
		WorkArrangement: p.WorkArrangement,
		Location:        p.Location,
		Company:         p.Company,
		Search:          p.Search,
		Skills:          p.Skills,
		SortBy:          p.SortBy,
		SortOrder:       p.SortOrder,
		Limit:           p.Limit,
		Offset:          (p.Page - 1) * p.Limit,
	})
	if err != nil {
		u.logger.Error("[Jobs] list failed", "error", err)
		return jobPage{}, ErrInternal
	}
	pg := jobPage{Jobs: jobs, Total: total}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, pg, 0); err == nil {
			u.logger.Debug("[Jobs] Cache SET", "key", key)
		}
	}
	return pg, nil
}

func (u *Jobs) Recommendations(ctx context.Context, userID uuid.UUID, limit int) ([]ScoredJob, error) {
	if limit == 0 {
		limit = defaultRecommendationCap
	}
	if limit < 1 || limit > maxPageLimit {
		return nil, ErrInvalidInput
	}

	usr, err := u.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	jobs, err := u.jobs.ListActiveByPreference(ctx, preferenceFilter(usr.Preferences, limit*3))
	if err != nil {
		u.logger.Error("[Jobs] recommendations query failed", "user_id", userID, "error", err)
		return nil, ErrInternal
	}

	return rankJobs(jobs, usr.Skills, limit), nil
}

func preferenceFilter(p user.Preferences, limit int) repository.JobPreferenceFilter {
	f := repository.JobPreferenceFilter{
		JobTypes:   p.JobTypes,
		Industries: p.Industries,
		Limit:      limit,
	}
	if env := strings.ToLower(p.WorkEnvironment); env != "" && env != "flexible" {
		f.WorkArrangement = env
	}
	return f
}

// rankJobs keeps jobs scoring above the recommendation threshold, best first.
func rankJobs(jobs []job.Job, userSkills []skill.Skill, limit int) []ScoredJob {
	out := make([]ScoredJob, 0, len(jobs))
	for _, j := range jobs {
		s := matching.JobMatchScore(userSkills, j.Skills)
		if s <= recommendationMinScore {
			continue
		}
		out = append(out, ScoredJob{Job: j, MatchScore: &s})
	}
	sort.SliceStable(out, func(i, j int) bool { return *out[i].MatchScore > *out[j].MatchScore })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (u *Jobs) Get(ctx context.Context, viewer *uuid.UUID, id uuid.UUID) (JobDetail, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return JobDetail{}, ErrJobNotFound
		}
		u.logger.Error("[Jobs] get failed", "job_id", id, "error", err)
		return JobDetail{}, ErrInternal
	}

	if err := u.jobs.IncrementViews(ctx, id); err != nil {
		u.logger.Warn("[Jobs] view count failed", "job_id", id, "error", err)
	} else {
		j.Views++
	}

	out := JobDetail{Job: j}
	if viewer == nil {
		return out, nil
	}

	userSkills, err := u.store.Skills.ListByUser(ctx, *viewer)
	if err != nil {
		return JobDetail{}, ErrInternal
	}
	applied, err := u.applications.HasApplied(ctx, id, *viewer)
	if err != nil {
		return JobDetail{}, ErrInternal
	}
	score := matching.JobMatchScore(userSkills, j.Skills)
	out.MatchScore = &score
	out.HasApplied = &applied
	out.SkillGaps = matching.MissingSkills(userSkills, j.Skills)
	return out, nil
}

// Apply records one application per (job, user). The insert is atomic in the
// store; the cache lock only turns fast double submits away early.
func (u *Jobs) Apply(ctx context.Context, userID, jobID uuid.UUID) (ApplyResult, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ApplyResult{}, ErrJobNotFound
		}
		return ApplyResult{}, ErrInternal
	}
	if !j.IsActive() {
		return ApplyResult{}, ErrJobNotActive
	}

	if u.cache != nil {
		lock := applyLockKey(jobID, userID)
		ok, err := u.cache.SetIfNotExists(ctx, lock, "1", applyLockTTL)
		if err == nil && !ok {
			return ApplyResult{}, ErrAlreadyApplied
		}
		if err == nil {
			defer func() { _ = u.cache.Delete(context.WithoutCancel(ctx), lock) }()
		}
	}

	userSkills, err := u.store.Skills.ListByUser(ctx, userID)
	if err != nil {
		return ApplyResult{}, ErrInternal
	}

	app := job.Application{
		JobID:      jobID,
		UserID:     userID,
		AppliedAt:  u.now().UTC(),
		MatchScore: matching.JobMatchScore(userSkills, j.Skills),
		Status:     job.ApplicationApplied,
	}
	if err := u.applications.Apply(ctx, app); err != nil {
		if errors.Is(err, job.ErrAlreadyApplied) {
			return ApplyResult{}, ErrAlreadyApplied
		}
		u.logger.Error("[Jobs] apply failed", "job_id", jobID, "user_id", userID, "error", err)
		return ApplyResult{}, ErrInternal
	}

	u.activity.Record(ctx, userID, activity.ActionJobApplied,
		"Applied to "+j.Title+" at "+j.CompanyName,
		map[string]any{
			"job_id":      jobID.String(),
			"job_title":   j.Title,
			"company":     j.CompanyName,
			"match_score": app.MatchScore,
		},
	)

	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, jobListKeyPrefix+"*"); err != nil {
			u.logger.Warn("[Jobs] cache invalidation failed", "error", err)
		}
	}

	return ApplyResult{Application: app, JobTitle: j.Title, Company: j.CompanyName}, nil
}

var applicationStatuses = []string{
	job.ApplicationApplied,
	job.ApplicationReviewing,
	job.ApplicationShortlisted,
	job.ApplicationRejected,
	job.ApplicationAccepted,
}

func (u *Jobs) Applications(ctx context.Context, userID uuid.UUID, status string, page, limit int) (ApplicationsResult, error) {
	page, limit, err := normalizePage(page, limit, 10)
	if err != nil {
		return ApplicationsResult{}, err
	}
	status = strings.ToLower(strings.TrimSpace(status))

	items, total, err := u.applications.ListByUser(ctx, userID, repository.ApplicationFilter{
		Status: status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		u.logger.Error("[Jobs] list applications failed", "user_id", userID, "error", err)
		return ApplicationsResult{}, ErrInternal
	}

	stored, err := u.applications.StatusCounts(ctx, userID)
	if err != nil {
		return ApplicationsResult{}, ErrInternal
	}
	counts := make(map[string]int, len(applicationStatuses))
	for _, s := range applicationStatuses {
		counts[s] = stored[s]
	}

	return ApplicationsResult{
		Applications: items,
		Pagination:   paginate(page, limit, total),
		StatusCounts: counts,
	}, nil
}
