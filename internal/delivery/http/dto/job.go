package dto

import (
	"time"

	"career-portal/internal/domain/job"
	"career-portal/internal/repository"
	"career-portal/internal/usecase"

	"github.com/google/uuid"
)

type RequirementResponse struct {
	Name     string `json:"name"`
	Level    string `json:"level,omitempty"`
	Required bool   `json:"required"`
}

type JobResponse struct {
	ID              uuid.UUID             `json:"id"`
	Title           string                `json:"title"`
	Company         string                `json:"company"`
	CompanyWebsite  string                `json:"company_website,omitempty"`
	Description     string                `json:"description"`
	Location        job.Location          `json:"location"`
	JobType         string                `json:"job_type"`
	WorkArrangement string                `json:"work_arrangement"`
	Industry        string                `json:"industry,omitempty"`
	ExperienceLevel string                `json:"experience_level,omitempty"`
	Salary          job.Salary            `json:"salary"`
	Skills          []RequirementResponse `json:"skills"`
	Status          string                `json:"status"`
	SourceURL       string                `json:"source_url,omitempty"`
	Views           int                   `json:"views"`
	Applications    int                   `json:"applications"`
	Deadline        *time.Time            `json:"deadline,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`

	MatchScore *int     `json:"match_score,omitempty"`
	HasApplied *bool    `json:"has_applied,omitempty"`
	SkillGaps  []string `json:"skill_gaps,omitempty"`
}

func NewJob(j job.Job, score *int) JobResponse {
	reqs := make([]RequirementResponse, 0, len(j.Skills))
	for _, r := range j.Skills {
		reqs = append(reqs, RequirementResponse{Name: r.Name, Level: string(r.Level), Required: r.Required})
	}
	return JobResponse{
		ID:              j.ID,
		Title:           j.Title,
		Company:         j.CompanyName,
		CompanyWebsite:  j.CompanyWebsite,
		Description:     j.Description,
		Location:        j.Location,
		JobType:         j.JobType,
		WorkArrangement: j.WorkArrangement,
		Industry:        j.Industry,
		ExperienceLevel: j.ExperienceLevel,
		Salary:          j.Salary,
		Skills:          reqs,
		Status:          j.Status,
		SourceURL:       j.SourceURL,
		Views:           j.Views,
		Applications:    j.Applications,
		Deadline:        j.Deadline,
		CreatedAt:       j.CreatedAt,
		MatchScore:      score,
	}
}

func NewScoredJobs(items []usecase.ScoredJob) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewJob(it.Job, it.MatchScore))
	}
	return out
}

type JobListResponse struct {
	Jobs       []JobResponse      `json:"jobs"`
	Pagination PaginationResponse `json:"pagination"`
}

func NewJobDetail(d usecase.JobDetail) JobResponse {
	out := NewJob(d.Job, d.MatchScore)
	out.HasApplied = d.HasApplied
	if d.MatchScore != nil {
		out.SkillGaps = d.SkillGaps
		if out.SkillGaps == nil {
			out.SkillGaps = []string{}
		}
	}
	return out
}

type ApplicationResponse struct {
	JobID      uuid.UUID    `json:"job_id"`
	Status     string       `json:"status"`
	MatchScore int          `json:"match_score"`
	AppliedAt  time.Time    `json:"applied_at"`
	Job        *JobResponse `json:"job,omitempty"`
}

func NewApplication(a job.Application) ApplicationResponse {
	return ApplicationResponse{JobID: a.JobID, Status: a.Status, MatchScore: a.MatchScore, AppliedAt: a.AppliedAt}
}

type ApplyResponse struct {
	Application ApplicationResponse `json:"application"`
	JobTitle    string              `json:"job_title"`
	Company     string              `json:"company"`
}

type ApplicationsResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Pagination   PaginationResponse    `json:"pagination"`
	StatusCounts map[string]int        `json:"status_counts"`
}

func NewApplications(r usecase.ApplicationsResult) ApplicationsResponse {
	return ApplicationsResponse{
		Applications: newApplicationViews(r.Applications),
		Pagination:   NewPagination(r.Pagination),
		StatusCounts: r.StatusCounts,
	}
}

func newApplicationViews(items []repository.ApplicationView) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, v := range items {
		a := NewApplication(v.Application)
		j := NewJob(v.Job, nil)
		a.Job = &j
		out = append(out, a)
	}
	return out
}
