package job

import (
	"errors"
	"time"

	"career-portal/internal/domain/skill"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("job not found")
	ErrAlreadyApplied = errors.New("already applied to this job")
)

const (
	StatusActive = "active"
	StatusClosed = "closed"
	StatusDraft  = "draft"
)

const (
	ApplicationApplied     = "applied"
	ApplicationReviewing   = "reviewing"
	ApplicationShortlisted = "shortlisted"
	ApplicationRejected    = "rejected"
	ApplicationAccepted    = "accepted"
)

var JobTypes = []string{"full-time", "part-time", "internship", "contract", "freelance"}

var WorkArrangements = []string{"remote", "onsite", "hybrid"}

type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

type Salary struct {
	Min      int    `json:"min,omitempty"`
	Max      int    `json:"max,omitempty"`
	Currency string `json:"currency,omitempty"`
}

type Job struct {
	ID              uuid.UUID
	Title           string
	CompanyName     string
	CompanyWebsite  string
	Description     string
	Location        Location
	JobType         string
	WorkArrangement string
	Industry        string
	ExperienceLevel string
	Salary          Salary
	Skills          []skill.Requirement
	Status          string
	Source          string
	SourceURL       string
	ExternalID      string
	Views           int
	Applications    int
	Deadline        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (j Job) IsActive() bool {
	return j.Status == StatusActive
}

type Application struct {
	JobID      uuid.UUID
	UserID     uuid.UUID
	AppliedAt  time.Time
	MatchScore int
	Status     string
}
