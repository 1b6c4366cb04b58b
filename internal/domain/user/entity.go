package user

import (
	"time"

	"career-portal/internal/domain/skill"

	"github.com/google/uuid"
)

const RoleStudent = "student"

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string

	Profile     Profile
	Preferences Preferences
	CareerGoals CareerGoals

	Skills []skill.Skill
	Resume *Resume

	IsActive  bool
	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u User) HasResume() bool {
	return u.Resume != nil && u.Resume.FileName != ""
}

type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

type Education struct {
	UniversityName string  `json:"university_name,omitempty"`
	Degree         string  `json:"degree,omitempty"`
	Major          string  `json:"major,omitempty"`
	GraduationYear int     `json:"graduation_year,omitempty"`
	GPA            float64 `json:"gpa,omitempty"`
}

type Profile struct {
	Phone        string     `json:"phone,omitempty"`
	Bio          string     `json:"bio,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Location     Location   `json:"location"`
	Education    Education  `json:"education"`
	LinkedInURL  string     `json:"linkedin_url,omitempty"`
	GitHubURL    string     `json:"github_url,omitempty"`
	PortfolioURL string     `json:"portfolio_url,omitempty"`
}

type Preferences struct {
	JobTypes        []string `json:"job_types"`
	WorkEnvironment string   `json:"work_environment,omitempty"`
	Industries      []string `json:"industries"`
	Locations       []string `json:"locations"`
	SalaryMin       int      `json:"salary_min,omitempty"`
	SalaryMax       int      `json:"salary_max,omitempty"`
}

type CareerGoals struct {
	ShortTerm       []string `json:"short_term"`
	LongTerm        []string `json:"long_term"`
	TargetRoles     []string `json:"target_roles"`
	TargetCompanies []string `json:"target_companies"`
}

type Resume struct {
	FileName     string
	OriginalName string
	StorageKey   string
	ContentType  string
	Size         int64
	UploadedAt   time.Time
	Parsed       ParsedResume
}

type ParsedResume struct {
	Skills          []string `json:"skills"`
	Email           string   `json:"email,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	ExperienceYears int      `json:"experience_years,omitempty"`
	HasExperience   bool     `json:"has_experience"`
	HasEducation    bool     `json:"has_education"`
	HasProjects     bool     `json:"has_projects"`
	TextLength      int      `json:"text_length"`
}
