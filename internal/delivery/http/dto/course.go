package dto

import (
	"time"

	"career-portal/internal/domain/course"
	"career-portal/internal/usecase"

	"github.com/google/uuid"
)

type CourseResponse struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Provider       string          `json:"provider"`
	Instructor     string          `json:"instructor,omitempty"`
	Category       string          `json:"category"`
	Level          string          `json:"level"`
	DurationHours  int             `json:"duration_hours"`
	Pricing        course.Pricing  `json:"pricing"`
	Rating         course.Rating   `json:"rating"`
	Skills         []SkillResponse `json:"skills"`
	URL            string          `json:"url,omitempty"`
	StudentsCount  int             `json:"students_count"`
	CreatedAt      time.Time       `json:"created_at"`
	RelevanceScore *int            `json:"relevance_score,omitempty"`
}

func NewCourse(sc usecase.ScoredCourse) CourseResponse {
	c := sc.Course
	return CourseResponse{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		Provider:       c.Provider,
		Instructor:     c.Instructor,
		Category:       c.Category,
		Level:          string(c.Level),
		DurationHours:  c.DurationHours,
		Pricing:        c.Pricing,
		Rating:         c.Rating,
		Skills:         NewSkills(c.Skills),
		URL:            c.URL,
		StudentsCount:  c.StudentsCount,
		CreatedAt:      c.CreatedAt,
		RelevanceScore: sc.RelevanceScore,
	}
}

func NewCourses(items []usecase.ScoredCourse) []CourseResponse {
	out := make([]CourseResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewCourse(it))
	}
	return out
}

type CourseListResponse struct {
	Courses    []CourseResponse   `json:"courses"`
	Pagination PaginationResponse `json:"pagination"`
}

type EnrollmentResponse struct {
	CourseID   uuid.UUID `json:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
	Progress   int       `json:"progress"`
}
