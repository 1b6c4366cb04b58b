package course

import (
	"errors"
	"time"

	"career-portal/internal/domain/skill"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("course not found")
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
)

const (
	PricingFree     = "free"
	PricingPaid     = "paid"
	PricingFreemium = "freemium"
)

type Pricing struct {
	Type     string  `json:"type"`
	Amount   float64 `json:"amount,omitempty"`
	Currency string  `json:"currency,omitempty"`
}

type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type Course struct {
	ID            uuid.UUID
	Title         string
	Description   string
	Provider      string
	Instructor    string
	Category      string
	Level         skill.Level
	DurationHours int
	Pricing       Pricing
	Rating        Rating
	Skills        []skill.Skill
	URL           string
	StudentsCount int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Enrollment struct {
	CourseID   uuid.UUID
	UserID     uuid.UUID
	EnrolledAt time.Time
	Progress   int
}
