package dto

import (
	"time"

	"career-portal/internal/domain/progress"
	"career-portal/internal/domain/skill"
	"career-portal/internal/domain/user"

	"github.com/google/uuid"
)

type SkillResponse struct {
	Name     string     `json:"name"`
	Level    string     `json:"level"`
	Category string     `json:"category,omitempty"`
	AddedAt  *time.Time `json:"added_at,omitempty"`
}

type ResumeResponse struct {
	FileName     string            `json:"file_name"`
	OriginalName string            `json:"original_name"`
	ContentType  string            `json:"content_type"`
	Size         int64             `json:"size"`
	UploadedAt   time.Time         `json:"uploaded_at"`
	Parsed       user.ParsedResume `json:"parsed_data"`
}

type UserResponse struct {
	ID              uuid.UUID        `json:"id"`
	Email           string           `json:"email"`
	FirstName       string           `json:"first_name"`
	LastName        string           `json:"last_name"`
	Role            string           `json:"role"`
	Profile         user.Profile     `json:"profile"`
	Preferences     user.Preferences `json:"preferences"`
	CareerGoals     user.CareerGoals `json:"career_goals"`
	Skills          []SkillResponse  `json:"skills"`
	HasResume       bool             `json:"has_resume"`
	Resume          *ResumeResponse  `json:"resume,omitempty"`
	ProfileComplete bool             `json:"profile_complete"`
	LastLogin       *time.Time       `json:"last_login,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

func NewSkill(s skill.Skill) SkillResponse {
	out := SkillResponse{Name: s.Name, Level: string(s.Level), Category: string(s.Category)}
	if !s.AddedAt.IsZero() {
		at := s.AddedAt
		out.AddedAt = &at
	}
	return out
}

func NewSkills(items []skill.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(items))
	for _, s := range items {
		out = append(out, NewSkill(s))
	}
	return out
}

func NewResume(r user.Resume) ResumeResponse {
	parsed := r.Parsed
	if parsed.Skills == nil {
		parsed.Skills = []string{}
	}
	return ResumeResponse{
		FileName:     r.FileName,
		OriginalName: r.OriginalName,
		ContentType:  r.ContentType,
		Size:         r.Size,
		UploadedAt:   r.UploadedAt,
		Parsed:       parsed,
	}
}

func NewUser(u user.User) UserResponse {
	out := UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Role:            u.Role,
		Profile:         u.Profile,
		Preferences:     u.Preferences,
		CareerGoals:     u.CareerGoals,
		Skills:          NewSkills(u.Skills),
		HasResume:       u.HasResume(),
		ProfileComplete: progress.ProfileComplete(u),
		LastLogin:       u.LastLogin,
		CreatedAt:       u.CreatedAt,
	}
	if u.Resume != nil {
		r := NewResume(*u.Resume)
		out.Resume = &r
	}
	return out
}
