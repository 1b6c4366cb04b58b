package activity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionUserRegistered         = "user_registered"
	ActionUserLogin              = "user_login"
	ActionUserLogout             = "user_logout"
	ActionPasswordResetRequested = "password_reset_requested"
	ActionProfileUpdated         = "profile_updated"
	ActionSkillsUpdated          = "skills_updated"
	ActionSkillRemoved           = "skill_removed"
	ActionResumeUploaded         = "resume_uploaded"
	ActionResumeDeleted          = "resume_deleted"
	ActionJobApplied             = "job_applied"
	ActionCourseEnrolled         = "course_enrolled"
)

// Activity is one entry of a user's append-only activity log.
type Activity struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Action      string
	Description string
	Metadata    map[string]any
	Timestamp   time.Time
}

func New(userID uuid.UUID, action, description string, metadata map[string]any) Activity {
	return Activity{
		ID:          uuid.New(),
		UserID:      userID,
		Action:      action,
		Description: description,
		Metadata:    metadata,
		Timestamp:   time.Now().UTC(),
	}
}
