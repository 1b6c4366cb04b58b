package dto

import (
	"time"

	"career-portal/internal/domain/activity"
	"career-portal/internal/domain/progress"

	"github.com/google/uuid"
)

type ActivityResponse struct {
	ID          uuid.UUID      `json:"id"`
	Action      string         `json:"action"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
	Type        string         `json:"type,omitempty"`
}

func NewActivity(a activity.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID,
		Action:      a.Action,
		Description: a.Description,
		Metadata:    a.Metadata,
		Timestamp:   a.Timestamp,
	}
}

func NewActivities(items []activity.Activity) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewActivity(a))
	}
	return out
}

type TimelineDayResponse struct {
	Date       string             `json:"date"`
	Activities []ActivityResponse `json:"activities"`
}

type TimelineResponse struct {
	Timeline        []TimelineDayResponse `json:"timeline"`
	TotalActivities int                   `json:"total_activities"`
}

func NewTimeline(tl progress.Timeline) TimelineResponse {
	days := make([]TimelineDayResponse, 0, len(tl.Days))
	for _, d := range tl.Days {
		entries := make([]ActivityResponse, 0, len(d.Entries))
		for _, e := range d.Entries {
			a := NewActivity(e.Activity)
			a.Type = e.Type
			entries = append(entries, a)
		}
		days = append(days, TimelineDayResponse{Date: d.Date, Activities: entries})
	}
	return TimelineResponse{Timeline: days, TotalActivities: tl.Total}
}
