package progress

import (
	"sort"
	"time"

	"career-portal/internal/domain/activity"
)

const (
	TimelineLimit = 50
	Week          = 7 * 24 * time.Hour
	Month         = 30 * 24 * time.Hour
)

type ActivityCounts struct {
	ThisWeek  int
	ThisMonth int
	Total     int
}

// CountActivities counts entries strictly newer than now-7d and now-30d.
func CountActivities(items []activity.Activity, now time.Time) ActivityCounts {
	weekAgo := now.Add(-Week)
	monthAgo := now.Add(-Month)

	out := ActivityCounts{Total: len(items)}
	for _, a := range items {
		if a.Timestamp.After(weekAgo) {
			out.ThisWeek++
		}
		if a.Timestamp.After(monthAgo) {
			out.ThisMonth++
		}
	}
	return out
}

type TimelineEntry struct {
	Activity activity.Activity
	Type     string
}

type TimelineDay struct {
	Date    string
	Entries []TimelineEntry
}

type Timeline struct {
	Days  []TimelineDay
	Total int
}

// TypeOf buckets an activity action into a timeline category.
func TypeOf(action string) string {
	switch action {
	case activity.ActionUserRegistered, activity.ActionUserLogin:
		return "account"
	case activity.ActionProfileUpdated:
		return "profile"
	case activity.ActionSkillsUpdated, activity.ActionSkillRemoved:
		return "skills"
	case activity.ActionResumeUploaded, activity.ActionResumeDeleted:
		return "resume"
	case activity.ActionJobApplied:
		return "job"
	case activity.ActionCourseEnrolled:
		return "learning"
	default:
		return "other"
	}
}

// BuildTimeline sorts items newest first, keeps at most limit entries and groups
// them by UTC calendar day. Total is the size of the full input.
func BuildTimeline(items []activity.Activity, limit int) Timeline {
	if limit <= 0 {
		limit = TimelineLimit
	}
	sorted := make([]activity.Activity, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	days := make([]TimelineDay, 0)
	pos := map[string]int{}
	for _, a := range sorted {
		d := a.Timestamp.UTC().Format("2006-01-02")
		i, ok := pos[d]
		if !ok {
			i = len(days)
			pos[d] = i
			days = append(days, TimelineDay{Date: d})
		}
		days[i].Entries = append(days[i].Entries, TimelineEntry{Activity: a, Type: TypeOf(a.Action)})
	}

	return Timeline{Days: days, Total: len(items)}
}

// LastProfileUpdate returns the newest profile_updated timestamp, or fallback.
func LastProfileUpdate(items []activity.Activity, fallback time.Time) time.Time {
	var last time.Time
	for _, a := range items {
		if a.Action == activity.ActionProfileUpdated && a.Timestamp.After(last) {
			last = a.Timestamp
		}
	}
	if last.IsZero() {
		return fallback
	}
	return last
}
