package progress

import (
	"time"

	"career-portal/internal/domain/skill"
	"career-portal/internal/domain/user"
)

type SkillStats struct {
	Total         int
	ByCategory    map[string]int
	RecentlyAdded int
}

// Skills summarises a skill list. Skills without a category count as "other";
// RecentlyAdded counts skills added within the last 30 days.
func Skills(skills []skill.Skill, now time.Time) SkillStats {
	out := SkillStats{Total: len(skills), ByCategory: map[string]int{}}
	monthAgo := now.Add(-Month)
	for _, s := range skills {
		cat := string(s.Category)
		if cat == "" {
			cat = "other"
		}
		out.ByCategory[cat]++
		if !s.AddedAt.IsZero() && s.AddedAt.After(monthAgo) {
			out.RecentlyAdded++
		}
	}
	return out
}

// GroupByCategory groups skills under their category, "other" when unset,
// preserving list order within each group.
func GroupByCategory(skills []skill.Skill) map[string][]skill.Skill {
	out := map[string][]skill.Skill{}
	for _, s := range skills {
		cat := string(s.Category)
		if cat == "" {
			cat = "other"
		}
		out[cat] = append(out[cat], s)
	}
	return out
}

type GoalStats struct {
	ShortTerm   int
	LongTerm    int
	TargetRoles int
}

func Goals(g user.CareerGoals) GoalStats {
	return GoalStats{ShortTerm: len(g.ShortTerm), LongTerm: len(g.LongTerm), TargetRoles: len(g.TargetRoles)}
}

type QuickAction struct {
	ID        string
	Title     string
	Completed bool
}

// QuickActions lists the onboarding steps shown on the dashboard.
func QuickActions(u user.User, completion int) []QuickAction {
	return []QuickAction{
		{ID: "upload-resume", Title: "Upload your resume", Completed: u.HasResume()},
		{ID: "complete-profile", Title: "Complete your profile", Completed: completion >= 80},
		{ID: "set-goals", Title: "Set career goals", Completed: len(u.CareerGoals.ShortTerm) > 0},
	}
}
