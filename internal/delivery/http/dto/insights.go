package dto

import (
	"time"

	"career-portal/internal/domain/matching"
	"career-portal/internal/usecase"
)

type SkillGapResponse struct {
	Skill            string `json:"skill"`
	Demand           int    `json:"demand"`
	RecommendedLevel string `json:"recommended_level"`
	Priority         string `json:"priority"`
}

type TrendingSkillResponse struct {
	Skill    string  `json:"skill"`
	Demand   int     `json:"demand"`
	AvgLevel float64 `json:"avg_level"`
	HasSkill bool    `json:"has_skill"`
}

type SkillAnalysisResponse struct {
	TotalSkills    int                     `json:"total_skills"`
	SkillGaps      []SkillGapResponse      `json:"skill_gaps"`
	TrendingSkills []TrendingSkillResponse `json:"trending_skills"`
}

func NewSkillAnalysis(a matching.GapAnalysis) SkillAnalysisResponse {
	gaps := make([]SkillGapResponse, 0, len(a.Gaps))
	for _, g := range a.Gaps {
		gaps = append(gaps, SkillGapResponse{Skill: g.Name, Demand: g.Demand, RecommendedLevel: string(g.RecommendedLevel), Priority: string(g.Priority)})
	}
	trending := make([]TrendingSkillResponse, 0, len(a.Trending))
	for _, t := range a.Trending {
		trending = append(trending, TrendingSkillResponse{Skill: t.Name, Demand: t.Demand, AvgLevel: t.AvgLevel, HasSkill: t.HasSkill})
	}
	return SkillAnalysisResponse{TotalSkills: a.TotalSkills, SkillGaps: gaps, TrendingSkills: trending}
}

type QuickActionResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type DashboardStatsResponse struct {
	ProfileCompletion int        `json:"profile_completion"`
	ProfileDetails    int        `json:"profile_details_completion"`
	TotalSkills       int        `json:"total_skills"`
	HasResume         bool       `json:"has_resume"`
	MemberSince       time.Time  `json:"member_since"`
	LastActive        *time.Time `json:"last_active,omitempty"`
}

type DashboardResponse struct {
	User             UserResponse               `json:"user"`
	Stats            DashboardStatsResponse     `json:"stats"`
	SkillsByCategory map[string][]SkillResponse `json:"skills_by_category"`
	RecentActivities []ActivityResponse         `json:"recent_activities"`
	QuickActions     []QuickActionResponse      `json:"quick_actions"`
}

func NewDashboard(d usecase.Dashboard) DashboardResponse {
	byCat := make(map[string][]SkillResponse, len(d.SkillsByCategory))
	for cat, items := range d.SkillsByCategory {
		byCat[cat] = NewSkills(items)
	}
	actions := make([]QuickActionResponse, 0, len(d.QuickActions))
	for _, a := range d.QuickActions {
		actions = append(actions, QuickActionResponse{ID: a.ID, Title: a.Title, Completed: a.Completed})
	}
	return DashboardResponse{
		User: NewUser(d.User),
		Stats: DashboardStatsResponse{
			ProfileCompletion: d.Stats.ProfileCompletion,
			ProfileDetails:    d.Stats.ProfileDetails,
			TotalSkills:       d.Stats.TotalSkills,
			HasResume:         d.Stats.HasResume,
			MemberSince:       d.Stats.MemberSince,
			LastActive:        d.Stats.LastActive,
		},
		SkillsByCategory: byCat,
		RecentActivities: NewActivities(d.RecentActivities),
		QuickActions:     actions,
	}
}

type ProgressStatsResponse struct {
	Profile struct {
		Completion        int       `json:"completion"`
		DetailsCompletion int       `json:"details_completion"`
		LastUpdated       time.Time `json:"last_updated"`
	} `json:"profile"`
	Skills struct {
		Total         int            `json:"total"`
		ByCategory    map[string]int `json:"by_category"`
		RecentlyAdded int            `json:"recently_added"`
	} `json:"skills"`
	Activity struct {
		ThisWeek  int `json:"this_week"`
		ThisMonth int `json:"this_month"`
		Total     int `json:"total"`
	} `json:"activity"`
	Goals struct {
		ShortTerm   int `json:"short_term"`
		LongTerm    int `json:"long_term"`
		TargetRoles int `json:"target_roles"`
	} `json:"goals"`
}

func NewProgressStats(s usecase.ProgressStats) ProgressStatsResponse {
	var out ProgressStatsResponse
	out.Profile.Completion = s.ProfileCompletion
	out.Profile.DetailsCompletion = s.ProfileDetails
	out.Profile.LastUpdated = s.LastProfileUpdate
	out.Skills.Total = s.Skills.Total
	out.Skills.ByCategory = s.Skills.ByCategory
	out.Skills.RecentlyAdded = s.Skills.RecentlyAdded
	out.Activity.ThisWeek = s.Activity.ThisWeek
	out.Activity.ThisMonth = s.Activity.ThisMonth
	out.Activity.Total = s.Activity.Total
	out.Goals.ShortTerm = s.Goals.ShortTerm
	out.Goals.LongTerm = s.Goals.LongTerm
	out.Goals.TargetRoles = s.Goals.TargetRoles
	return out
}
