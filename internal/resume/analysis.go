package resume

import (
	"math"
	"strings"

	"career-portal/internal/domain/user"
)

type Completeness struct {
	HasContact    bool `json:"has_contact"`
	HasExperience bool `json:"has_experience"`
	HasEducation  bool `json:"has_education"`
	HasProjects   bool `json:"has_projects"`
	HasSkills     bool `json:"has_skills"`
}

type Suggestion struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

type Analysis struct {
	SkillsCount     int          `json:"skills_count"`
	ExperienceYears int          `json:"experience_years"`
	Completeness    Completeness `json:"completeness"`
	Suggestions     []Suggestion `json:"suggestions"`
	OverallScore    int          `json:"overall_score"`
}

// Analyze scores a user's resume. u.Resume must be set.
func Analyze(u user.User) Analysis {
	parsed := user.ParsedResume{}
	if u.Resume != nil {
		parsed = u.Resume.Parsed
	}

	a := Analysis{
		SkillsCount:     len(u.Skills),
		ExperienceYears: parsed.ExperienceYears,
		Completeness: Completeness{
			HasContact:    strings.TrimSpace(u.Profile.Phone) != "" && strings.TrimSpace(u.Email) != "",
			HasExperience: parsed.HasExperience,
			HasEducation:  parsed.HasEducation,
			HasProjects:   parsed.HasProjects,
			HasSkills:     len(u.Skills) > 0,
		},
		Suggestions: make([]Suggestion, 0),
	}

	if !a.Completeness.HasContact {
		a.Suggestions = append(a.Suggestions, Suggestion{
			Type:     "contact",
			Message:  "Add your phone number to complete your contact information",
			Priority: "high",
		})
	}
	if a.SkillsCount < 5 {
		a.Suggestions = append(a.Suggestions, Suggestion{
			Type:     "skills",
			Message:  "Add more skills to improve your profile visibility",
			Priority: "medium",
		})
	}
	if !a.Completeness.HasProjects {
		a.Suggestions = append(a.Suggestions, Suggestion{
			Type:     "projects",
			Message:  "Add projects to showcase your practical experience",
			Priority: "medium",
		})
	}

	done := 0
	for _, ok := range []bool{
		a.Completeness.HasContact,
		a.Completeness.HasExperience,
		a.Completeness.HasEducation,
		a.Completeness.HasProjects,
		a.Completeness.HasSkills,
	} {
		if ok {
			done++
		}
	}
	a.OverallScore = int(math.Round(float64(done) / 5 * 100))
	return a
}
