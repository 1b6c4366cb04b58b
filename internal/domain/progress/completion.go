package progress

import (
	"math"
	"strings"

	"career-portal/internal/domain/user"
)

// CareerProgressCompletion is the completion percentage shown on the progress
// and dashboard views: phone, university, bio, at least one skill, a resume and
// at least one short-term goal.
func CareerProgressCompletion(u user.User) int {
	return percent([]bool{
		filled(u.Profile.Phone),
		filled(u.Profile.Education.UniversityName),
		filled(u.Profile.Bio),
		len(u.Skills) > 0,
		u.HasResume(),
		len(u.CareerGoals.ShortTerm) > 0,
	})
}

// ProfileDetailsCompletion is the profile-form checklist: phone, bio, city,
// university, at least one skill and a resume.
func ProfileDetailsCompletion(u user.User) int {
	return percent([]bool{
		filled(u.Profile.Phone),
		filled(u.Profile.Bio),
		filled(u.Profile.Location.City),
		filled(u.Profile.Education.UniversityName),
		len(u.Skills) > 0,
		u.HasResume(),
	})
}

// ProfileComplete reports whether the minimum contact and education details are set.
func ProfileComplete(u user.User) bool {
	return filled(u.Profile.Phone) && filled(u.Profile.Education.UniversityName)
}

func percent(checks []bool) int {
	if len(checks) == 0 {
		return 0
	}
	done := 0
	for _, ok := range checks {
		if ok {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(checks)) * 100))
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}
