package matching

import (
	"math"

	"career-portal/internal/domain/skill"
)

const (
	requiredWeight = 10.0
	optionalWeight = 5.0
)

// requiredPoints is the full-scale value of a level for required skills.
func requiredPoints(l skill.Level) float64 {
	return 2.5 * float64(l.Rank())
}

// optionalPoints is the half-scale value of a level for optional skills.
func optionalPoints(l skill.Level) float64 {
	return 1.25 * float64(l.Rank())
}

// JobMatchScore rates how well userSkills cover a job's requirements on a
// 0..100 scale. A matched required skill earns the lower of the user's and the
// job's level on the full scale out of 10. A matched optional skill earns the
// user's level on the half scale out of 5, ignoring the job's requested level.
// A job with no skills scores 0.
func JobMatchScore(userSkills []skill.Skill, jobSkills []skill.Requirement) int {
	idx := skill.Index(userSkills)

	var score, total float64
	for _, req := range jobSkills {
		if skill.Key(req.Name) == "" {
			continue
		}
		us, has := idx[skill.Key(req.Name)]

		if req.Required {
			total += requiredWeight
			if has {
				score += math.Min(requiredPoints(us.Level), requiredPoints(req.Level))
			}
			continue
		}

		total += optionalWeight
		if has {
			score += optionalPoints(us.Level)
		}
	}

	if total == 0 {
		return 0
	}
	return int(math.Round(score / total * 100))
}

// MissingSkills lists the lower-cased names of job skills the user does not
// hold, in job order.
func MissingSkills(userSkills []skill.Skill, jobSkills []skill.Requirement) []string {
	idx := skill.Index(userSkills)
	out := make([]string, 0)
	seen := map[string]struct{}{}
	for _, req := range jobSkills {
		k := skill.Key(req.Name)
		if k == "" {
			continue
		}
		if _, ok := idx[k]; ok {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
