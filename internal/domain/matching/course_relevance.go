package matching

import "career-portal/internal/domain/skill"

const (
	gapBonus     = 20
	missingBonus = 10
	levelUpBonus = 5
)

// CourseRelevanceScore is an unbounded additive score. For each course skill:
// a name in gaps adds 20, otherwise a skill the user lacks adds 10, otherwise a
// course level above the user's level adds 5.
func CourseRelevanceScore(userSkills []skill.Skill, courseSkills []skill.Skill, gaps []string) int {
	idx := skill.Index(userSkills)
	gapSet := make(map[string]struct{}, len(gaps))
	for _, g := range gaps {
		if k := skill.Key(g); k != "" {
			gapSet[k] = struct{}{}
		}
	}

	score := 0
	for _, cs := range courseSkills {
		k := skill.Key(cs.Name)
		if k == "" {
			continue
		}
		if _, ok := gapSet[k]; ok {
			score += gapBonus
			continue
		}
		us, has := idx[k]
		if !has {
			score += missingBonus
			continue
		}
		if cs.Level.Rank() > us.Level.Rank() {
			score += levelUpBonus
		}
	}
	return score
}
