package matching

import (
	"sort"

	"career-portal/internal/domain/skill"
)

const (
	trendingPoolSize = 20
	reportSize       = 10
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type TrendingSkill struct {
	Name     string
	Demand   int
	AvgLevel float64
	HasSkill bool
}

type SkillGap struct {
	Name             string
	Demand           int
	RecommendedLevel skill.Level
	Priority         Priority
}

type GapAnalysis struct {
	TotalSkills int
	Gaps        []SkillGap
	Trending    []TrendingSkill
}

type demandEntry struct {
	name     string
	count    int
	levelSum int
}

// AnalyzeSkillGaps ranks every skill named by the given jobs (required and
// optional) by how many postings ask for it, keeps the 20 most demanded, and
// reports the top 10 the user does not hold alongside the top 10 overall.
// Ties keep first-encounter order.
func AnalyzeSkillGaps(jobs [][]skill.Requirement, userSkills []skill.Skill) GapAnalysis {
	order := make([]*demandEntry, 0)
	byKey := map[string]*demandEntry{}
	for _, reqs := range jobs {
		for _, r := range reqs {
			k := skill.Key(r.Name)
			if k == "" {
				continue
			}
			e, ok := byKey[k]
			if !ok {
				e = &demandEntry{name: r.Name}
				byKey[k] = e
				order = append(order, e)
			}
			e.count++
			e.levelSum += r.Level.Rank()
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].count > order[j].count
	})
	if len(order) > trendingPoolSize {
		order = order[:trendingPoolSize]
	}

	owned := skill.Index(userSkills)

	gaps := make([]SkillGap, 0, reportSize)
	trending := make([]TrendingSkill, 0, reportSize)
	for _, e := range order {
		avg := float64(e.levelSum) / float64(e.count)
		_, has := owned[skill.Key(e.name)]

		if len(trending) < reportSize {
			trending = append(trending, TrendingSkill{Name: e.name, Demand: e.count, AvgLevel: avg, HasSkill: has})
		}
		if has || len(gaps) >= reportSize {
			continue
		}
		gaps = append(gaps, SkillGap{
			Name:             e.name,
			Demand:           e.count,
			RecommendedLevel: recommendedLevel(avg),
			Priority:         priorityFor(e.count),
		})
	}

	return GapAnalysis{TotalSkills: len(userSkills), Gaps: gaps, Trending: trending}
}

// GapNames returns the gap skill names, for feeding CourseRelevanceScore.
func (a GapAnalysis) GapNames() []string {
	out := make([]string, 0, len(a.Gaps))
	for _, g := range a.Gaps {
		out = append(out, g.Name)
	}
	return out
}

func recommendedLevel(avg float64) skill.Level {
	if avg > 2.5 {
		return skill.LevelAdvanced
	}
	return skill.LevelIntermediate
}

func priorityFor(count int) Priority {
	switch {
	case count > 10:
		return PriorityHigh
	case count > 5:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
