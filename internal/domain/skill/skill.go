package skill

import (
	"strings"
	"time"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

var levelRank = map[Level]int{
	LevelBeginner:     1,
	LevelIntermediate: 2,
	LevelAdvanced:     3,
	LevelExpert:       4,
}

// ParseLevel accepts a level name in any case. An empty string is valid and
// yields the empty Level, which scorers treat as intermediate.
func ParseLevel(s string) (Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", true
	}
	l := Level(s)
	if _, ok := levelRank[l]; !ok {
		return "", false
	}
	return l, true
}

// Rank maps a level onto 1..4. Unknown or absent levels rank as intermediate.
func (l Level) Rank() int {
	if r, ok := levelRank[l]; ok {
		return r
	}
	return levelRank[LevelIntermediate]
}

func (l Level) Valid() bool {
	_, ok := levelRank[l]
	return ok
}

// OrDefault returns def when l is empty or unknown.
func (l Level) OrDefault(def Level) Level {
	if l.Valid() {
		return l
	}
	return def
}

type Category string

const (
	CategoryTechnical     Category = "technical"
	CategorySoft          Category = "soft"
	CategoryLanguage      Category = "language"
	CategoryCertification Category = "certification"
)

func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch Category(s) {
	case "":
		return "", true
	case CategoryTechnical, CategorySoft, CategoryLanguage, CategoryCertification:
		return Category(s), true
	default:
		return "", false
	}
}

// Skill is a skill held by a user or taught by a course.
type Skill struct {
	Name     string
	Level    Level
	Category Category
	AddedAt  time.Time
}

// Requirement is a skill asked for by a job posting.
type Requirement struct {
	Name     string
	Level    Level
	Required bool
}

// Key is the comparison key for skill names: trimmed, lower-cased, inner
// whitespace collapsed.
func Key(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Index maps skill keys to the first skill carrying that name.
func Index(skills []Skill) map[string]Skill {
	out := make(map[string]Skill, len(skills))
	for _, s := range skills {
		k := Key(s.Name)
		if k == "" {
			continue
		}
		if _, ok := out[k]; ok {
			continue
		}
		out[k] = s
	}
	return out
}
