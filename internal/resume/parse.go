package resume

import (
	"regexp"
	"strconv"
	"strings"

	"career-portal/internal/domain/skill"
	"career-portal/internal/domain/user"
)

var (
	emailRe      = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe      = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	experienceRe = regexp.MustCompile(`(?i)(\d+)\+?\s*(years?|yrs?)\s*(of\s*)?(experience|exp)`)

	experienceHeadingRe = regexp.MustCompile(`(?im)^\s*(work\s+|professional\s+)?experience\s*:?\s*$`)
	educationHeadingRe  = regexp.MustCompile(`(?im)^\s*(education|academic\s+background)\s*:?\s*$`)
	projectsHeadingRe   = regexp.MustCompile(`(?im)^\s*(projects|personal\s+projects|academic\s+projects)\s*:?\s*$`)
)

// Parse extracts structured data from resume text.
func Parse(text string) user.ParsedResume {
	out := user.ParsedResume{
		Skills:     skill.Extract(text),
		TextLength: len(text),
	}
	if m := emailRe.FindString(text); m != "" {
		out.Email = m
	}
	if m := phoneRe.FindString(text); m != "" {
		out.Phone = strings.TrimSpace(m)
	}
	if m := experienceRe.FindStringSubmatch(text); len(m) > 1 {
		if n, err := strconv.Atoi(m[1]); err == nil {
			out.ExperienceYears = n
		}
	}
	out.HasExperience = out.ExperienceYears > 0 || experienceHeadingRe.MatchString(text)
	out.HasEducation = educationHeadingRe.MatchString(text)
	out.HasProjects = projectsHeadingRe.MatchString(text)
	return out
}

// Skills converts parsed skill names into user skills at intermediate level.
func Skills(p user.ParsedResume) []skill.Skill {
	out := make([]skill.Skill, 0, len(p.Skills))
	for _, name := range p.Skills {
		out = append(out, skill.Skill{Name: name, Level: skill.LevelIntermediate, Category: skill.CategoryTechnical})
	}
	return out
}
