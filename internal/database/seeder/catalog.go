package seeder

import (
	_ "embed"
	"fmt"
	"strings"

	"career-portal/internal/domain/course"
	"career-portal/internal/domain/job"
	"career-portal/internal/domain/skill"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// SeedSource marks jobs created by the seeder; their external ids are the
// catalog keys so reseeding updates rather than duplicates.
const SeedSource = "seed"

type Catalog struct {
	Jobs    []CatalogJob    `yaml:"jobs"`
	Courses []CatalogCourse `yaml:"courses"`
}

type CatalogSkill struct {
	Name     string `yaml:"name"`
	Level    string `yaml:"level"`
	Required *bool  `yaml:"required"`
	Category string `yaml:"category"`
}

type CatalogJob struct {
	Key             string         `yaml:"key"`
	Title           string         `yaml:"title"`
	Company         string         `yaml:"company"`
	Website         string         `yaml:"website"`
	Description     string         `yaml:"description"`
	City            string         `yaml:"city"`
	State           string         `yaml:"state"`
	Country         string         `yaml:"country"`
	JobType         string         `yaml:"job_type"`
	WorkArrangement string         `yaml:"work_arrangement"`
	Industry        string         `yaml:"industry"`
	Experience      string         `yaml:"experience_level"`
	SalaryMin       int            `yaml:"salary_min"`
	SalaryMax       int            `yaml:"salary_max"`
	Currency        string         `yaml:"currency"`
	Skills          []CatalogSkill `yaml:"skills"`
}

type CatalogCourse struct {
	Title         string         `yaml:"title"`
	Description   string         `yaml:"description"`
	Provider      string         `yaml:"provider"`
	Instructor    string         `yaml:"instructor"`
	Category      string         `yaml:"category"`
	Level         string         `yaml:"level"`
	DurationHours int            `yaml:"duration_hours"`
	Pricing       string         `yaml:"pricing"`
	Price         float64        `yaml:"price"`
	Currency      string         `yaml:"currency"`
	Rating        float64        `yaml:"rating"`
	RatingCount   int            `yaml:"rating_count"`
	URL           string         `yaml:"url"`
	Skills        []CatalogSkill `yaml:"skills"`
}

func LoadCatalog() (Catalog, error) {
	return ParseCatalog(catalogYAML)
}

func ParseCatalog(b []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	for i, j := range c.Jobs {
		if strings.TrimSpace(j.Key) == "" || strings.TrimSpace(j.Title) == "" {
			return Catalog{}, fmt.Errorf("parse catalog: job %d needs key and title", i)
		}
		if err := validateSkills(j.Skills); err != nil {
			return Catalog{}, fmt.Errorf("parse catalog: job %s: %w", j.Key, err)
		}
	}
	for _, co := range c.Courses {
		if strings.TrimSpace(co.Title) == "" || strings.TrimSpace(co.Provider) == "" {
			return Catalog{}, fmt.Errorf("parse catalog: course needs title and provider")
		}
		if _, ok := skill.ParseLevel(co.Level); !ok {
			return Catalog{}, fmt.Errorf("parse catalog: course %q: bad level %q", co.Title, co.Level)
		}
		if err := validateSkills(co.Skills); err != nil {
			return Catalog{}, fmt.Errorf("parse catalog: course %q: %w", co.Title, err)
		}
	}
	return c, nil
}

func validateSkills(skills []CatalogSkill) error {
	for _, s := range skills {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("skill without name")
		}
		if _, ok := skill.ParseLevel(s.Level); !ok {
			return fmt.Errorf("skill %s: bad level %q", s.Name, s.Level)
		}
		if _, ok := skill.ParseCategory(s.Category); !ok {
			return fmt.Errorf("skill %s: bad category %q", s.Name, s.Category)
		}
	}
	return nil
}

func (j CatalogJob) Job() job.Job {
	reqs := make([]skill.Requirement, 0, len(j.Skills))
	for _, s := range j.Skills {
		lvl, _ := skill.ParseLevel(s.Level)
		required := true
		if s.Required != nil {
			required = *s.Required
		}
		reqs = append(reqs, skill.Requirement{Name: s.Name, Level: lvl, Required: required})
	}
	return job.Job{
		Title:           j.Title,
		CompanyName:     j.Company,
		CompanyWebsite:  j.Website,
		Description:     strings.TrimSpace(j.Description),
		Location:        job.Location{City: j.City, State: j.State, Country: j.Country},
		JobType:         j.JobType,
		WorkArrangement: j.WorkArrangement,
		Industry:        j.Industry,
		ExperienceLevel: j.Experience,
		Salary:          job.Salary{Min: j.SalaryMin, Max: j.SalaryMax, Currency: j.Currency},
		Skills:          reqs,
		Status:          job.StatusActive,
		Source:          SeedSource,
		ExternalID:      j.Key,
	}
}

func (c CatalogCourse) Course() course.Course {
	lvl, _ := skill.ParseLevel(c.Level)
	skills := make([]skill.Skill, 0, len(c.Skills))
	for _, s := range c.Skills {
		l, _ := skill.ParseLevel(s.Level)
		cat, _ := skill.ParseCategory(s.Category)
		if cat == "" {
			cat = skill.CategoryTechnical
		}
		skills = append(skills, skill.Skill{Name: s.Name, Level: l, Category: cat})
	}
	pricing := c.Pricing
	if pricing == "" {
		pricing = course.PricingFree
	}
	return course.Course{
		Title:         c.Title,
		Description:   strings.TrimSpace(c.Description),
		Provider:      c.Provider,
		Instructor:    c.Instructor,
		Category:      c.Category,
		Level:         lvl,
		DurationHours: c.DurationHours,
		Pricing:       course.Pricing{Type: pricing, Amount: c.Price, Currency: c.Currency},
		Rating:        course.Rating{Average: c.Rating, Count: c.RatingCount},
		Skills:        skills,
		URL:           c.URL,
		IsActive:      true,
	}
}
