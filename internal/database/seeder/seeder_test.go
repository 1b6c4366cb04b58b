package seeder

import (
	"context"
	"errors"
	"testing"

	"career-portal/internal/domain/course"
	"career-portal/internal/domain/job"
	"career-portal/internal/domain/skill"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jobSink struct {
	got []job.Job
	err error
}

func (s *jobSink) Upsert(_ context.Context, jobs []job.Job) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.got = append(s.got, jobs...)
	return len(jobs), nil
}

type courseSink struct {
	got []course.Course
}

func (s *courseSink) Upsert(_ context.Context, courses []course.Course) (int, error) {
	s.got = append(s.got, courses...)
	return len(courses), nil
}

func TestEmbeddedCatalogIsValid(t *testing.T) {
	cat, err := LoadCatalog()
	require.NoError(t, err)
	assert.NotEmpty(t, cat.Jobs)
	assert.NotEmpty(t, cat.Courses)

	keys := map[string]bool{}
	for _, j := range cat.Jobs {
		assert.False(t, keys[j.Key], "duplicate key %s", j.Key)
		keys[j.Key] = true
	}
}

func TestCatalogJob_Conversion(t *testing.T) {
	cat, err := ParseCatalog([]byte(`
jobs:
  - key: k1
    title: Backend
    company: Acme
    city: Pune
    country: India
    skills:
      - {name: Go, level: advanced}
      - {name: Docker, required: false}
`))
	require.NoError(t, err)

	j := cat.Jobs[0].Job()
	assert.Equal(t, SeedSource, j.Source)
	assert.Equal(t, "k1", j.ExternalID)
	assert.Equal(t, job.StatusActive, j.Status)
	assert.Equal(t, job.Location{City: "Pune", Country: "India"}, j.Location)
	assert.Equal(t, []skill.Requirement{
		{Name: "Go", Level: skill.LevelAdvanced, Required: true},
		{Name: "Docker", Level: "", Required: false},
	}, j.Skills)
}

func TestCatalogCourse_Conversion(t *testing.T) {
	cat, err := ParseCatalog([]byte(`
courses:
  - title: SQL 101
    provider: School
    level: beginner
    skills:
      - {name: SQL, level: intermediate}
      - {name: Teamwork, category: soft}
`))
	require.NoError(t, err)

	c := cat.Courses[0].Course()
	assert.True(t, c.IsActive)
	assert.Equal(t, course.PricingFree, c.Pricing.Type)
	assert.Equal(t, skill.LevelBeginner, c.Level)
	require.Len(t, c.Skills, 2)
	assert.Equal(t, skill.CategoryTechnical, c.Skills[0].Category)
	assert.Equal(t, skill.CategorySoft, c.Skills[1].Category)
}

func TestParseCatalog_Rejects(t *testing.T) {
	cases := map[string]string{
		"job without key":  "jobs:\n  - title: X\n",
		"bad skill level":  "jobs:\n  - key: a\n    title: X\n    skills:\n      - {name: Go, level: guru}\n",
		"course no title":  "courses:\n  - provider: P\n",
		"bad course level": "courses:\n  - title: T\n    provider: P\n    level: master\n",
		"bad category":     "courses:\n  - title: T\n    provider: P\n    skills:\n      - {name: Go, category: magic}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestRunner_SeedsCatalog(t *testing.T) {
	jobs := &jobSink{}
	courses := &courseSink{}
	seeders, err := Defaults(jobs, courses)
	require.NoError(t, err)

	require.NoError(t, Runner{Seeders: seeders}.Run(context.Background()))

	cat, _ := LoadCatalog()
	assert.Len(t, jobs.got, len(cat.Jobs))
	assert.Len(t, courses.got, len(cat.Courses))
}

func TestRunner_WrapsErrors(t *testing.T) {
	boom := errors.New("db down")
	seeders, err := Defaults(&jobSink{err: boom}, &courseSink{})
	require.NoError(t, err)

	err = Runner{Seeders: seeders}.Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "seed jobs")
}
