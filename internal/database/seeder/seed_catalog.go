package seeder

import (
	"context"

	"career-portal/internal/domain/course"
	"career-portal/internal/domain/job"
)

type JobWriter interface {
	Upsert(ctx context.Context, jobs []job.Job) (int, error)
}

type CourseWriter interface {
	Upsert(ctx context.Context, courses []course.Course) (int, error)
}

type JobSeeder struct {
	Jobs    JobWriter
	Catalog Catalog
}

func (JobSeeder) Name() string { return "jobs" }

func (s JobSeeder) Run(ctx context.Context) (int, error) {
	jobs := make([]job.Job, 0, len(s.Catalog.Jobs))
	for _, j := range s.Catalog.Jobs {
		jobs = append(jobs, j.Job())
	}
	return s.Jobs.Upsert(ctx, jobs)
}

type CourseSeeder struct {
	Courses CourseWriter
	Catalog Catalog
}

func (CourseSeeder) Name() string { return "courses" }

func (s CourseSeeder) Run(ctx context.Context) (int, error) {
	courses := make([]course.Course, 0, len(s.Catalog.Courses))
	for _, c := range s.Catalog.Courses {
		courses = append(courses, c.Course())
	}
	return s.Courses.Upsert(ctx, courses)
}
