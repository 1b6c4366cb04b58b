package seeder

import (
	"context"
	"fmt"

	"career-portal/internal/pkg/logger"
)

type Runner struct {
	Seeders []Seeder
	Logger  *logger.Logger
}

func (r Runner) Run(ctx context.Context) error {
	log := r.Logger
	if log == nil {
		log = logger.Nop()
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		n, err := s.Run(ctx)
		if err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		log.Info("seeded", "seeder", s.Name(), "rows", n)
	}
	return nil
}

// Defaults seeds the embedded sample catalog.
func Defaults(jobs JobWriter, courses CourseWriter) ([]Seeder, error) {
	cat, err := LoadCatalog()
	if err != nil {
		return nil, err
	}
	return []Seeder{
		JobSeeder{Jobs: jobs, Catalog: cat},
		CourseSeeder{Courses: courses, Catalog: cat},
	}, nil
}
