package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"career-portal/internal/domain/activity"
	"career-portal/internal/domain/job"
	"career-portal/internal/domain/progress"
	"career-portal/internal/domain/skill"
	"career-portal/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const dashboardRecentActivities = 5

var workEnvironments = []string{"remote", "onsite", "hybrid", "flexible"}

// ProfilePatch fields left nil keep their stored value.
type ProfilePatch struct {
	Phone        *string
	Bio          *string
	DateOfBirth  *time.Time
	Location     *user.Location
	Education    *user.Education
	LinkedInURL  *string
	GitHubURL    *string
	PortfolioURL *string
}

type PreferencesPatch struct {
	JobTypes        *[]string
	WorkEnvironment *string
	Industries      *[]string
	Locations       *[]string
	SalaryMin       *int
	SalaryMax       *int
}

type CareerGoalsPatch struct {
	ShortTerm       *[]string
	LongTerm        *[]string
	TargetRoles     *[]string
	TargetCompanies *[]string
}

type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	Profile     *ProfilePatch
	Preferences *PreferencesPatch
	CareerGoals *CareerGoalsPatch
}

type SkillInput struct {
	Name     string
	Level    string
	Category string
}

type Dashboard struct {
	User             user.User
	Stats            DashboardStats
	SkillsByCategory map[string][]skill.Skill
	RecentActivities []activity.Activity
	QuickActions     []progress.QuickAction
}

type DashboardStats struct {
	ProfileCompletion int
	ProfileDetails    int
	TotalSkills       int
	HasResume         bool
	MemberSince       time.Time
	LastActive        *time.Time
}

type ProfileUsecase interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileUpdate) (user.User, error)
	UpsertSkills(ctx context.Context, userID uuid.UUID, in []SkillInput) ([]skill.Skill, error)
	RemoveSkill(ctx context.Context, userID uuid.UUID, name string) ([]skill.Skill, error)
	Dashboard(ctx context.Context, userID uuid.UUID) (Dashboard, error)
}

type Profile struct {
	store    UserStore
	activity *ActivityLog
	now      func() time.Time
}

func NewProfileUsecase(store UserStore, activityLog *ActivityLog) *Profile {
	return &Profile{store: store, activity: activityLog, now: time.Now}
}

func (p *Profile) UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileUpdate) (user.User, error) {
	u, err := p.store.Load(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	if err := applyProfileUpdate(&u, in); err != nil {
		return user.User{}, err
	}
	u.UpdatedAt = p.now().UTC()

	if err := p.store.Users.UpdateProfile(ctx, u); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}

	p.activity.Record(ctx, userID, activity.ActionProfileUpdated, "User profile updated successfully", nil)
	return u, nil
}

func applyProfileUpdate(u *user.User, in ProfileUpdate) error {
	if in.FirstName != nil {
		v := strings.TrimSpace(*in.FirstName)
		if v == "" {
			return ErrInvalidInput
		}
		u.FirstName = v
	}
	if in.LastName != nil {
		v := strings.TrimSpace(*in.LastName)
		if v == "" {
			return ErrInvalidInput
		}
		u.LastName = v
	}

	if pp := in.Profile; pp != nil {
		setString(&u.Profile.Phone, pp.Phone)
		setString(&u.Profile.Bio, pp.Bio)
		setString(&u.Profile.LinkedInURL, pp.LinkedInURL)
		setString(&u.Profile.GitHubURL, pp.GitHubURL)
		setString(&u.Profile.PortfolioURL, pp.PortfolioURL)
		if pp.DateOfBirth != nil {
			u.Profile.DateOfBirth = pp.DateOfBirth
		}
		if pp.Location != nil {
			u.Profile.Location = *pp.Location
		}
		if pp.Education != nil {
			if pp.Education.GPA < 0 || pp.Education.GPA > 4 {
				return ErrInvalidInput
			}
			u.Profile.Education = *pp.Education
		}
	}

	if pr := in.Preferences; pr != nil {
		if pr.JobTypes != nil {
			for _, t := range *pr.JobTypes {
				if !slices.Contains(job.JobTypes, t) {
					return ErrInvalidInput
				}
			}
			u.Preferences.JobTypes = *pr.JobTypes
		}
		if pr.WorkEnvironment != nil {
			v := strings.ToLower(strings.TrimSpace(*pr.WorkEnvironment))
			if v != "" && !slices.Contains(workEnvironments, v) {
				return ErrInvalidInput
			}
			u.Preferences.WorkEnvironment = v
		}
		setStrings(&u.Preferences.Industries, pr.Industries)
		setStrings(&u.Preferences.Locations, pr.Locations)
		if pr.SalaryMin != nil {
			u.Preferences.SalaryMin = *pr.SalaryMin
		}
		if pr.SalaryMax != nil {
			u.Preferences.SalaryMax = *pr.SalaryMax
		}
		if u.Preferences.SalaryMin < 0 || (u.Preferences.SalaryMax > 0 && u.Preferences.SalaryMax < u.Preferences.SalaryMin) {
			return ErrInvalidInput
		}
	}

	if g := in.CareerGoals; g != nil {
		setStrings(&u.CareerGoals.ShortTerm, g.ShortTerm)
		setStrings(&u.CareerGoals.LongTerm, g.LongTerm)
		setStrings(&u.CareerGoals.TargetRoles, g.TargetRoles)
		setStrings(&u.CareerGoals.TargetCompanies, g.TargetCompanies)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setStrings(dst *[]string, v *[]string) {
	if v == nil {
		return
	}
	out := make([]string, 0, len(*v))
	for _, s := range *v {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	*dst = out
}

// UpsertSkills adds new skills at the end of the list and updates existing ones
// in place. An omitted level keeps the stored level, or beginner for new skills.
func (p *Profile) UpsertSkills(ctx context.Context, userID uuid.UUID, in []SkillInput) ([]skill.Skill, error) {
	if len(in) == 0 {
		return nil, ErrInvalidInput
	}

	current, err := p.store.Skills.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	existing := skill.Index(current)

	now := p.now().UTC()
	batch := make([]skill.Skill, 0, len(in))
	names := make([]string, 0, len(in))
	for _, s := range in {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, ErrInvalidInput
		}
		level, ok := skill.ParseLevel(s.Level)
		if !ok {
			return nil, ErrInvalidInput
		}
		category, ok := skill.ParseCategory(s.Category)
		if !ok {
			return nil, ErrInvalidInput
		}

		prev, had := existing[skill.Key(name)]
		switch {
		case level != "":
		case had:
			level = prev.Level
		default:
			level = skill.LevelBeginner
		}
		if category == "" {
			category = prev.Category
		}
		if category == "" {
			category = skill.CategoryTechnical
		}

		batch = append(batch, skill.Skill{Name: name, Level: level, Category: category, AddedAt: now})
		names = append(names, name)
	}

	if err := p.store.Skills.Upsert(ctx, userID, batch); err != nil {
		return nil, ErrInternal
	}

	p.activity.Record(ctx, userID, activity.ActionSkillsUpdated,
		fmt.Sprintf("Updated %d skill(s)", len(batch)),
		map[string]any{"skills_updated": names},
	)

	out, err := p.store.Skills.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (p *Profile) RemoveSkill(ctx context.Context, userID uuid.UUID, name string) ([]skill.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	if err := p.store.Skills.Delete(ctx, userID, name); err != nil {
		if errors.Is(err, user.ErrSkillNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, ErrInternal
	}

	p.activity.Record(ctx, userID, activity.ActionSkillRemoved,
		fmt.Sprintf("Removed skill %s", name),
		map[string]any{"skill": name},
	)

	out, err := p.store.Skills.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (p *Profile) Dashboard(ctx context.Context, userID uuid.UUID) (Dashboard, error) {
	var (
		u      user.User
		recent []activity.Activity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		u, err = p.store.Load(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = p.activity.Recent(gctx, userID, dashboardRecentActivities)
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	completion := progress.CareerProgressCompletion(u)
	return Dashboard{
		User: u,
		Stats: DashboardStats{
			ProfileCompletion: completion,
			ProfileDetails:    progress.ProfileDetailsCompletion(u),
			TotalSkills:       len(u.Skills),
			HasResume:         u.HasResume(),
			MemberSince:       u.CreatedAt,
			LastActive:        u.LastLogin,
		},
		SkillsByCategory: progress.GroupByCategory(u.Skills),
		RecentActivities: recent,
		QuickActions:     progress.QuickActions(u, completion),
	}, nil
}
