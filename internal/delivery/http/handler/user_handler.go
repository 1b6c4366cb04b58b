package handler

import (
	"net/url"
	"time"

	"career-portal/internal/delivery/http/dto"
	"career-portal/internal/delivery/http/middleware"
	"career-portal/internal/domain/user"
	"career-portal/internal/pkg/response"
	"career-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.ProfileUsecase
}

type profilePatchRequest struct {
	Phone        *string         `json:"phone"`
	Bio          *string         `json:"bio"`
	DateOfBirth  *time.Time      `json:"date_of_birth"`
	Location     *user.Location  `json:"location"`
	Education    *user.Education `json:"education"`
	LinkedInURL  *string         `json:"linkedin_url"`
	GitHubURL    *string         `json:"github_url"`
	PortfolioURL *string         `json:"portfolio_url"`
}

type preferencesPatchRequest struct {
	JobTypes        *[]string `json:"job_types"`
	WorkEnvironment *string   `json:"work_environment"`
	Industries      *[]string `json:"industries"`
	Locations       *[]string `json:"locations"`
	SalaryMin       *int      `json:"salary_min"`
	SalaryMax       *int      `json:"salary_max"`
}

type careerGoalsPatchRequest struct {
	ShortTerm       *[]string `json:"short_term"`
	LongTerm        *[]string `json:"long_term"`
	TargetRoles     *[]string `json:"target_roles"`
	TargetCompanies *[]string `json:"target_companies"`
}

type updateProfileRequest struct {
	FirstName   *string                  `json:"first_name"`
	LastName    *string                  `json:"last_name"`
	Profile     *profilePatchRequest     `json:"profile"`
	Preferences *preferencesPatchRequest `json:"preferences"`
	CareerGoals *careerGoalsPatchRequest `json:"career_goals"`
}

type skillRequest struct {
	Name     string `json:"name"`
	Level    string `json:"level"`
	Category string `json:"category"`
}

type upsertSkillsRequest struct {
	Skills []skillRequest `json:"skills"`
}

func NewUserHandler(uc usecase.ProfileUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Put("/profile", h.UpdateProfile)
	r.Post("/skills", h.UpsertSkills)
	r.Delete("/skills/:name", h.RemoveSkill)
	r.Get("/dashboard", h.Dashboard)
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, err := h.uc.UpdateProfile(c.Context(), userID, req.toUpdate())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile updated successfully", dto.NewUser(usr))
}

func (r updateProfileRequest) toUpdate() usecase.ProfileUpdate {
	out := usecase.ProfileUpdate{FirstName: r.FirstName, LastName: r.LastName}
	if p := r.Profile; p != nil {
		out.Profile = &usecase.ProfilePatch{
			Phone:        p.Phone,
			Bio:          p.Bio,
			DateOfBirth:  p.DateOfBirth,
			Location:     p.Location,
			Education:    p.Education,
			LinkedInURL:  p.LinkedInURL,
			GitHubURL:    p.GitHubURL,
			PortfolioURL: p.PortfolioURL,
		}
	}
	if p := r.Preferences; p != nil {
		out.Preferences = &usecase.PreferencesPatch{
			JobTypes:        p.JobTypes,
			WorkEnvironment: p.WorkEnvironment,
			Industries:      p.Industries,
			Locations:       p.Locations,
			SalaryMin:       p.SalaryMin,
			SalaryMax:       p.SalaryMax,
		}
	}
	if g := r.CareerGoals; g != nil {
		out.CareerGoals = &usecase.CareerGoalsPatch{
			ShortTerm:       g.ShortTerm,
			LongTerm:        g.LongTerm,
			TargetRoles:     g.TargetRoles,
			TargetCompanies: g.TargetCompanies,
		}
	}
	return out
}

func (h *UserHandler) UpsertSkills(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req upsertSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if len(req.Skills) == 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Skills must be a non-empty array", nil, nil)
	}

	in := make([]usecase.SkillInput, 0, len(req.Skills))
	for _, s := range req.Skills {
		in = append(in, usecase.SkillInput{Name: s.Name, Level: s.Level, Category: s.Category})
	}

	skills, err := h.uc.UpsertSkills(c.Context(), userID, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skills updated successfully", dto.NewSkills(skills))
}

func (h *UserHandler) RemoveSkill(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill name", nil, err)
	}

	skills, err := h.uc.RemoveSkill(c.Context(), userID, name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill removed successfully", dto.NewSkills(skills))
}

func (h *UserHandler) Dashboard(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	d, err := h.uc.Dashboard(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDashboard(d))
}
