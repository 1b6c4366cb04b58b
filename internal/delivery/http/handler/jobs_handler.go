package handler

import (
	"career-portal/internal/delivery/http/dto"
	"career-portal/internal/delivery/http/middleware"
	"career-portal/internal/pkg/response"
	"career-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.JobUsecase
}

func NewJobsHandler(uc usecase.JobUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	r.Get("/", auth.Optional(), h.List)
	r.Get("/recommendations", auth.Middleware(), h.Recommendations)
	r.Get("/applications", auth.Middleware(), h.Applications)
	r.Get("/:id", auth.Optional(), h.Get)
	r.Post("/:id/apply", auth.Middleware(), h.Apply)
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	res, err := h.uc.List(c.Context(), optionalUser(c), usecase.JobListParams{
		Page:            page,
		Limit:           limit,
		JobType:         c.Query("job_type"),
		WorkArrangement: c.Query("work_arrangement"),
		Location:        c.Query("location"),
		Company:         c.Query("company"),
		Search:          c.Query("search"),
		Skills:          queryList(c, "skills"),
		SortBy:          c.Query("sort_by"),
		SortOrder:       c.Query("sort_order"),
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobListResponse{
		Jobs:       dto.NewScoredJobs(res.Jobs),
		Pagination: dto.NewPagination(res.Pagination),
	})
}

func (h *JobsHandler) Recommendations(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	items, err := h.uc.Recommendations(c.Context(), userID, limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewScoredJobs(items))
}

func (h *JobsHandler) Applications(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	res, err := h.uc.Applications(c.Context(), userID, c.Query("status"), page, limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplications(res))
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id", "job")
	if err != nil {
		return err
	}

	d, err := h.uc.Get(c.Context(), optionalUser(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobDetail(d))
}

func (h *JobsHandler) Apply(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id", "job")
	if err != nil {
		return err
	}

	res, err := h.uc.Apply(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Application submitted successfully", dto.ApplyResponse{
		Application: dto.NewApplication(res.Application),
		JobTitle:    res.JobTitle,
		Company:     res.Company,
	})
}
