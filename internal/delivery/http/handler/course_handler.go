package handler

import (
	"career-portal/internal/delivery/http/dto"
	"career-portal/internal/delivery/http/middleware"
	"career-portal/internal/pkg/response"
	"career-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CourseHandler struct {
	uc usecase.CourseUsecase
}

func NewCourseHandler(uc usecase.CourseUsecase) *CourseHandler {
	return &CourseHandler{uc: uc}
}

func (h *CourseHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	r.Get("/", auth.Optional(), h.List)
	r.Get("/recommendations", auth.Middleware(), h.Recommendations)
	r.Get("/:id", auth.Optional(), h.Get)
	r.Post("/:id/enroll", auth.Middleware(), h.Enroll)
}

func (h *CourseHandler) List(c fiber.Ctx) error {
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	res, err := h.uc.List(c.Context(), optionalUser(c), usecase.CourseListParams{
		Page:      page,
		Limit:     limit,
		Level:     c.Query("level"),
		Category:  c.Query("category"),
		Provider:  c.Query("provider"),
		Pricing:   c.Query("pricing"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CourseListResponse{
		Courses:    dto.NewCourses(res.Courses),
		Pagination: dto.NewPagination(res.Pagination),
	})
}

func (h *CourseHandler) Recommendations(c fiber.Ctx) error {
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
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCourses(items))
}

func (h *CourseHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id", "course")
	if err != nil {
		return err
	}

	sc, err := h.uc.Get(c.Context(), optionalUser(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCourse(sc))
}

func (h *CourseHandler) Enroll(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id", "course")
	if err != nil {
		return err
	}

	e, err := h.uc.Enroll(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Successfully enrolled in course", dto.EnrollmentResponse{
		CourseID:   e.CourseID,
		EnrolledAt: e.EnrolledAt,
		Progress:   e.Progress,
	})
}
