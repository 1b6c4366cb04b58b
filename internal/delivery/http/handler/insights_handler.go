package handler

import (
	"career-portal/internal/delivery/http/dto"
	"career-portal/internal/pkg/response"
	"career-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// InsightsHandler serves the read-only views derived from a user's data:
// skill gap analysis and progress tracking.
type InsightsHandler struct {
	skills   usecase.SkillAnalysisUsecase
	progress usecase.ProgressUsecase
}

func NewInsightsHandler(skills usecase.SkillAnalysisUsecase, progress usecase.ProgressUsecase) *InsightsHandler {
	return &InsightsHandler{skills: skills, progress: progress}
}

func (h *InsightsHandler) RegisterSkillRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/analysis", h.SkillAnalysis)
}

func (h *InsightsHandler) RegisterProgressRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/timeline", h.Timeline)
	r.Get("/stats", h.Stats)
}

func (h *InsightsHandler) SkillAnalysis(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	a, err := h.skills.Analysis(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillAnalysis(a))
}

func (h *InsightsHandler) Timeline(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	tl, err := h.progress.Timeline(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTimeline(tl))
}

func (h *InsightsHandler) Stats(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	st, err := h.progress.Stats(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProgressStats(st))
}
