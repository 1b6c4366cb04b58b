package handler

import (
	"io"
	"mime"

	"career-portal/internal/delivery/http/dto"
	"career-portal/internal/delivery/http/middleware"
	"career-portal/internal/pkg/response"
	"career-portal/internal/resume"
	"career-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const resumeFormField = "resume"

type ResumeHandler struct {
	uc usecase.ResumeUsecase
}

type uploadResumeResponse struct {
	Resume          dto.ResumeResponse `json:"resume"`
	ExtractedSkills []string           `json:"extracted_skills"`
	SkillsAdded     int                `json:"skills_added"`
}

func NewResumeHandler(uc usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/upload", h.Upload)
	r.Get("/download", h.Download)
	r.Get("/analysis", h.Analysis)
	r.Delete("/", h.Delete)
}

func (h *ResumeHandler) Upload(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile(resumeFormField)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "No file uploaded", nil, err)
	}
	if fh.Size > resume.MaxFileSize {
		return mapUsecaseError(usecase.ErrFileTooLarge)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, resume.MaxFileSize+1))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.Upload(c.Context(), userID, usecase.ResumeUpload{FileName: fh.Filename, Data: data})
	if err != nil {
		return mapUsecaseError(err)
	}

	skills := res.ExtractedSkills
	if skills == nil {
		skills = []string{}
	}
	return response.Success(c, fiber.StatusOK, "Resume uploaded and processed successfully", uploadResumeResponse{
		Resume:          dto.NewResume(res.Resume),
		ExtractedSkills: skills,
		SkillsAdded:     res.SkillsAdded,
	})
}

func (h *ResumeHandler) Download(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	body, rec, err := h.uc.Download(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	c.Set(fiber.HeaderContentType, rec.ContentType)
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": rec.OriginalName}))
	return c.SendStream(body, int(rec.Size))
}

func (h *ResumeHandler) Delete(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), userID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Resume deleted successfully", nil)
}

func (h *ResumeHandler) Analysis(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	a, err := h.uc.Analysis(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, a)
}
