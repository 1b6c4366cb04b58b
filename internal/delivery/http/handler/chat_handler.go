package handler

import (
	"errors"
	"time"

	"career-portal/internal/chatbot"
	"career-portal/internal/delivery/http/middleware"
	"career-portal/internal/pkg/response"
	"career-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ChatHandler struct {
	uc  usecase.ChatUsecase
	now func() time.Time
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	chatbot.Reply
	Timestamp time.Time `json:"timestamp"`
}

func NewChatHandler(uc usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc, now: time.Now}
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/message", h.Message)
}

func (h *ChatHandler) Message(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req chatRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	reply, err := h.uc.Message(c.Context(), userID, req.Message)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Message is required", nil, err)
		}
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, chatResponse{Reply: reply, Timestamp: h.now().UTC()})
}
