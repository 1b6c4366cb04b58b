package middleware

import (
	"errors"

	"career-portal/internal/pkg/logger"
	"career-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// AppError is the error type handlers return to choose the response status.
// Message and Data are shown to the client only for statuses below 500.
type AppError struct {
	StatusCode int
	Message    string
	Data       any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func NewAppError(statusCode int, message string, data any, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

type ErrorMiddleware struct {
	logger *logger.Logger
}

func NewErrorMiddleware(log *logger.Logger) *ErrorMiddleware {
	if log == nil {
		log = logger.Nop()
	}
	return &ErrorMiddleware{logger: log}
}

// Middleware renders errors returned further down the chain as the JSON
// envelope and turns panics into a 500.
func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("panic recovered", "panic", r, "method", c.Method(), "path", c.Path(), "rid", c.Locals(CtxRequestIDKey))
				err = response.Error(c, fiber.StatusInternalServerError, "", nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		pub := publicError(err)
		if pub.StatusCode >= 500 {
			m.logger.Error("request failed", "error", err, "method", c.Method(), "path", c.Path(), "rid", c.Locals(CtxRequestIDKey))
		}
		return response.Error(c, pub.StatusCode, pub.Message, pub.Data)
	}
}

// publicError maps err onto what may be shown to the client. Anything that is
// not an AppError or fiber.Error becomes an opaque 500.
func publicError(err error) AppError {
	var status int
	var msg string
	var data any

	var appErr *AppError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		status, msg, data = appErr.StatusCode, appErr.Message, appErr.Data
	case errors.As(err, &fiberErr):
		status, msg = fiberErr.Code, fiberErr.Message
	}

	if status < 400 || status >= 500 {
		return AppError{StatusCode: fiber.StatusInternalServerError, Message: response.MessageInternalServerError}
	}
	if msg == "" {
		msg = response.DefaultMessage(status)
	}
	return AppError{StatusCode: status, Message: msg, Data: data}
}
