package usecase

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternal            = errors.New("internal error")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	ErrUserNotFound    = errors.New("user not found")
	ErrSkillNotFound   = errors.New("skill not found")
	ErrResumeNotFound  = errors.New("no resume found")
	ErrJobNotFound     = errors.New("job not found")
	ErrJobNotActive    = errors.New("job is no longer accepting applications")
	ErrAlreadyApplied  = errors.New("already applied to this job")
	ErrCourseNotFound  = errors.New("course not found")
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
)

var (
	ErrUnsupportedFile = errors.New("only PDF, DOC and DOCX files are allowed")
	ErrFileTooLarge    = errors.New("file exceeds the 10 MB limit")
)
