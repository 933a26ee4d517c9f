package util

import "errors"

var (
	ErrUnauthorized        = errors.New("identity token rejected")
	ErrMissingComponent    = errors.New("componentType is required")
	ErrUnknownComponent    = errors.New("unknown component type")
	ErrStreakNotFound      = errors.New("streak not found")
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrUpstreamUnavailable = errors.New("upstream identity service unavailable")
)
