package util

import "errors"

var (
	ErrUserIDRequired   = errors.New("user ID required")
	ErrNameRequired     = errors.New("name and email are required")
	ErrCareerIDRequired = errors.New("career ID required")
	ErrUserNotFound     = errors.New("user not found")
	ErrCareerNotFound   = errors.New("career not found")
	ErrEmailRegistered  = errors.New("email already exists")
	ErrInvalidToken     = errors.New("invalid token")
	ErrSessionRevoked   = errors.New("session revoked")
	ErrProviderDisabled = errors.New("sign-in provider not configured")
	ErrDanglingSkill    = errors.New("required skill has no catalog record")
)
