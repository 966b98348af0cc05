package service

import "errors"

var (
	ErrFavoriteExists   = errors.New("Zone already in favorites")
	ErrFavoriteNotFound = errors.New("Favorite zone not found")

	ErrUserExists     = errors.New("Email or username already registered")
	ErrUserTaken      = errors.New("Email or username already taken")
	ErrIncorrectLogin = errors.New("Incorrect email/username or password")
	ErrInactiveUser   = errors.New("Inactive user")
	ErrUserNotFound   = errors.New("User not found")
	ErrGuest          = errors.New("Guest access is not allowed for this endpoint")
)

// ZoneUnavailableError 上游失败且没有快照可用
type ZoneUnavailableError struct {
	Detail map[string]any
}

func (e *ZoneUnavailableError) Error() string {
	if s, ok := e.Detail["error"].(string); ok {
		return s
	}
	return "upstream_failed"
}
