package services

import "errors"

var (
	ErrSettingNotFound = errors.New("setting not found")
	ErrPeriodNotFound  = errors.New("period not found")
	ErrPeriodExists    = errors.New("period slug already exists")
	ErrInvalidSlug     = errors.New("slug must be lowercase letters, digits and single dashes")
	ErrEventNotFound   = errors.New("event not found")
	ErrEventTypeExists = errors.New("event type already exists")
)
