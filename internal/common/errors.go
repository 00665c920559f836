package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")

	// Topic/content errors
	ErrTopicNotFound   = errors.New("topic not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrRuleNotFound    = errors.New("rule not found")
	ErrPostLocked      = errors.New("post is locked")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrUserNotFound = errors.New("user not found")
	ErrBanned       = errors.New("banned from topic")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
)
