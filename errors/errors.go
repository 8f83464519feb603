package errors

import (
	"fmt"
)

var (
	ErrWorkerPanic         = fmt.Errorf("worker panic")
	ErrQuestionNotFound    = fmt.Errorf("question not found")
	ErrInvalidQuestionID   = fmt.Errorf("invalid question id")
	ErrEmptyMessage        = fmt.Errorf("message cannot be empty")
	ErrEmptyAnswer         = fmt.Errorf("answer cannot be empty")
	ErrEmptySearchQuery    = fmt.Errorf("search query cannot be empty")
	ErrInvalidRegistration = fmt.Errorf("invalid registration")
	ErrInvalidPassword     = fmt.Errorf("password must contain a letter and a digit")
	ErrUserAlreadyExists   = fmt.Errorf("email or username already registered")
	ErrUserNotFound        = fmt.Errorf("user not found")
	ErrInvalidCredentials  = fmt.Errorf("invalid email or password")
	ErrTokenGeneration     = fmt.Errorf("token generation failed")
	ErrUnauthorized        = fmt.Errorf("unauthorized")
	ErrChannelClosed       = fmt.Errorf("channel closed")
	ErrChannelSaturated    = fmt.Errorf("channel outbound queue is full")
	ErrInvalidReplacement  = fmt.Errorf("replacement must be a single character")
	ErrInvalidHash         = fmt.Errorf("invalid hash format")
)

// SerializationError reports an event whose payload could not be encoded.
// It is a caller contract violation and must reach the request that
// triggered the announcement.
type SerializationError struct {
	EventType string
	Err       error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("cannot serialize %s event: %v", e.EventType, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
