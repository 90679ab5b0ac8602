package errors

import "fmt"

var (
	ErrInvalidUsername    = fmt.Errorf("username must be 3-20 characters, letters, digits or underscore")
	ErrUsernameTaken      = fmt.Errorf("username already taken")
	ErrInvalidPassword    = fmt.Errorf("password does not meet requirements")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidServerName  = fmt.Errorf("invalid server name")
	ErrNotFound           = fmt.Errorf("not found")
	ErrNotLoggedIn        = fmt.Errorf("no active session")
	ErrEmptyMessage       = fmt.Errorf("message has no text or attachment")
	ErrUnknownAttachment  = fmt.Errorf("attachment type not supported")
	ErrTokenGeneration    = fmt.Errorf("unable to generate session token")
	ErrInvalidPayload     = fmt.Errorf("invalid event payload")
	ErrWorkerPanic        = fmt.Errorf("worker panic")
)
