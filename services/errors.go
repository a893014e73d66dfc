// File: /services/errors.go
package services

import "errors"

// ErrorKind groups handled errors by how the request boundary reports them
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindConflict
	KindNotFound
	KindPermissionDenied
	KindRuleViolation
	KindUnauthenticated
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindPermissionDenied:
		return "permission_denied"
	case KindRuleViolation:
		return "rule_violation"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// AppError is a user-facing error with a kind and a message safe to display
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

var (
	ErrEventNotFound        = &AppError{Kind: KindNotFound, Message: "Event not found"}
	ErrRegistrationNotFound = &AppError{Kind: KindNotFound, Message: "Registration not found"}
	ErrFeedbackNotFound     = &AppError{Kind: KindNotFound, Message: "Feedback not found"}
	ErrUserNotFound         = &AppError{Kind: KindNotFound, Message: "User not found"}

	ErrEventCancelled = &AppError{Kind: KindRuleViolation, Message: "This event has been cancelled. Registration is closed."}
	ErrEventPast      = &AppError{Kind: KindRuleViolation, Message: "This event has already taken place. Registration is closed."}
	ErrEventFull      = &AppError{Kind: KindRuleViolation, Message: "No places left for this event."}

	ErrAlreadyRegistered        = &AppError{Kind: KindConflict, Message: "You are already registered for this event."}
	ErrFeedbackAlreadySubmitted = &AppError{Kind: KindConflict, Message: "You have already left feedback for this event."}
	ErrUsernameTaken            = &AppError{Kind: KindConflict, Message: "A user with that username already exists."}
	ErrEmailTaken               = &AppError{Kind: KindConflict, Message: "This email is already in use."}

	ErrPermissionDenied = &AppError{Kind: KindPermissionDenied, Message: "Only staff members can perform this action."}

	ErrInvalidRating = NewValidationError("Please choose a rating from 1 to 5.")

	ErrInvalidCredentials = &AppError{Kind: KindUnauthenticated, Message: "Invalid username or password"}
	ErrInvalidToken       = &AppError{Kind: KindUnauthenticated, Message: "Invalid or expired token"}
)

// KindOf returns the kind of a handled error, or 0 for unexpected errors
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}
