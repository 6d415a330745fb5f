package services

import (
	"errors"
	"fmt"

	"github.com/scolink/community-service/internal/validator"
)

// Sentinel errors for service operations
var (
	// Authentication
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")

	// Not found
	ErrUserNotFound         = errors.New("user not found")
	ErrBranchNotFound       = errors.New("branch not found")
	ErrLevelNotFound        = errors.New("level not found")
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrTopicNotFound        = errors.New("topic not found")
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrFollowNotFound       = errors.New("follow relationship not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrBannerNotFound       = errors.New("banner not found")
	ErrFileNotFound         = errors.New("file not found")
	ErrSubmissionNotFound   = errors.New("no submission found for this assignment")

	// Business rules
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrAlreadySubmitted = errors.New("answers already submitted for this assignment")
	ErrTeacherNotValid  = errors.New("teacher account is not validated yet")
)

// PermissionError indicates the caller is authenticated but not allowed
// to perform the operation.
type PermissionError struct {
	UserID   string
	Action   string
	Resource string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %s does not have permission to %s %s", e.UserID, e.Action, e.Resource)
}

func NewPermissionError(userID, action, resource string) *PermissionError {
	return &PermissionError{UserID: userID, Action: action, Resource: resource}
}

// IsPermissionError checks if an error is a permission error
func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// BusinessRuleError indicates a domain rule rejected the operation.
type BusinessRuleError struct {
	Rule    string
	Message string
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

func NewBusinessRuleError(rule, message string) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Message: message}
}

// IsBusinessRuleError checks if an error is a business rule error
func IsBusinessRuleError(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// IsValidationError checks if an error carries field validation failures
func IsValidationError(err error) bool {
	var ve validator.ValidationErrors
	return errors.As(err, &ve)
}

// IsNotFoundError checks the service-level not-found sentinels
func IsNotFoundError(err error) bool {
	for _, sentinel := range []error{
		ErrUserNotFound,
		ErrBranchNotFound,
		ErrLevelNotFound,
		ErrSubjectNotFound,
		ErrTopicNotFound,
		ErrAssignmentNotFound,
		ErrFollowNotFound,
		ErrNotificationNotFound,
		ErrBannerNotFound,
		ErrFileNotFound,
		ErrSubmissionNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// IsConflictError checks errors that map to a conflict response
func IsConflictError(err error) bool {
	return errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrAlreadyFollowing) ||
		errors.Is(err, ErrSelfFollow) ||
		errors.Is(err, ErrAlreadySubmitted)
}
