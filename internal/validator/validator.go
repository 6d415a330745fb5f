package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/scolink/community-service/internal/models"
)

// ValidationError describes one failed field.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// ValidationErrors is a collection of field errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// HasErrors reports whether any field failed.
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Validator wraps go-playground/validator with the service's custom rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with all custom rules registered.
func New() *Validator {
	validate := validator.New()

	// Registration errors only happen for malformed rules, caught in tests.
	_ = validate.RegisterValidation("user_role", validateUserRole)
	_ = validate.RegisterValidation("topic_visibility", validateTopicVisibility)
	_ = validate.RegisterValidation("assignment_type", validateAssignmentType)
	_ = validate.RegisterValidation("question_type", validateQuestionType)

	return &Validator{validate: validate}
}

// Validate checks struct tags and returns field errors, or nil.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	return ToValidationErrors(err)
}

// ToValidationErrors converts library errors to the service's error type.
func ToValidationErrors(err error) ValidationErrors {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Message: err.Error()}}
	}

	errors := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		errors = append(errors, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Value:   fmt.Sprintf("%v", fe.Value()),
			Message: messageFor(fe),
		})
	}
	return errors
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "user_role":
		return fmt.Sprintf("%s must be one of: admin, teacher, student", fe.Field())
	case "topic_visibility":
		return fmt.Sprintf("%s must be public or followers_only", fe.Field())
	case "assignment_type":
		return fmt.Sprintf("%s must be quiz or submission", fe.Field())
	case "question_type":
		return fmt.Sprintf("%s must be mcq, text or true_false", fe.Field())
	default:
		return fmt.Sprintf("%s failed validation on %s", fe.Field(), fe.Tag())
	}
}

func validateUserRole(fl validator.FieldLevel) bool {
	return models.IsValidRole(fl.Field().String())
}

func validateTopicVisibility(fl validator.FieldLevel) bool {
	switch models.TopicVisibility(fl.Field().String()) {
	case models.VisibilityPublic, models.VisibilityFollowersOnly:
		return true
	}
	return false
}

func validateAssignmentType(fl validator.FieldLevel) bool {
	switch models.AssignmentType(fl.Field().String()) {
	case models.AssignmentQuiz, models.AssignmentSubmission:
		return true
	}
	return false
}

func validateQuestionType(fl validator.FieldLevel) bool {
	switch models.QuestionType(fl.Field().String()) {
	case models.QuestionMCQ, models.QuestionText, models.QuestionTrueFalse:
		return true
	}
	return false
}
