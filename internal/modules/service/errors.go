package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrBugNotFound      = errors.New("bug not found")
	ErrOccasionNotFound = errors.New("occasion not found")

	// ErrConflict is returned when a create would violate a uniqueness rule.
	ErrConflict = errors.New("already exists")

	ErrInvalidToken = errors.New("invalid operator token")
)

// NotFoundError reports a referenced entity that does not exist. Msg is safe
// to show to API callers.
type NotFoundError struct {
	Msg string
	Err error
}

func (e *NotFoundError) Error() string { return e.Msg }
func (e *NotFoundError) Unwrap() error { return e.Err }

func projectNotFound(id string) error {
	return &NotFoundError{
		Msg: fmt.Sprintf("Can't find project with id '%s'", id),
		Err: ErrProjectNotFound,
	}
}

// ValidationError reports malformed input; nothing was persisted.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// validateStruct runs the validate tags of v and converts the first failure
// into a *ValidationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Msg: err.Error()}
	}
	fe := verrs[0]
	return &ValidationError{Field: fieldName(fe), Msg: ruleMessage(fe)}
}

func fieldName(fe validator.FieldError) string {
	// struct field names map onto the snake_case API names
	switch fe.Field() {
	case "ProjectID":
		return "project_id"
	case "ExceptionText":
		return "exception_text"
	case "DiscussionURL":
		return "discussian_url"
	case "BugID":
		return "bug"
	case "IP":
		return "ip"
	case "OS":
		return "os"
	}
	return strings.ToLower(fe.Field())
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "notblank":
		return "this field may not be blank"
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "email":
		return "enter a valid email address"
	case "ip":
		return "enter a valid IPv4 or IPv6 address"
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice", fmt.Sprint(fe.Value()))
	case "url":
		return "enter a valid URL"
	}
	return fmt.Sprintf("failed on the %q rule", fe.Tag())
}

// optional maps "" to nil so blank optional fields are stored as NULL.
func optional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
