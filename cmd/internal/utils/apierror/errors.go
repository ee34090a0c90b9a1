package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"error"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

// StructuredError is a 400 that also says which fields failed and why.
type StructuredError struct {
	Message string              `json:"error"`
	Errors  map[string][]string `json:"fields"`
	Status  int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

var (
	MalformedBodyError  = NewSimple(http.StatusBadRequest, "Malformed JSON body")
	InvalidInputError   = NewSimple(http.StatusBadRequest, "Invalid input")
	InternalServerError = NewSimple(http.StatusInternalServerError, "Internal server error")
	NotFoundError       = NewSimple(http.StatusNotFound, "Not found")
	TooManyRequests     = NewSimple(http.StatusTooManyRequests, "Too many requests")

	/*
	 * Used for authentication
	 */
	EmailTakenError         = NewSimple(http.StatusConflict, "Email already registered")
	InvalidCredentialsError = NewSimple(http.StatusUnauthorized, "Invalid credentials")
	UnauthorizedError       = NewSimple(http.StatusUnauthorized, "Unauthorized")
	InvalidAuthTokenError   = NewSimple(http.StatusUnauthorized, "Invalid or expired token")

	/*
	 * Used for shares
	 */
	NoteNotFoundError      = NewSimple(http.StatusNotFound, "Note not found")
	InvalidLinkError       = NewSimple(http.StatusNotFound, "Invalid link")
	RecipientRequiredError = NewSimple(http.StatusBadRequest, "toUserEmail required")
)

func FromValidationError(err error) ErrorResponse {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return InvalidInputError
	}

	problems := NewStructured(http.StatusBadRequest)
	for _, fe := range ve {
		field := fe.Field()

		switch fe.Tag() {
		case "required", "notblank":
			problems.Add(field, "This field is required")
		case "min":
			problems.Add(field, "Value is too short, min: "+fe.Param())
		case "max":
			problems.Add(field, "Value is too long, max: "+fe.Param())
		case "email":
			problems.Add(field, "Value must be a valid email address")

		default:
			problems.Add(field, "Invalid value provided")
		}
	}
	return problems
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Message: "Invalid input",
		Errors:  make(map[string][]string),
		Status:  code,
	}
}

func NewMissingParamError(name string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' is required", name)
}
