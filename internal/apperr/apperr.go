package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Sentinel kinds for the failure taxonomy. Services wrap these with a
// caller-facing message; handlers only need errors.Is to pick a status code.
var (
	ErrNotFound       = errors.New("not found")
	ErrRelatedMissing = errors.New("related entity missing")
	ErrValidation     = errors.New("validation failed")
)

type apiError struct {
	kind error
	msg  string
}

func (e *apiError) Error() string { return e.msg }
func (e *apiError) Unwrap() error { return e.kind }

func NotFound(format string, args ...any) error {
	return &apiError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func RelatedMissing(format string, args ...any) error {
	return &apiError{kind: ErrRelatedMissing, msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error {
	return &apiError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps an error to the status the REST surface reports:
// 404 for missing entities, 400 for missing required relations and bad
// payloads, 500 for everything else.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrRelatedMissing), errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ToFiber converts a service error into the fiber error the global
// ErrorHandler renders as {"message": ...}.
func ToFiber(err error) error {
	return fiber.NewError(HTTPStatus(err), err.Error())
}
