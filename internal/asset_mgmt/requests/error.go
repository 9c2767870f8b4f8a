package requests

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeInvalidArgument        Code = "INVALID_ARGUMENT"
	CodeNotFound               Code = "NOT_FOUND"
	CodeConflict               Code = "CONFLICT"
	CodeInternal               Code = "INTERNAL"
	CodeInsufficientInventory  Code = "INSUFFICIENT_INVENTORY"
	CodeConcurrentModification Code = "CONCURRENT_MODIFICATION"
)

type APIError struct {
	Code    Code
	Message string
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError { return &APIError{Code: CodeConflict, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func ErrInsufficientInventory() *APIError {
	return &APIError{Code: CodeInsufficientInventory, Message: "asset is out of stock"}
}

func ErrConcurrentModification() *APIError {
	return &APIError{Code: CodeConcurrentModification, Message: "asset quantity changed concurrently"}
}

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		case CodeConflict, CodeInsufficientInventory, CodeConcurrentModification:
			return 409
		default:
			return 500
		}
	}
	return 500
}

// IsCode reports whether err is an APIError carrying the given code.
func IsCode(err error, code Code) bool {
	var api *APIError
	return errors.As(err, &api) && api.Code == code
}
