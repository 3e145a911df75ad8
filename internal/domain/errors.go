package domain

import "net/http"

// Error carries an HTTP status alongside the message so the fiber error
// handler can translate service failures without inspecting strings.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error {
	return NewError(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return NewError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return NewError(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return NewError(http.StatusNotFound, message)
}

// ErrInsufficientStock is returned both by the pre-check in the order service
// and by the conditional stock decrement inside the creation transaction.
var ErrInsufficientStock = BadRequest("insufficient stock")

