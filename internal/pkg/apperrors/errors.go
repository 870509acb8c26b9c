package apperrors

import "net/http"

// AppError is an error with an HTTP status, raised only by the synchronous
// entry points. Asynchronous processing failures are absorbed into the
// interaction record instead.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

var (
	ErrInteractionNotFound  = New(http.StatusNotFound, "interaction not found")
	ErrInteractionForbidden = New(http.StatusForbidden, "interaction belongs to another user")
)
