package auth

import "errors"

// ErrSessionExpired marks a locally-detected expiry or a server 401. It is
// handled by the dispatcher's expiry hook and must not surface as a regular
// request failure.
var ErrSessionExpired = errors.New("session expired or invalid, authentication required")

// Error is an authentication failure (bad credentials, registration conflict)
// carrying a user-facing message.
type Error struct {
	Message string
}

func NewError(message string) *Error {
	return &Error{Message: message}
}

func (e *Error) Error() string {
	return e.Message
}
