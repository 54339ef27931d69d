package apperr

import "net/http"

// Kind classifies a failure for the status mapping below. Handlers never
// pick HTTP statuses themselves; they return an *Error and let the single
// table decide.
type Kind int

const (
	Validation Kind = iota
	NotFound
	Unauthenticated
	Forbidden
	Conflict
	Internal
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap keeps the underlying cause for server-side logs while the caller
// only ever sees Message.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

var statusByKind = map[Kind]int{
	Validation:      http.StatusBadRequest,
	NotFound:        http.StatusNotFound,
	Unauthenticated: http.StatusUnauthorized,
	Forbidden:       http.StatusForbidden,
	Conflict:        http.StatusConflict,
	Internal:        http.StatusInternalServerError,
}

func Status(kind Kind) int {
	if s, ok := statusByKind[kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}
