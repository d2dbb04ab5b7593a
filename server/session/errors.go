package session

// ErrorKind classifies a failed operation so callers can map it to a
// user-facing outcome without parsing message text.
type ErrorKind string

const (
	ErrValidation      ErrorKind = "validation"
	ErrNoUsersSelected ErrorKind = "no_users_selected"
	ErrNoActiveChat    ErrorKind = "no_active_chat"
	ErrMemberNotFound  ErrorKind = "member_not_found"
	ErrBusy            ErrorKind = "busy"
	ErrRemote          ErrorKind = "remote"
)

type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}
