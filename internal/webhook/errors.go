package webhook

type ErrorCode string

const (
	ErrorCodeValidation    ErrorCode = "validation_error"
	ErrorCodeConfiguration ErrorCode = "configuration_error"
	ErrorCodeUpstream      ErrorCode = "upstream_error"
	ErrorCodeTransport     ErrorCode = "transport_error"
)

// Error carries a client-safe Message; upstream status lines and bodies only
// ever travel in Err, which stays on the server side of the log boundary.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
