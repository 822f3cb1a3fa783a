package internal

// AppError is the wire shape of a failed API call: the server's explanation
// plus the HTTP status it was sent with.
type AppError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, msg string) *AppError {
	return &AppError{Message: msg, Code: code}
}
