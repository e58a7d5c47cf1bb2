package response

// ErrorCode values carried on the wire inside the error object.
type ErrorCode string

const (
	CodeValidationError     ErrorCode = "VALIDATION_ERROR"
	CodeInvalidLocale       ErrorCode = "INVALID_LOCALE"
	CodeInvalidArcanaType   ErrorCode = "INVALID_ARCANA_TYPE"
	CodeInvalidSuit         ErrorCode = "INVALID_SUIT"
	CodeInvalidLimit        ErrorCode = "INVALID_LIMIT"
	CodeInvalidOffset       ErrorCode = "INVALID_OFFSET"
	CodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	CodeInvalidSignature    ErrorCode = "INVALID_SIGNATURE"
	CodeInsufficientCredits ErrorCode = "INSUFFICIENT_CREDITS"
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeInternalError       ErrorCode = "INTERNAL_ERROR"
)

// APIError is the error object of a failed response.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// APIResponse is the envelope used by all HTTP APIs.
// Use OKT / ErrT helpers to construct instances.
type APIResponse[T any] struct {
	Success bool      `json:"success"`
	Data    T         `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// Pagination echoes the effective paging parameters on list responses.
type Pagination struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// ListResponse carries a page of items plus pagination metadata.
type ListResponse[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// OKT returns a successful response with data.
func OKT[T any](data T) *APIResponse[T] {
	return &APIResponse[T]{Success: true, Data: data}
}

// ErrT returns an error response with code and message.
func ErrT[T any](code ErrorCode, message string) *APIResponse[T] {
	return &APIResponse[T]{Success: false, Error: &APIError{Code: code, Message: message}}
}
