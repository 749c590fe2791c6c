package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput    = "INVALID_INPUT"
	CodeValidationError = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInvalidState    = "INVALID_STATE"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// DeniedCode builds the per-resource forbidden code, e.g. "attendance" -> "ATTENDANCE_DENIED".
func DeniedCode(resource string) string {
	if resource == "" {
		return CodeForbidden
	}
	out := make([]byte, 0, len(resource)+7)
	for i := 0; i < len(resource); i++ {
		ch := resource[i]
		switch {
		case ch >= 'a' && ch <= 'z':
			ch -= 'a' - 'A'
		case ch == '-' || ch == ' ' || ch == '.':
			ch = '_'
		}
		out = append(out, ch)
	}
	return string(out) + "_DENIED"
}
