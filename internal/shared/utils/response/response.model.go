package response

type StandardApiResponse struct {
	Status     string      `json:"status"`           // "success" or "error"
	StatusCode int         `json:"status_code"`      // HTTP status code
	Message    string      `json:"message"`          // Human-readable message
	Data       interface{} `json:"data,omitempty"`   // Payload for success
	Errors     interface{} `json:"errors,omitempty"` // Validation or error details
}

// ErrorKind is the machine-readable error classification carried in the
// errors field of a StandardApiResponse.
type ErrorKind string

const (
	KindValidation           ErrorKind = "VALIDATION"
	KindNotFound             ErrorKind = "NOT_FOUND"
	KindInsufficientCapacity ErrorKind = "INSUFFICIENT_CAPACITY"
	KindForbidden            ErrorKind = "FORBIDDEN"
	KindInvalidTransition    ErrorKind = "INVALID_TRANSITION"
	KindUnauthorized         ErrorKind = "UNAUTHORIZED"
	KindConflict             ErrorKind = "CONFLICT"
	KindInternal             ErrorKind = "INTERNAL"
)

type ErrorDetail struct {
	Kind    ErrorKind `json:"kind"`
	Details string    `json:"details,omitempty"`
}
