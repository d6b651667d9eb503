package response

import "github.com/gin-gonic/gin"

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// Success writes a success envelope with the given payload.
func Success(c *gin.Context, code int, message string, data interface{}) {
	RespondJSON(c, "success", code, message, data, nil)
}

// Error writes an error envelope carrying a machine-readable kind.
func Error(c *gin.Context, code int, kind ErrorKind, message string) {
	RespondJSON(c, "error", code, message, nil, ErrorDetail{Kind: kind})
}

// ErrorWithDetails writes an error envelope with extra detail text
// (typically binding/validation messages).
func ErrorWithDetails(c *gin.Context, code int, kind ErrorKind, message, details string) {
	RespondJSON(c, "error", code, message, nil, ErrorDetail{Kind: kind, Details: details})
}
