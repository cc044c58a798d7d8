package utils

import "github.com/gin-gonic/gin"

// ErrorResponse is the JSON error envelope shared by every failure path.
func ErrorResponse(message, details string) gin.H {
	response := gin.H{"error": message}
	if details != "" {
		response["details"] = details
	}
	return response
}
