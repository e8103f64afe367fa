package utils

import "github.com/gin-gonic/gin"

// Fail writes the uniform error body used across the API. Messages stay
// generic for auth/config/store failures; details go to the log only.
func Fail(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"error": message})
}
