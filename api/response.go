package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error bodies are a bare {"error": string}; the UI displays the message
// as-is and nothing programmatic hangs off it.

func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"error": message})
}

func respondInternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

// RecoveryHandler converts a handler panic into the standard 500 body. Only
// truly unexpected failures reach it; readers swallow per-file errors long
// before a handler runs.
func RecoveryHandler(c *gin.Context, _ any) {
	respondInternalError(c, "internal server error")
}
