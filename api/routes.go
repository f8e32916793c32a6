package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api")

	api.GET("/plans", h.ListPlans)
	api.GET("/plans/:filename", h.GetPlan)

	api.GET("/tasks", h.ListTasks)
	api.GET("/todos", h.ListTodos)
	api.GET("/sessions", h.ListSessions)

	api.GET("/projects", h.ListProjects)
	api.GET("/projects/:encodedName", h.GetProject)

	api.GET("/memory", h.ListMemory)
	api.GET("/memory/:projectDir/:filename", h.GetMemoryFile)

	api.GET("/stats", h.GetStats)
	api.GET("/stats/summary", h.GetStatsSummary)

	api.GET("/search", h.Search)

	// Change notifications (SSE)
	api.GET("/events", h.Events)

	api.GET("/health", h.Health)
}
