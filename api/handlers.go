package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"claudeboard/notifications"
	"claudeboard/store"
)

// Handlers exposes the store and the notification service over HTTP. The
// store re-reads the filesystem per request, so every response reflects the
// disk at the moment of the call.
type Handlers struct {
	store *store.Store
	notif *notifications.Service
}

// NewHandlers creates the handler set.
func NewHandlers(st *store.Store, notif *notifications.Service) *Handlers {
	return &Handlers{store: st, notif: notif}
}

// ListPlans handles GET /api/plans
func (h *Handlers) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListPlans())
}

// GetPlan handles GET /api/plans/:filename
func (h *Handlers) GetPlan(c *gin.Context) {
	plan := h.store.GetPlan(c.Param("filename"))
	if plan == nil {
		respondNotFound(c, "Plan not found")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ListTasks handles GET /api/tasks
func (h *Handlers) ListTasks(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListTasks())
}

// ListTodos handles GET /api/todos
func (h *Handlers) ListTodos(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListTodos())
}

// ListSessions handles GET /api/sessions
func (h *Handlers) ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListSessions())
}

// ListProjects handles GET /api/projects
func (h *Handlers) ListProjects(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListProjects())
}

// GetProject handles GET /api/projects/:encodedName
func (h *Handlers) GetProject(c *gin.Context) {
	project := h.store.GetProject(c.Param("encodedName"))
	if project == nil {
		respondNotFound(c, "Project not found")
		return
	}
	c.JSON(http.StatusOK, project)
}

// ListMemory handles GET /api/memory
func (h *Handlers) ListMemory(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListMemoryProjects())
}

// GetMemoryFile handles GET /api/memory/:projectDir/:filename.
// A path escaping the memory root reads as not found; traversal probes get
// no hint they were blocked.
func (h *Handlers) GetMemoryFile(c *gin.Context) {
	file := h.store.GetMemoryFile(c.Param("projectDir"), c.Param("filename"))
	if file == nil {
		respondNotFound(c, "Memory file not found")
		return
	}
	c.JSON(http.StatusOK, file)
}

// GetStats handles GET /api/stats
func (h *Handlers) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.GetStats())
}

// GetStatsSummary handles GET /api/stats/summary
func (h *Handlers) GetStatsSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.GetStats().Summary)
}

// Search handles GET /api/search?q=...
// An empty or missing query is an empty result list, not an error.
func (h *Handlers) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusOK, []store.SearchResult{})
		return
	}
	c.JSON(http.StatusOK, h.store.Search(query))
}

// Health handles GET /api/health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
