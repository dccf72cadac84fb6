package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"adscribe-server/models"
	"adscribe-server/service"
	"adscribe-server/store"
)

// CreateProject persists a processing project and enqueues its pipeline run.
// The response returns immediately; callers poll progress afterwards.
func (h *Handler) CreateProject(c *gin.Context) {
	var req struct {
		Title    string `json:"title" binding:"required"`
		Source   string `json:"source" binding:"required"`
		VideoURL string `json:"video_url" binding:"required"`
		VideoKey string `json:"video_key"`
		Duration int    `json:"duration"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Source {
	case models.SourceUpload:
		if req.VideoKey == "" || req.Duration <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "upload source requires video_key and a positive duration"})
			return
		}
	case models.SourceLink:
		// Duration is probed after download.
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "source must be 'upload' or 'link'"})
		return
	}

	project := models.Project{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Source:          req.Source,
		VideoURL:        req.VideoURL,
		VideoKey:        req.VideoKey,
		Duration:        req.Duration,
		Status:          models.ProjectStatusProcessing,
		Progress:        0,
		ProgressMessage: "Queued for processing...",
	}

	if err := h.Store.CreateProject(c.Request.Context(), &project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create project: " + err.Error()})
		return
	}

	if err := h.Queue.EnqueueProcess(project.ID); err != nil {
		h.Log.Error(c.Request.Context(), "Enqueue failed for project %s: %v", project.ID, err)
		_ = h.Store.UpdateProject(c.Request.Context(), project.ID, store.FailureUpdate{
			Message: "failed to schedule processing",
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "schedule processing: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project_id": project.ID})
}

func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.Store.ListProjects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.Store.GetProject(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) GetProgress(c *gin.Context) {
	project, err := h.Store.GetProject(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"progress": project.Progress,
		"message":  project.ProgressMessage,
		"status":   project.Status,
	})
}

func (h *Handler) GetUnits(c *gin.Context) {
	projectID := c.Param("project_id")
	if _, err := h.Store.GetProject(c.Request.Context(), projectID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	units, err := h.Store.GetUnits(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": units})
}

// DownloadScript returns the raw script blob persisted at completion.
func (h *Handler) DownloadScript(c *gin.Context) {
	project, err := h.Store.GetProject(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	if project.ScriptData == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "script not available"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="script.json"`)
	c.Data(http.StatusOK, "application/json", []byte(project.ScriptData))
}

// DownloadSRT renders the project's units as a SubRip subtitle file.
func (h *Handler) DownloadSRT(c *gin.Context) {
	projectID := c.Param("project_id")
	if _, err := h.Store.GetProject(c.Request.Context(), projectID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	units, err := h.Store.GetUnits(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(units) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no units available"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="script.srt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(service.GenerateSRT(units)))
}

// DeleteProject removes the project and its units.
func (h *Handler) DeleteProject(c *gin.Context) {
	projectID := c.Param("project_id")
	if _, err := h.Store.GetProject(c.Request.Context(), projectID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	if err := h.Store.DeleteProject(c.Request.Context(), projectID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// CancelProject aborts an in-flight run.
func (h *Handler) CancelProject(c *gin.Context) {
	projectID := c.Param("project_id")
	if !h.Pipeline.CancelRun(projectID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no run in progress for this project"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}
