package routers

import (
	"adscribe-server/routers/api"

	"github.com/gin-gonic/gin"
)

func InitRouter(h *api.Handler) *gin.Engine {
	r := gin.Default()
	v1 := r.Group("/v1/api")
	{
		v1.POST("/upload", h.UploadVideo)
		v1.POST("/projects", h.CreateProject)
		v1.GET("/projects", h.ListProjects)
		v1.GET("/projects/:project_id", h.GetProject)
		v1.DELETE("/projects/:project_id", h.DeleteProject)
		v1.GET("/projects/:project_id/progress", h.GetProgress)
		v1.GET("/projects/:project_id/units", h.GetUnits)
		v1.GET("/projects/:project_id/script", h.DownloadScript)
		v1.GET("/projects/:project_id/srt", h.DownloadSRT)
		v1.POST("/projects/:project_id/cancel", h.CancelProject)
	}
	r.GET("/projects/:project_id/ws", h.ProjectProgressWebSocket)
	return r
}
