package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"adscribe-server/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type progressEvent struct {
	Progress int    `json:"progress"`
	Message  string `json:"message"`
	Status   string `json:"status"`
}

// ProjectProgressWebSocket pushes progress updates for a project over a
// websocket. The pipeline writes progress to the database; this handler polls
// the row every second and pushes deltas until the project reaches a terminal
// status or the client disconnects.
func (h *Handler) ProjectProgressWebSocket(c *gin.Context) {
	projectID := c.Param("project_id")
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "websocket upgrade failed"})
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()

	project, err := h.Store.GetProject(ctx, projectID)
	if err != nil {
		_ = conn.WriteJSON(gin.H{"error": "project not found"})
		return
	}
	prev := progressEvent{Progress: project.Progress, Message: project.ProgressMessage, Status: project.Status}
	if err := conn.WriteJSON(prev); err != nil {
		return
	}
	if isTerminal(prev.Status) {
		return
	}

	// Read pump: the client never sends data, but reading is the only way to
	// notice a disconnect while progress is stalled.
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-disconnected:
			return
		case <-ticker.C:
		}

		project, err := h.Store.GetProject(ctx, projectID)
		if err != nil {
			continue
		}
		cur := progressEvent{Progress: project.Progress, Message: project.ProgressMessage, Status: project.Status}
		if cur != prev {
			if err := conn.WriteJSON(cur); err != nil {
				return
			}
			prev = cur
		}
		if isTerminal(cur.Status) {
			return
		}
	}
}

func isTerminal(status string) bool {
	return status == models.ProjectStatusCompleted || status == models.ProjectStatusFailed
}
