package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 2 << 30 // 2 GiB

// UploadVideo streams a multipart video file into object storage and returns
// the key callers pass back when creating an upload-sourced project.
func (h *Handler) UploadVideo(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field: " + err.Error()})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".mp4"
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "video/mp4"
	}

	key := fmt.Sprintf("videos/%d_%s%s", time.Now().Unix(), uuid.NewString()[:8], ext)
	url, err := h.Blobs.Put(c.Request.Context(), key, file, header.Size, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":       url,
		"key":       key,
		"size":      header.Size,
		"mime_type": contentType,
	})
}
