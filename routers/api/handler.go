package api

import (
	"adscribe-server/logger"
	"adscribe-server/service"
	"adscribe-server/store"
)

// Handler carries the injected collaborators for all HTTP endpoints.
type Handler struct {
	Store    store.Store
	Blobs    service.BlobStore
	Queue    *service.Queue
	Pipeline *service.Pipeline
	Log      logger.Logger
}

func NewHandler(s store.Store, blobs service.BlobStore, queue *service.Queue, pipeline *service.Pipeline, log logger.Logger) *Handler {
	return &Handler{
		Store:    s,
		Blobs:    blobs,
		Queue:    queue,
		Pipeline: pipeline,
		Log:      log,
	}
}
