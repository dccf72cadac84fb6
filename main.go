package main

import (
	"context"
	"log"

	"adscribe-server/config"
	"adscribe-server/logger"
	"adscribe-server/models"
	"adscribe-server/pkg/executor"
	"adscribe-server/routers"
	"adscribe-server/routers/api"
	"adscribe-server/service"
	"adscribe-server/store"
)

func main() {
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg := logger.New(cfg.Logging.Level)
	ctx := context.Background()

	db, err := models.InitDB(cfg.MySQL.DSN)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	st := store.New(db)
	lg.Info(ctx, "Database initialized")

	blobs, err := service.NewBlobStore(ctx, cfg)
	if err != nil {
		log.Fatalf("init object storage: %v", err)
	}
	lg.Info(ctx, "Object storage initialized")

	queue := service.NewQueue(cfg)
	defer queue.Close()

	tools := service.NewToolchain(executor.New())
	describer := service.NewGeminiDescriber(cfg.Gemini.APIKey, cfg.Gemini.Model)
	narrator := service.NewOpenAINarrator(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.SpeechModel, cfg.OpenAI.Voice)

	pipeline := service.NewPipeline(cfg, st, blobs, tools, describer, narrator, lg)

	worker := service.NewWorker(pipeline, lg)
	worker.Start(cfg)
	lg.Info(ctx, "Worker started with concurrency %d", cfg.Pipeline.Concurrency)

	h := api.NewHandler(st, blobs, queue, pipeline, lg)
	r := routers.InitRouter(h)
	lg.Info(ctx, "Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
