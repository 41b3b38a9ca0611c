package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/docuwise/legal-assistant/api/handlers"
	"github.com/docuwise/legal-assistant/api/routes"
	"github.com/docuwise/legal-assistant/config"
	"github.com/docuwise/legal-assistant/internal/analysis"
	"github.com/docuwise/legal-assistant/internal/extractor"
	"github.com/docuwise/legal-assistant/internal/llm"
	"github.com/docuwise/legal-assistant/internal/rag"
	"github.com/docuwise/legal-assistant/internal/registry"
	"github.com/docuwise/legal-assistant/internal/service/assistant"
	"github.com/docuwise/legal-assistant/pkg/logger"
	"github.com/docuwise/legal-assistant/pkg/storage"
)

func main() {
	// init logger
	log, err := logger.NewLogger(
		logger.WithLevel("info"),
		logger.WithEncoding("json"),
		logger.WithOutputPaths([]string{"stdout", "logs/app.log"}),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", logger.Error(err))
	}

	store, err := storage.New(storage.Type(cfg.StorageType), cfg.UploadDir, log)
	if err != nil {
		log.Fatal("Failed to init storage:", logger.Error(err))
	}

	gemini := llm.NewGemini(cfg.GeminiAPIKey)
	groq := llm.NewGroq(cfg.GroqAPIKey)

	svc := assistant.New(
		registry.NewInMemory(),
		store,
		extractor.New(log),
		analysis.NewAnalyzer(gemini, groq, log),
		rag.NewIndexer(gemini, log),
		gemini,
		gemini,
		log,
	)

	h := handlers.NewHandlers(svc, log)
	r := gin.New()
	r.Use(gin.Recovery())
	routes.SetupRoutes(r, h)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// start server
	go func() {
		log.Info("Server starting", logger.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error:", logger.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown:", logger.Error(err))
	}
}
