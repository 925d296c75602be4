package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	container "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Container"
	"gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.WebService/router"
)

func main() {
	// Initialize dependency injection container
	ctr, err := container.NewWebContainer()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize container: %v", err))
	}
	defer ctr.Shutdown(context.Background())

	logger := ctr.GetLogger()
	logger.Info("Starting greenhouse web service")

	config := ctr.GetConfig()
	if config.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine, err := router.New(router.Dependencies{
		Config:    config,
		Logger:    logger,
		Auth:      ctr.GetAuthClient(),
		Generator: ctr.GetGenerator(),
	})
	if err != nil {
		logger.FatalWithError(err, "Failed to build router")
	}

	port := config.Server.Port

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      engine,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
		IdleTimeout:  config.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server starting on port " + port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalWithError(err, "Failed to start HTTP server")
		}
	}()

	ctr.AddCleanupFunc(func() error {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	logger.Info("Web service running... press Ctrl+C to stop")

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down...")
}
