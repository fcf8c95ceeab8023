package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"exercise-api/internal/api"
	"exercise-api/internal/config"
	"exercise-api/internal/repository/sqlite"
	"exercise-api/internal/service"
	"exercise-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		os.Stderr.WriteString("could not load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.LogLevel(cfg.Log.Level), os.Stdout)
	log.Info("starting exercise API server", map[string]interface{}{"address": cfg.Server.Address})

	// --- Database ---
	db, err := sqlite.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatal("could not open database", map[string]interface{}{"error": err.Error()})
	}
	defer db.Close()

	// --- Repositories ---
	userRepo := sqlite.NewUserRepository(db, log)
	exerciseRepo := sqlite.NewExerciseRepository(db, log)

	// --- Services ---
	authService := service.NewAuthService(userRepo, log, cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	exerciseService := service.NewExerciseService(exerciseRepo, log)

	// --- HTTP ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, log, authService, exerciseService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen and serve failed", map[string]interface{}{"error": err.Error()})
		}
	}()
	log.Info("server listening", map[string]interface{}{"address": cfg.Server.Address})

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", map[string]interface{}{"error": err.Error()})
	}

	log.Info("server exited", nil)
}
