package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/doc-studio/engine/internal/api"
	"github.com/doc-studio/engine/internal/api/handlers"
	"github.com/doc-studio/engine/internal/generator"
	"github.com/doc-studio/engine/internal/render"
	"github.com/doc-studio/engine/internal/repository"
	"github.com/doc-studio/engine/internal/services"
	"github.com/doc-studio/engine/pkg/config"
	"github.com/doc-studio/engine/pkg/database"
	"github.com/doc-studio/engine/pkg/logger"
)

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init("doc-studio-engine", cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting doc studio engine",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	log.Info("database connected")

	jwtSecret := []byte(cfg.JWTSecret)
	if len(jwtSecret) == 0 {
		log.Warn("JWT_SECRET not set, using default (INSECURE for production)")
		jwtSecret = []byte("change-me-in-production-please")
	}

	gen, err := generator.New(ctx, generator.Config{
		Provider: cfg.AIProvider,
		Model:    cfg.AIModel,
		APIKey:   cfg.AIAPIKey,
		BaseURL:  cfg.AIBaseURL,
	})
	if err != nil {
		log.Fatal("failed to initialize content generator", zap.Error(err))
	}

	renderer := render.NewRenderer(cfg.PandocBin)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	sectionRepo := repository.NewSectionRepository(db)

	authSvc := services.NewAuthService(userRepo, jwtSecret, cfg.TokenTTL)
	projectSvc := services.NewProjectService(projectRepo, sectionRepo, gen, renderer)

	router := api.NewRouter(api.Dependencies{
		HMACSecret:      jwtSecret,
		AuthHandler:     handlers.NewAuthHandler(authSvc, cfg.TokenTTL),
		ProjectsHandler: handlers.NewProjectsHandler(projectSvc),
		SectionsHandler: handlers.NewSectionsHandler(projectSvc),
		AIHandler:       handlers.NewAIHandler(gen),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
