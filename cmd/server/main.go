package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chrisueda/sakewalk/internal/config"
	"github.com/chrisueda/sakewalk/internal/database"
	"github.com/chrisueda/sakewalk/internal/handler"
	"github.com/chrisueda/sakewalk/internal/middleware"
	"github.com/chrisueda/sakewalk/internal/repository"
	"github.com/chrisueda/sakewalk/internal/service"
	"github.com/chrisueda/sakewalk/internal/upload"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Define analyzers and indexes
	if err := repository.EnsureSchema(ctx, db); err != nil {
		slog.Error("failed to ensure schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize upload processing
	processor, err := upload.NewProcessor(upload.ProcessorConfig{
		Dir:      cfg.Uploads.Dir,
		MaxBytes: cfg.Uploads.MaxBytes,
		Width:    cfg.Uploads.Width,
	})
	if err != nil {
		slog.Error("failed to initialize uploads", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	sakeRepo := repository.NewSakeRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Initialize services
	userService := service.NewUserService(service.UserServiceConfig{
		Repo:  userRepo,
		Sakes: sakeRepo,
	})
	locationService := service.NewLocationService(service.LocationServiceConfig{
		Repo: locationRepo,
	})
	sakeService := service.NewSakeService(service.SakeServiceConfig{
		Repo: sakeRepo,
	})
	reviewService := service.NewReviewService(service.ReviewServiceConfig{
		Repo:  reviewRepo,
		Sakes: sakeRepo,
	})

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db)
	authHandler := handler.NewAuthHandler(handler.AuthHandlerConfig{
		Users: userService,
	})
	locationHandler := handler.NewLocationHandler(handler.LocationHandlerConfig{
		Locations: locationService,
	})
	sakeHandler := handler.NewSakeHandler(handler.SakeHandlerConfig{
		Sakes: sakeService,
		Users: userService,
	})
	reviewHandler := handler.NewReviewHandler(handler.ReviewHandlerConfig{
		Reviews: reviewService,
	})
	uploadHandler := handler.NewUploadHandler(handler.UploadHandlerConfig{
		Processor: processor,
		MaxBytes:  cfg.Uploads.MaxBytes,
	})

	// Setup routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Auth endpoints (public)
	mux.HandleFunc("POST /v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)

	// Location endpoints (public)
	mux.HandleFunc("GET /v1/locations", locationHandler.List)
	mux.HandleFunc("GET /v1/locations/near", locationHandler.Nearby)
	mux.HandleFunc("GET /v1/locations/{slug}", locationHandler.Get)
	mux.HandleFunc("GET /v1/search", locationHandler.Search)

	// Sake endpoints (public)
	mux.HandleFunc("GET /v1/sakes", sakeHandler.List)
	mux.HandleFunc("GET /v1/sakes/page/{page}", sakeHandler.Page)
	mux.HandleFunc("GET /v1/sakes/{slug}", sakeHandler.Get)
	mux.HandleFunc("GET /v1/tags", sakeHandler.Tags)
	mux.HandleFunc("GET /v1/tags/{tag}", sakeHandler.Tags)
	mux.HandleFunc("GET /v1/top", sakeHandler.Top)

	// Protected endpoints
	authMiddleware := middleware.Auth(userService)
	mux.Handle("POST /v1/auth/logout", authMiddleware(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /v1/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me)))
	mux.Handle("PATCH /v1/account", authMiddleware(http.HandlerFunc(authHandler.UpdateAccount)))

	mux.Handle("POST /v1/locations", authMiddleware(http.HandlerFunc(locationHandler.Create)))
	mux.Handle("PATCH /v1/locations/{id}", authMiddleware(http.HandlerFunc(locationHandler.Update)))

	mux.Handle("POST /v1/sakes", authMiddleware(http.HandlerFunc(sakeHandler.Create)))
	mux.Handle("PATCH /v1/sakes/{id}", authMiddleware(http.HandlerFunc(sakeHandler.Update)))
	mux.Handle("POST /v1/sakes/{id}/heart", authMiddleware(http.HandlerFunc(sakeHandler.Heart)))
	mux.Handle("GET /v1/hearts", authMiddleware(http.HandlerFunc(sakeHandler.Hearts)))

	mux.Handle("POST /v1/reviews/{sakeId}", authMiddleware(http.HandlerFunc(reviewHandler.Create)))
	mux.Handle("POST /v1/uploads", authMiddleware(http.HandlerFunc(uploadHandler.Create)))

	// Uploaded photos are served statically
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.Dir))))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
