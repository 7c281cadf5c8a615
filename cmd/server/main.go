package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"promptvault/internal/auth"
	"promptvault/internal/config"
	"promptvault/internal/handler"
	"promptvault/internal/httputil"
	"promptvault/internal/middleware"
	"promptvault/internal/repository/postgres"
	"promptvault/internal/service"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	httputil.SetBodyLimit(int64(cfg.MaxAttachmentSize))

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Session token issuer (HS256), optionally chained with an external
	// JWKS verifier so tokens minted elsewhere are also accepted
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL, cfg.RememberTTL)

	var verifier auth.TokenVerifier = issuer
	if cfg.ExternalJWKSURL != "" {
		jwksVerifier, err := auth.NewJWKSVerifier(cfg.ExternalJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWKS verifier: %v", err)
		}
		defer jwksVerifier.Close()
		verifier = auth.NewChainVerifier(issuer, jwksVerifier)
		logger.Info("external JWKS verifier enabled", "url", cfg.ExternalJWKSURL)
	}

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names and bootstrap schema
	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)
	promptRepo := postgres.NewPromptRepository(repoConfig)
	responseRepo := postgres.NewResponseRepository(repoConfig)
	attachmentRepo := postgres.NewAttachmentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Create services
	authService := service.NewAuthService(userRepo, issuer, logger)
	projectService := service.NewProjectService(projectRepo, logger)
	promptService := service.NewPromptService(promptRepo, projectRepo, responseRepo, txManager, logger)
	responseService := service.NewResponseService(responseRepo, promptRepo, logger)
	attachmentService := service.NewAttachmentService(attachmentRepo, promptRepo, cfg, logger)
	userService := service.NewUserService(userRepo, logger)

	// Create handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	projectHandler := handler.NewProjectHandler(projectService, logger)
	promptHandler := handler.NewPromptHandler(promptService, logger)
	responseHandler := handler.NewResponseHandler(responseService, logger)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService, logger)
	userHandler := handler.NewUserHandler(userService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Auth routes
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)

	// Dashboard
	mux.HandleFunc("GET /api/dashboard", projectHandler.Dashboard)

	// Project routes
	mux.HandleFunc("GET /api/projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /api/projects", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects/{projectID}", projectHandler.GetProject)
	mux.HandleFunc("PATCH /api/projects/{projectID}", projectHandler.UpdateProject)
	mux.HandleFunc("DELETE /api/projects/{projectID}", projectHandler.DeleteProject)

	// Prompt routes
	mux.HandleFunc("GET /api/projects/{projectID}/prompts", promptHandler.ListPrompts)
	mux.HandleFunc("POST /api/projects/{projectID}/prompts", promptHandler.CreatePrompt)
	mux.HandleFunc("GET /api/projects/{projectID}/prompts/{promptID}", promptHandler.GetPrompt)
	mux.HandleFunc("PATCH /api/projects/{projectID}/prompts/{promptID}", promptHandler.UpdatePrompt)
	mux.HandleFunc("DELETE /api/projects/{projectID}/prompts/{promptID}", promptHandler.DeletePrompt)
	mux.HandleFunc("POST /api/projects/{projectID}/prompts/{promptID}/duplicate", promptHandler.DuplicatePrompt)
	mux.HandleFunc("GET /api/projects/{projectID}/prompts/{promptID}/preview", promptHandler.PreviewPrompt)

	// Cross-project prompt search
	mux.HandleFunc("GET /api/prompts/search", promptHandler.SearchPrompts)

	// Response routes (append-only conversation)
	mux.HandleFunc("GET /api/projects/{projectID}/prompts/{promptID}/responses", responseHandler.ListResponses)
	mux.HandleFunc("POST /api/projects/{projectID}/prompts/{promptID}/responses", responseHandler.AddResponse)

	// Attachment routes
	mux.HandleFunc("GET /api/projects/{projectID}/prompts/{promptID}/attachments", attachmentHandler.ListAttachments)
	mux.HandleFunc("POST /api/projects/{projectID}/prompts/{promptID}/attachments", attachmentHandler.CreateAttachment)
	mux.HandleFunc("GET /api/projects/{projectID}/prompts/{promptID}/attachments/{attachmentID}", attachmentHandler.GetAttachment)
	mux.HandleFunc("PATCH /api/projects/{projectID}/prompts/{promptID}/attachments/{attachmentID}", attachmentHandler.UpdateAttachment)
	mux.HandleFunc("DELETE /api/projects/{projectID}/prompts/{promptID}/attachments/{attachmentID}", attachmentHandler.DeleteAttachment)

	// User administration and profile routes
	mux.HandleFunc("GET /api/users", userHandler.ListUsers)
	mux.HandleFunc("POST /api/users", userHandler.CreateUser)
	mux.HandleFunc("GET /api/users/me", userHandler.CurrentUser)
	mux.HandleFunc("GET /api/users/{userID}", userHandler.GetUser)
	mux.HandleFunc("PATCH /api/users/{userID}", userHandler.UpdateUser)
	mux.HandleFunc("DELETE /api/users/{userID}", userHandler.DeleteUser)
	mux.HandleFunc("PUT /api/users/{userID}/password", userHandler.ChangePassword)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestLog → Recovery → Auth → Routes
	h = middleware.Auth(verifier, userRepo)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLog(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
