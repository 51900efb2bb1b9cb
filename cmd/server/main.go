package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"wordwise.app/server/common/id"
	"wordwise.app/server/common/llm"
	"wordwise.app/server/common/logger"
	"wordwise.app/server/common/otel"
	"wordwise.app/server/core/config"
	"wordwise.app/server/core/db"
	"wordwise.app/server/internal/ai"
	"wordwise.app/server/internal/grammar"
	"wordwise.app/server/internal/http/middleware"
	httprouter "wordwise.app/server/internal/http/router"
	"wordwise.app/server/internal/service"
	"wordwise.app/server/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet, OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "wordwise starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	checker := grammar.NewClient(cfg.Grammar)
	slog.InfoContext(ctx, "grammar client ready", "base_url", cfg.Grammar.BaseURL)

	var source ai.Source
	if cfg.SuggestionLLM.Enabled() {
		llmClient, err := llm.New(llm.Config{
			APIKey:  cfg.SuggestionLLM.APIKey,
			BaseURL: cfg.SuggestionLLM.BaseURL,
			Model:   cfg.SuggestionLLM.Model,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to create llm client", "error", err)
			os.Exit(1)
		}
		source = ai.NewLLMSource(llmClient, cfg.SuggestionLLM.MaxTokens)
		slog.InfoContext(ctx, "ai suggestion source ready", "model", cfg.SuggestionLLM.Model)
	} else {
		slog.InfoContext(ctx, "ai suggestion source disabled (no api key configured)")
	}

	stores := store.NewStores(database)
	services := service.NewServices(stores, checker, source)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		IsProduction: cfg.IsProduction(),
	})

	return router
}

const banner = `
██╗    ██╗ ██████╗ ██████╗ ██████╗ ██╗    ██╗██╗███████╗███████╗
██║    ██║██╔═══██╗██╔══██╗██╔══██╗██║    ██║██║██╔════╝██╔════╝
██║ █╗ ██║██║   ██║██████╔╝██║  ██║██║ █╗ ██║██║███████╗█████╗
██║███╗██║██║   ██║██╔══██╗██║  ██║██║███╗██║██║╚════██║██╔══╝
╚███╔███╔╝╚██████╔╝██║  ██║██████╔╝╚███╔███╔╝██║███████║███████╗
 ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═════╝  ╚══╝╚══╝ ╚═╝╚══════╝╚══════╝
`
