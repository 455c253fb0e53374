package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	httpAdapter "github.com/ngoctranq/linkvault/adapters/http"
	"github.com/ngoctranq/linkvault/adapters/persistence"
	"github.com/ngoctranq/linkvault/adapters/session"
	mediaUC "github.com/ngoctranq/linkvault/internal/application/usecase/media"
	"github.com/ngoctranq/linkvault/internal/config"
	"github.com/ngoctranq/linkvault/pkg/logger"
	"github.com/ngoctranq/linkvault/pkg/tracing"
)

func main() {
	fmt.Println("Start LinkVault API Server...")

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	if cfg.Jaeger.OTLPEndpoint != "" {
		tp, err := tracing.Init(context.Background(), cfg.Jaeger.OTLPEndpoint, "linkvault-api", appLogger)
		if err != nil {
			appLogger.Fatal("cannot init tracer", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				appLogger.Error("tracer shutdown failed", err)
			}
		}()
	}

	// Repositories
	mediaRepo := persistence.NewPostgresMediaRepo(dbPool)

	// Identity side-channel: sessions are written by the external identity
	// service, this server only resolves them.
	identityResolver := session.NewRedisResolver(redisClient, cfg.Auth.SessionKeyPrefix, appLogger)

	// Use Cases
	registerMediaUseCase := mediaUC.NewRegisterMediaUseCase(mediaRepo, appLogger)
	getMediaUseCase := mediaUC.NewGetMediaUseCase(mediaRepo)
	listMediaUseCase := mediaUC.NewListMediaUseCase(mediaRepo)
	searchMediaUseCase := mediaUC.NewSearchMediaUseCase(mediaRepo)
	previewMediaUseCase := mediaUC.NewPreviewMediaUseCase()

	// HTTP Handlers
	mediaHandler := httpAdapter.NewMediaHandler(
		registerMediaUseCase,
		getMediaUseCase,
		listMediaUseCase,
		searchMediaUseCase,
		previewMediaUseCase,
		appLogger,
	)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(identityResolver, appLogger)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	// Setup Gin router
	router := gin.Default()
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		media := api.Group("/media")
		media.Use(authMiddleware)
		{
			media.POST("", mediaHandler.RegisterMedia)
			media.GET("", mediaHandler.ListMedia)
			media.GET("/search", mediaHandler.SearchMedia)
			media.GET("/extract", mediaHandler.PreviewMedia)
			media.GET("/:id", mediaHandler.GetMedia)
		}
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
