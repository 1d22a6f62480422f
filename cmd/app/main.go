package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"matrimony-backend/internal/common/config"
	"matrimony-backend/internal/common/logger"
	"matrimony-backend/internal/common/middleware"
	adminhttp "matrimony-backend/internal/features/admin/delivery/http"
	adminservice "matrimony-backend/internal/features/admin/service"
	authhttp "matrimony-backend/internal/features/auth/delivery/http"
	authservice "matrimony-backend/internal/features/auth/service"
	browsehttp "matrimony-backend/internal/features/browse/delivery/http"
	browseservice "matrimony-backend/internal/features/browse/service"
	mediahttp "matrimony-backend/internal/features/media/delivery/http"
	mediaservice "matrimony-backend/internal/features/media/service"
	"matrimony-backend/internal/features/profile/models"
	profilehttp "matrimony-backend/internal/features/profile/delivery/http"
	"matrimony-backend/internal/features/profile/repository/fallback"
	localrepo "matrimony-backend/internal/features/profile/repository/local"
	postgresrepo "matrimony-backend/internal/features/profile/repository/postgres"
	profileservice "matrimony-backend/internal/features/profile/service"
	"matrimony-backend/internal/platform/postgres"
	"matrimony-backend/internal/platform/redis"
	"matrimony-backend/internal/platform/storage"
)

func main() {
	cfg := config.Load()

	logger.Init("matrimony-backend", cfg.Debug)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A remote-store outage at boot is survivable; only a malformed DSN
	// fails here. The local store below is required.
	postgresClient, err := postgres.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open database")
	}
	defer postgresClient.Close()

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	store, err := storage.NewStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize object storage")
	}

	// Remote store first, local record store as the fallback.
	remoteRepo := postgresrepo.NewRepository(postgresClient.GetDB())
	localRepo := localrepo.NewRepository(redisClient)
	repo := fallback.NewRepository(remoteRepo, localRepo)

	sessions := localrepo.NewSessionStore(redisClient)

	mediaSvc := mediaservice.NewService(store, cfg.Media.TargetSizeKB, cfg.Media.MaxUploadMB)
	authSvc := authservice.NewAuthService(repo, sessions, authservice.AdminBootstrap{
		Mobile:   cfg.Admin.Mobile,
		Password: cfg.Admin.Password,
		Name:     cfg.Admin.Name,
	})
	profileSvc := profileservice.NewProfileService(repo, mediaSvc, sessions)
	adminSvc := adminservice.NewAdminService(repo, mediaSvc)
	browseSvc := browseservice.NewBrowseService(repo)

	// Seed the admin identity at startup so the fixed credential pair
	// always resolves.
	if _, err := authSvc.EnsureAdmin(ctx); err != nil {
		logger.Error().Err(err).Msg("Admin bootstrap failed, will retry on login")
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.Origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	requireSession := middleware.RequireSession(func(c *gin.Context) (*models.Profile, error) {
		return authSvc.Restore(c.Request.Context())
	})

	v1 := router.Group("/api/v1")
	authhttp.NewAuthHandler(authSvc).RegisterRoutes(v1)
	profilehttp.NewProfileHandler(profileSvc, requireSession).RegisterRoutes(v1)
	browsehttp.NewBrowseHandler(browseSvc, requireSession).RegisterRoutes(v1)
	adminhttp.NewAdminHandler(adminSvc, requireSession).RegisterRoutes(v1)
	mediahttp.NewMediaHandler(mediaSvc, requireSession).RegisterRoutes(v1)

	registerHealthRoutes(router, postgresClient, redisClient)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
		os.Exit(1)
	}

	logger.Info().Msg("Server exited")
}

func registerHealthRoutes(router *gin.Engine, pg *postgres.Client, rdb *goredis.Client) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "matrimony-backend",
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// The local record store is required; the remote store is not,
		// since operations fall back to local when it is down.
		if err := rdb.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unready",
				"error":  "redis unavailable",
			})
			return
		}

		remote := "ok"
		if err := pg.HealthCheck(ctx); err != nil {
			remote = "unavailable"
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"remote":    remote,
			"timestamp": time.Now().UTC(),
			"service":   "matrimony-backend",
		})
	})
}
