package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"ALH_backend/internal/api"
	"ALH_backend/internal/badge"
	"ALH_backend/internal/middleware"
	"ALH_backend/internal/repository"
	"ALH_backend/internal/service"
	"ALH_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	catalog, err := badge.NewCatalog()
	if err != nil {
		zapLogger.Fatal("Invalid badge catalog", zap.Error(err))
	}

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	notifier := service.NewNotifier()
	userService := service.NewUserService(repo)
	badgeService := service.NewBadgeService(catalog, repo, notifier)
	projectService := service.NewProjectService(repo, repo, badgeService)
	nudgeService := service.NewNudgeService(repo, badgeService)

	identity := middleware.NewIdentity(userService)

	router := gin.New()
	router.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	a := router.Group("/api/v1")
	api.NewUserRoutes(a, userService)
	api.NewProjectRoutes(a, projectService, identity)
	api.NewBadgeRoutes(a, badgeService, identity)
	api.NewNudgeRoutes(a, nudgeService, identity)
	api.NewNotificationRoutes(a, notifier, identity)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
