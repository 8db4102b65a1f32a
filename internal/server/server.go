package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Wolfram-St/db-builder-prototype-prop/internal/config"
	"github.com/Wolfram-St/db-builder-prototype-prop/internal/database"
	"github.com/Wolfram-St/db-builder-prototype-prop/internal/handlers"
	"github.com/Wolfram-St/db-builder-prototype-prop/internal/middlewares"
	"github.com/Wolfram-St/db-builder-prototype-prop/internal/repositories"
	"github.com/Wolfram-St/db-builder-prototype-prop/internal/routes"
	"github.com/Wolfram-St/db-builder-prototype-prop/internal/schema"
	"github.com/Wolfram-St/db-builder-prototype-prop/internal/services"
)

const bootstrapScript = "database/script.sql"

func NewServer() *http.Server {
	cfg := config.Load()

	// Snapshot persistence is optional; without DATABASE_URL the builder
	// keeps graphs in memory only.
	var snapshotRepo *repositories.SnapshotRepository
	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		if err := database.Bootstrap(context.Background(), pool, bootstrapScript); err != nil {
			log.Fatalf("failed to bootstrap database: %v", err)
		}
		snapshotRepo = repositories.NewSnapshotRepository(pool)
		log.Println("Snapshot persistence enabled")
	} else {
		log.Println("DATABASE_URL not set, running without snapshot persistence")
	}

	var historyRepo *repositories.RedisRepository
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect to Redis at %s: %v", cfg.RedisAddr, err)
		}
		historyRepo = repositories.NewRedisRepository(rdb)
		log.Println("Connected to Redis successfully")
	} else {
		log.Println("REDIS_ADDR not set, running without action history")
	}

	// Dependency injection
	toolkit := schema.NewToolkit()
	workspaceService := services.NewWorkspaceService(toolkit, snapshotRepo, historyRepo)
	sqlService := services.NewSQLService()
	diagramService := services.NewDiagramService()
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService)
	schemaHandler := handlers.NewSchemaHandler(workspaceService, sqlService, diagramService)

	// Initialize Gin router
	router := gin.Default()
	router.Use(middlewares.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.RegisterRoutes(router, workspaceHandler, schemaHandler)

	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
