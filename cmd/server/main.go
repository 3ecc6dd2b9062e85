package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khanhvu/devconnect/adapters/event"
	httpAdapter "github.com/khanhvu/devconnect/adapters/http"
	"github.com/khanhvu/devconnect/adapters/persistence"
	postUC "github.com/khanhvu/devconnect/internal/application/usecase/post"
	profileUC "github.com/khanhvu/devconnect/internal/application/usecase/profile"
	"github.com/khanhvu/devconnect/internal/config"
	"github.com/khanhvu/devconnect/pkg/auth"
	"github.com/khanhvu/devconnect/pkg/logger"
	"github.com/khanhvu/devconnect/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting DevConnect API server...")

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "devconnect-api")
		if err != nil {
			appLogger.Fatal("Cannot init tracer", err)
		}
		defer tp.Shutdown(context.Background())
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("Cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userDir := persistence.NewPostgresUserDirectory(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	postRepo := persistence.NewPostgresPostRepo(dbPool, appLogger)
	profileCache := persistence.NewRedisProfileCache(redisClient)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use Cases
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, userDir, profileCache, kafkaClient, appLogger)
	postUseCase := postUC.NewPostUseCase(postRepo, kafkaClient, appLogger)

	// HTTP Handlers
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase, appLogger)
	postHandler := httpAdapter.NewPostHandler(postUseCase, appLogger)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)

	router := gin.Default()
	router.Use(httpAdapter.ErrorMiddleware(appLogger))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		profileRoutes := api.Group("/profile")
		{
			profileRoutes.GET("/handle/:handle", profileHandler.GetProfileByHandle)
			profileRoutes.GET("/user/:userId", profileHandler.GetProfileByUser)
			profileRoutes.GET("/users", profileHandler.ListProfiles)

			private := profileRoutes.Group("")
			private.Use(authMiddleware)
			{
				private.GET("", profileHandler.GetMyProfile)
				private.POST("", profileHandler.UpsertProfile)
				private.DELETE("", profileHandler.DeleteProfile)
				private.POST("/experience", profileHandler.AddExperience)
				private.DELETE("/experience/:expId", profileHandler.DeleteExperience)
				private.POST("/education", profileHandler.AddEducation)
				private.DELETE("/education/:eduId", profileHandler.DeleteEducation)
			}
		}

		postRoutes := api.Group("/posts")
		postRoutes.Use(authMiddleware)
		{
			postRoutes.GET("", postHandler.ListPosts)
			postRoutes.GET("/:id", postHandler.GetPost)
			postRoutes.POST("", postHandler.CreatePost)
			postRoutes.DELETE("/:id", postHandler.DeletePost)
			postRoutes.POST("/like/:id", postHandler.LikePost)
			postRoutes.POST("/unlike/:id", postHandler.UnlikePost)
			postRoutes.POST("/comment/:id", postHandler.AddComment)
			postRoutes.DELETE("/comment/:id", postHandler.DeleteComment)
		}
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
