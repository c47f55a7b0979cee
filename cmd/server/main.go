package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/devconnect/adapters/event"
	"github.com/khoahotran/devconnect/adapters/github"
	httpAdapter "github.com/khoahotran/devconnect/adapters/http"
	"github.com/khoahotran/devconnect/adapters/persistence"
	accountUC "github.com/khoahotran/devconnect/internal/application/usecase/account"
	authUC "github.com/khoahotran/devconnect/internal/application/usecase/auth"
	postUC "github.com/khoahotran/devconnect/internal/application/usecase/post"
	profileUC "github.com/khoahotran/devconnect/internal/application/usecase/profile"
	"github.com/khoahotran/devconnect/internal/config"
	"github.com/khoahotran/devconnect/pkg/auth"
	"github.com/khoahotran/devconnect/pkg/logger"
	"github.com/khoahotran/devconnect/pkg/tracing"
)

func main() {
	fmt.Println("Start DevConnect API Server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "devconnect-api")
		if err != nil {
			appLogger.Fatal("cannot initialize tracing", err)
		}
		defer tp.Shutdown(context.Background())
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	postRepo := persistence.NewPostgresPostRepo(dbPool)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	githubClient := github.NewClient(cfg, redisClient, appLogger)

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	currentUserUseCase := authUC.NewCurrentUserUseCase(userRepo)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo)
	createPostUseCase := postUC.NewCreatePostUseCase(postRepo, userRepo, kafkaClient, appLogger)
	listPostsUseCase := postUC.NewListPostsUseCase(postRepo, redisClient, appLogger)
	getPostUseCase := postUC.NewGetPostUseCase(postRepo)
	deletePostUseCase := postUC.NewDeletePostUseCase(postRepo, kafkaClient, appLogger)
	likePostUseCase := postUC.NewLikePostUseCase(postRepo)
	commentPostUseCase := postUC.NewCommentPostUseCase(postRepo, userRepo)
	deleteAccountUseCase := accountUC.NewDeleteAccountUseCase(postRepo, profileRepo, userRepo, kafkaClient, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase, currentUserUseCase)
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase, deleteAccountUseCase)
	postHandler := httpAdapter.NewPostHandler(
		createPostUseCase,
		listPostsUseCase,
		getPostUseCase,
		deletePostUseCase,
		likePostUseCase,
		commentPostUseCase,
	)
	githubHandler := httpAdapter.NewGithubHandler(githubClient)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)
	loginRateLimit := httpAdapter.RateLimit(redisClient, cfg.Auth.LoginRateMax, time.Minute)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpAdapter.RequestIDMiddleware())
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		authGroup := api.Group("/auth")
		{
			authGroup.POST("", loginRateLimit, authHandler.Login)
			authGroup.GET("", authMiddleware, authHandler.GetCurrentUser)
		}

		profileGroup := api.Group("/profile")
		{
			profileGroup.GET("", profileHandler.ListProfiles)
			profileGroup.GET("/user/:userId", profileHandler.GetProfileByUser)
			profileGroup.GET("/github/:username", githubHandler.GetRepos)

			profileGroup.GET("/me", authMiddleware, profileHandler.GetOwnProfile)
			profileGroup.POST("", authMiddleware, profileHandler.UpsertProfile)
			profileGroup.DELETE("", authMiddleware, profileHandler.DeleteAccount)
			profileGroup.PUT("/experience", authMiddleware, profileHandler.AddExperience)
			profileGroup.DELETE("/experience/:id", authMiddleware, profileHandler.RemoveExperience)
			profileGroup.PUT("/education", authMiddleware, profileHandler.AddEducation)
			profileGroup.DELETE("/education/:id", authMiddleware, profileHandler.RemoveEducation)
		}

		postsGroup := api.Group("/posts")
		postsGroup.Use(authMiddleware)
		{
			postsGroup.POST("", postHandler.CreatePost)
			postsGroup.GET("", postHandler.ListPosts)
			postsGroup.GET("/:id", postHandler.GetPost)
			postsGroup.DELETE("/:id", postHandler.DeletePost)
			postsGroup.PUT("/like/:id", postHandler.LikePost)
			postsGroup.PUT("/unlike/:id", postHandler.UnlikePost)
			postsGroup.PUT("/comments/:id", postHandler.AddComment)
			postsGroup.DELETE("/comments/:id/:commentId", postHandler.RemoveComment)
		}
	}

	log.Printf("Server running on port %s", cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
