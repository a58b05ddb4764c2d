package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf(".env not loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()
}

func setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())

	// Repositories are constructed once and handed to the services; nothing
	// below main reaches for a collection on its own.
	projectsRepo := repository.GetProjectsRepo(utils.MongoClient)
	bidsRepo := repository.GetBidsRepo(utils.MongoClient)
	followsRepo := repository.GetFollowsRepo(utils.MongoClient)
	usersRepo := repository.GetUsersRepo(utils.MongoClient)

	cfg := config.LoadDatabaseConfig()
	if err := repository.SetupIndexes(utils.MongoClient.Database(cfg.DatabaseName)); err != nil {
		log.Printf("index setup warning: %v", err)
	}

	var feedCache *services.FeedCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err := services.NewFeedCache(redisURL, utils.GetEnvAsDuration("FEED_CACHE_TTL", 30*time.Second))
		if err != nil {
			log.Printf("feed cache disabled: %v", err)
		} else {
			feedCache = cache
		}
	}

	projectsService := &usecase.ProjectsService{
		ProjectsRepo: projectsRepo,
		FollowsRepo:  followsRepo,
		UsersRepo:    usersRepo,
		FeedCache:    feedCache,
	}
	bidsService := &usecase.BidsService{
		BidsRepo:  bidsRepo,
		UsersRepo: usersRepo,
	}
	usersService := &usecase.UsersService{
		UsersRepo: usersRepo,
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/api/status", handler.StatusHandler)

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", func(c *gin.Context) {
				handler.RegisterHandler(c, usersService)
			})
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, usersService)
			})
		}

		public.GET("/feed/public", func(c *gin.Context) {
			handler.PublicFeedHandler(c, projectsService)
		})

		// Readable anonymously, but ownership tagging needs the visitor
		// when a token is present.
		view := public.Group("/")
		view.Use(middleware.OptionalAuthMiddleware())
		{
			view.POST("/search", func(c *gin.Context) {
				handler.SearchProjectsHandler(c, projectsService)
			})
			view.GET("/projects/:id", func(c *gin.Context) {
				handler.ViewSingleProjectHandler(c, projectsService)
			})
			view.GET("/profile/:id/projects", func(c *gin.Context) {
				handler.ProjectsByAuthorHandler(c, projectsService)
			})
			view.GET("/profile/:id/projects/count", func(c *gin.Context) {
				handler.ProjectCountByAuthorHandler(c, projectsService)
			})
			view.POST("/bids/view", func(c *gin.Context) {
				handler.ViewSingleBidHandler(c, bidsService)
			})
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/feed", func(c *gin.Context) {
			handler.HomeFeedHandler(c, projectsService)
		})

		projects := protected.Group("/projects")
		{
			projects.POST("/", func(c *gin.Context) {
				handler.CreateProjectHandler(c, projectsService)
			})
			projects.POST("/:id/edit", func(c *gin.Context) {
				handler.UpdateProjectHandler(c, projectsService)
			})
			projects.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteProjectHandler(c, projectsService)
			})
		}

		bids := protected.Group("/bids")
		{
			bids.POST("/", func(c *gin.Context) {
				handler.CreateBidHandler(c, bidsService)
			})
			bids.POST("/edit", func(c *gin.Context) {
				handler.EditBidHandler(c, bidsService)
			})
			bids.DELETE("/", func(c *gin.Context) {
				handler.DeleteBidHandler(c, bidsService)
			})
		}

		follow := protected.Group("/follow")
		{
			follow.POST("/:id", func(c *gin.Context) {
				handler.AddFollowHandler(c, followsRepo)
			})
			follow.DELETE("/:id", func(c *gin.Context) {
				handler.RemoveFollowHandler(c, followsRepo)
			})
		}
	}

	return router
}

func main() {
	router := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
