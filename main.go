package main

import (
	"log"
	"net/http"
	"os"

	"conduit-backend/config"
	"conduit-backend/handlers"
	"conduit-backend/helper"
	"conduit-backend/middleware"
	"conduit-backend/repositories"
	"conduit-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	db := config.InitDB()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	followRepo := repositories.NewFollowRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)

	// Initialize token codec and services
	tokenCodec := services.NewTokenCodec(config.JWTSecret, config.JWTExpiration)
	userService := services.NewUserService(userRepo, tokenCodec)
	profileService := services.NewProfileService(userRepo, followRepo)
	articleService := services.NewArticleService(articleRepo, userRepo, favoriteRepo, tagRepo)
	tagService := services.NewTagService(tagRepo)

	// Initialize handlers
	httpHelper := helper.NewHTTPHelper()
	userHandler := handlers.NewUserHandler(userService, httpHelper)
	profileHandler := handlers.NewProfileHandler(profileService, httpHelper)
	articleHandler := handlers.NewArticleHandler(articleService, httpHelper)
	tagHandler := handlers.NewTagHandler(tagService, httpHelper)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes; identity resolution runs on every request, routes that
	// need an authenticated user add the gate on top.
	api := router.Group("/api")
	api.Use(middleware.Identity(tokenCodec, userRepo))
	{
		users := api.Group("/users")
		{
			users.POST("", userHandler.Register)
			users.POST("/login", userHandler.Login)
		}

		user := api.Group("/user")
		user.Use(middleware.AuthRequired())
		{
			user.GET("", userHandler.GetCurrentUser)
			user.PUT("", userHandler.UpdateUser)
		}

		profiles := api.Group("/profiles")
		{
			profiles.GET("/:username", profileHandler.GetProfile)
			profiles.POST("/:username/follow", middleware.AuthRequired(), profileHandler.Follow)
			profiles.DELETE("/:username/follow", middleware.AuthRequired(), profileHandler.Unfollow)
		}

		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.ListArticles)
			articles.POST("", middleware.AuthRequired(), articleHandler.CreateArticle)
			articles.GET("/:slug", articleHandler.GetArticle)
			articles.PUT("/:slug", middleware.AuthRequired(), articleHandler.UpdateArticle)
			articles.DELETE("/:slug", middleware.AuthRequired(), articleHandler.DeleteArticle)
			articles.POST("/:slug/favorite", middleware.AuthRequired(), articleHandler.FavoriteArticle)
			articles.DELETE("/:slug/favorite", middleware.AuthRequired(), articleHandler.UnfavoriteArticle)
		}

		api.GET("/tags", tagHandler.GetTags)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
