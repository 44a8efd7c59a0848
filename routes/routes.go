package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pulse-api/config"
	"pulse-api/controllers"
	"pulse-api/middleware"
	"pulse-api/services"
)

// SetupCORS returns a permissive CORS middleware for browser clients.
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, logger *zap.Logger, mailer *services.Mailer, trendingCache *services.TrendingCache) {
	// Controllers
	notificationController := controllers.NewNotificationController(db, logger)
	authController := controllers.NewAuthController(db, logger, cfg.JWTSecret, mailer)
	userController := controllers.NewUserController(db, logger, notificationController)
	postController := controllers.NewPostController(db, logger, notificationController)
	commentController := controllers.NewCommentController(db, logger, notificationController)
	searchController := controllers.NewSearchController(db, logger)
	trendingController := controllers.NewTrendingController(db, logger, trendingCache)
	reportController := controllers.NewReportController(db, logger)
	videoChatController := controllers.NewVideoChatController(db, logger)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public, rate limited)
	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(30, 10))
	{
		auth.POST("/register", authController.Register)
		auth.POST("/verify-code", authController.VerifyCode)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	// Public routes with optional viewer identity
	public := v1.Group("/")
	public.Use(middleware.OptionalAuthMiddleware(cfg.JWTSecret))
	{
		public.GET("/posts", postController.GetFeed)
		public.GET("/posts/:id", postController.GetPost)
		public.GET("/posts/:id/comments", commentController.GetComments)
		public.GET("/search", searchController.Search)
		public.GET("/trending", trendingController.GetTrending)
		public.GET("/users", userController.ListUsers)
		// "me" is resolved inside GetUser; gin cannot route /users/me next
		// to /users/:id.
		public.GET("/users/:id", userController.GetUser)
		public.GET("/users/:id/followers", userController.GetFollowers)
		public.GET("/users/:id/following", userController.GetFollowing)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.POST("/posts", postController.CreatePost)
		protected.DELETE("/posts/:id", postController.DeletePost)
		protected.POST("/posts/:id/like", postController.ToggleLike)
		protected.POST("/posts/:id/bookmark", postController.ToggleBookmark)
		protected.POST("/posts/:id/comments", commentController.CreateComment)
		protected.GET("/bookmarks", postController.GetBookmarkedPosts)

		protected.PUT("/users/me", userController.UpdateMe)
		protected.POST("/users/:id/follow", userController.ToggleFollow)

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", notificationController.GetNotifications)
			notifications.GET("/stats", notificationController.GetStats)
			notifications.PUT("/:id/read", notificationController.MarkAsRead)
			notifications.PUT("/read-all", notificationController.MarkAllAsRead)
		}

		protected.POST("/reports", reportController.CreateReport)

		videoChat := protected.Group("/video-chat")
		{
			videoChat.POST("/sessions", videoChatController.CreateSession)
			videoChat.GET("/sessions", videoChatController.GetSessions)
		}
	}
}
