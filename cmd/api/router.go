package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"qna-backend/internal/shared/middleware"
	"qna-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupQuestionRoutes(v1, c)
		setupAnswerRoutes(v1, c)
		setupTagRoutes(v1, c)
		setupNotificationRoutes(v1, c)
		setupUploadRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
		auth.GET("/me", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.Me)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	{
		users.GET("/:id", c.UserHandler.GetProfile)
	}
}

func setupQuestionRoutes(v1 *gin.RouterGroup, c *container.Container) {
	// Reads are public; an optional token fills in the viewer's own votes.
	questions := v1.Group("/questions")
	questions.Use(middleware.OptionalAuthMiddleware(c.JWTManager))
	{
		questions.GET("", c.QuestionHandler.List)
		questions.GET("/:id", c.QuestionHandler.Get)
		questions.GET("/:id/answers", c.AnswerHandler.ListByQuestion)
	}

	authed := v1.Group("/questions")
	authed.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		authed.POST("", c.QuestionHandler.Create)
		authed.PUT("/:id", c.QuestionHandler.Update)
		authed.DELETE("/:id", c.QuestionHandler.Delete)
		authed.POST("/:id/vote", c.VoteHandler.VoteQuestion)
		authed.POST("/:id/answers", c.AnswerHandler.Create)
	}
}

func setupAnswerRoutes(v1 *gin.RouterGroup, c *container.Container) {
	answers := v1.Group("/answers")
	answers.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		answers.PUT("/:id", c.AnswerHandler.Update)
		answers.DELETE("/:id", c.AnswerHandler.Delete)
		answers.POST("/:id/accept", c.AnswerHandler.Accept)
		answers.POST("/:id/vote", c.VoteHandler.VoteAnswer)
	}
}

func setupTagRoutes(v1 *gin.RouterGroup, c *container.Container) {
	tags := v1.Group("/tags")
	{
		tags.GET("", c.TagHandler.List)
		tags.GET("/popular", c.TagHandler.Popular)
	}

	admin := v1.Group("/tags")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.POST("", c.TagHandler.Create)
		admin.PUT("/:id", c.TagHandler.Update)
		admin.DELETE("/:id", c.TagHandler.Delete)
	}
}

func setupNotificationRoutes(v1 *gin.RouterGroup, c *container.Container) {
	notifications := v1.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		notifications.GET("", c.NotificationHandler.List)
		notifications.GET("/unread-count", c.NotificationHandler.UnreadCount)
		notifications.POST("/:id/read", c.NotificationHandler.MarkRead)
		notifications.POST("/read-all", c.NotificationHandler.MarkAllRead)
	}
}

func setupUploadRoutes(v1 *gin.RouterGroup, c *container.Container) {
	uploads := v1.Group("/uploads")
	uploads.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		uploads.POST("/images", c.UploadHandler.UploadImage)
	}

	admin := v1.Group("/uploads")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.DELETE("/images/:filename", c.UploadHandler.DeleteImage)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error"
			health["status"] = "degraded"
		}

		redisStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = "error"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}
