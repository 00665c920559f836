package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/talkwave/talkwave-backend/internal/config"
	"github.com/talkwave/talkwave-backend/internal/handler"
	"github.com/talkwave/talkwave-backend/internal/middleware"
	"github.com/talkwave/talkwave-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	topicHandler *handler.TopicHandler,
	submissionHandler *handler.SubmissionHandler,
	moderationHandler *handler.ModerationHandler,
	automodHandler *handler.AutomodHandler,
	modLogHandler *handler.ModLogHandler,
	mentionHandler *handler.MentionHandler,
	trendingHandler *handler.TrendingHandler,
	notificationHandler *handler.NotificationHandler,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
	cfg *config.Config,
) {
	api := router.Group("/api/v1")
	auth := middleware.JWTAuth(jwtManager)
	submitLimit := middleware.RateLimitPerUser(redisClient, cfg.RateLimit.SubmissionsPerMinute)

	// Topics and membership
	topics := api.Group("/topics")
	{
		topics.GET("/:id", topicHandler.Get)
		topics.POST("", auth, topicHandler.Create)
		topics.POST("/:id/join", auth, topicHandler.Join)
		topics.POST("/:id/leave", auth, topicHandler.Leave)
		topics.PUT("/:id/members/:userID/ban", auth, topicHandler.SetBanned)
		topics.PUT("/:id/members/:userID/role", auth, topicHandler.SetModerator)

		// Per-topic moderation surfaces
		topics.GET("/:id/automod-rules", auth, automodHandler.ListRules)
		topics.GET("/:id/modlog", modLogHandler.ListTopic) // public audit trail
		topics.GET("/:id/reports", auth, moderationHandler.ListReports)
	}

	// Content submission pipeline
	posts := api.Group("/posts")
	{
		posts.POST("", auth, submitLimit, submissionHandler.CreatePost)
		posts.POST("/:id/comments", auth, submitLimit, submissionHandler.CreateComment)
		posts.POST("/:id/vote", auth, submissionHandler.Vote)
		posts.POST("/:id/moderate", auth, moderationHandler.ModeratePost)
	}

	comments := api.Group("/comments")
	{
		comments.POST("/:id/moderate", auth, moderationHandler.ModerateComment)
	}

	// Automod rule management
	rules := api.Group("/automod-rules", auth)
	{
		rules.POST("", automodHandler.CreateRule)
		rules.GET("/:id", automodHandler.GetRule)
		rules.PATCH("/:id", automodHandler.UpdateRule)
		rules.DELETE("/:id", automodHandler.DeleteRule)
	}

	// Moderation log
	modlog := api.Group("/modlog")
	{
		modlog.GET("", auth, middleware.RequireSuperuser(), modLogHandler.ListGlobal)
		modlog.GET("/moderators/:id", modLogHandler.ListModerator)
	}

	// Trending listings (public)
	trending := api.Group("/trending")
	{
		trending.GET("/topics", trendingHandler.TrendingTopics)
		trending.GET("/posts", trendingHandler.TrendingPosts)
		trending.POST("/refresh", auth, middleware.RequireSuperuser(), trendingHandler.ForceRefresh)
	}

	// Mention inbox
	api.GET("/mentions", auth, mentionHandler.ListMine)

	// Notifications
	notifications := api.Group("/notifications", auth)
	{
		notifications.GET("", notificationHandler.GetList)
		notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
		notifications.POST("/:id/read", notificationHandler.MarkAsRead)
		notifications.POST("/read-all", notificationHandler.MarkAllAsRead)
		notifications.DELETE("/:id", notificationHandler.Delete)
	}
}
