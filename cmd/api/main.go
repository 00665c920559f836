package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/talkwave/talkwave-backend/internal/config"
	"github.com/talkwave/talkwave-backend/internal/domain"
	"github.com/talkwave/talkwave-backend/internal/handler"
	"github.com/talkwave/talkwave-backend/internal/middleware"
	"github.com/talkwave/talkwave-backend/internal/repository"
	"github.com/talkwave/talkwave-backend/internal/routes"
	"github.com/talkwave/talkwave-backend/internal/service"
	pkgcache "github.com/talkwave/talkwave-backend/pkg/cache"
	"github.com/talkwave/talkwave-backend/pkg/jwt"
	pkglogger "github.com/talkwave/talkwave-backend/pkg/logger"
	pkgredis "github.com/talkwave/talkwave-backend/pkg/redis"
)

// @title           TalkWave Backend API
// @version         1.0
// @description     TalkWave community platform - moderation pipeline backend
//
// @license.name    MIT
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	pkglogger.Init()
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL")

	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Warn("Failed to connect to Redis: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}

	var cacheService pkgcache.Service
	if redisClient != nil {
		cacheService = pkgcache.NewService(redisClient)
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn.Std(), cfg.JWT.RefreshIn.Std())

	// Repositories
	userRepo := repository.NewUserRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	memberRepo := repository.NewMembershipRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	automodRepo := repository.NewAutomodRepository(db)
	modLogRepo := repository.NewModLogRepository(db)
	mentionRepo := repository.NewMentionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reportRepo := repository.NewReportRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Services
	gate := service.NewGate(userRepo, topicRepo, memberRepo)
	mentionService := service.NewMentionService(userRepo, mentionRepo, notificationRepo)
	automodService := service.NewAutomodService(automodRepo, gate)
	moderationService := service.NewModerationService(postRepo, commentRepo, modLogRepo, reportRepo, notificationRepo, gate)
	modLogService := service.NewModLogService(modLogRepo, topicRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	trendingService := service.NewTrendingService(
		activityRepo, topicRepo, postRepo, cacheService,
		cfg.Trending.HalfLifeHours, cfg.Trending.WindowDays,
	)
	topicService := service.NewTopicService(topicRepo, memberRepo, modLogRepo, notificationRepo, gate, trendingService)
	submissionService := service.NewSubmissionService(
		postRepo, commentRepo, automodRepo, topicRepo, userRepo, notificationRepo,
		gate, mentionService, moderationService, trendingService,
	)

	// Handlers
	topicHandler := handler.NewTopicHandler(topicService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	moderationHandler := handler.NewModerationHandler(moderationService)
	automodHandler := handler.NewAutomodHandler(automodService)
	modLogHandler := handler.NewModLogHandler(modLogService)
	mentionHandler := handler.NewMentionHandler(mentionService)
	trendingHandler := handler.NewTrendingHandler(trendingService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     splitAndTrim(cfg.CORS.AllowOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())
	if redisClient != nil {
		router.Use(middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()))
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.Setup(
		router,
		topicHandler,
		submissionHandler,
		moderationHandler,
		automodHandler,
		modLogHandler,
		mentionHandler,
		trendingHandler,
		notificationHandler,
		jwtManager,
		redisClient,
		cfg,
	)

	// Periodic trending refresh keeps persisted scores and caches warm
	go func() {
		ticker := time.NewTicker(cfg.Trending.RefreshInterval.Std())
		defer ticker.Stop()
		for range ticker.C {
			if err := trendingService.ForceRefresh(context.Background()); err != nil {
				pkglogger.Warn("trending refresh failed: %v", err)
			}
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	pkglogger.Info("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Topic{},
		&domain.TopicMembership{},
		&domain.Post{},
		&domain.Comment{},
		&domain.AutomodRule{},
		&domain.ModLogEntry{},
		&domain.Mention{},
		&domain.Notification{},
		&domain.Report{},
		&domain.ActivityEvent{},
	); err != nil {
		return nil, err
	}
	return db, nil
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		out = []string{"http://localhost:5173"}
	}
	return out
}
