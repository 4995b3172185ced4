package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/noracond/noracond-backend/internal/config"
	"github.com/noracond/noracond-backend/internal/handler"
	"github.com/noracond/noracond-backend/internal/middleware"
	"github.com/noracond/noracond-backend/internal/migration"
	"github.com/noracond/noracond-backend/internal/repository"
	"github.com/noracond/noracond-backend/internal/service"
	pkgcache "github.com/noracond/noracond-backend/pkg/cache"
	"github.com/noracond/noracond-backend/pkg/jwt"
	pkglogger "github.com/noracond/noracond-backend/pkg/logger"
	pkgredis "github.com/noracond/noracond-backend/pkg/redis"
	pkgstorage "github.com/noracond/noracond-backend/pkg/storage"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

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

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.Init(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// PostgreSQL
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to PostgreSQL")

	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		middleware.SetDBConnectionsActive(float64(sqlDB.Stats().OpenConnections))
	}

	// Redis (optional: the cache service degrades to pass-through without it)
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Info("Warning: Failed to connect to Redis: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}
	cacheService := pkgcache.NewService(redisClient)

	// Document storage backend
	store, err := initStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to init storage: %v", err)
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresMinutes)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	processRepo := repository.NewProcessRepository(db)
	entryRepo := repository.NewFinancialEntryRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, jwtManager)
	clientSvc := service.NewClientService(clientRepo)
	processSvc := service.NewProcessService(processRepo, clientRepo, userRepo)
	financialSvc := service.NewFinancialService(entryRepo, processRepo)
	documentSvc := service.NewDocumentService(documentRepo, processRepo, store, int64(cfg.Upload.MaxSizeMB)*1024*1024)
	dashboardSvc := service.NewDashboardService(clientRepo, processRepo, entryRepo, cacheService)
	chatSvc := service.NewChatService(chatRepo, userRepo, cacheService)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	clientHandler := handler.NewClientHandler(clientSvc)
	processHandler := handler.NewProcessHandler(processSvc)
	financialHandler := handler.NewFinancialHandler(financialSvc)
	documentHandler := handler.NewDocumentHandler(documentSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	chatHandler := handler.NewChatHandler(chatSvc)

	if env != "local" && env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS
	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:5173"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           86400,
	}))

	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "noracond-backend",
			"time":    time.Now().Unix(),
		})
	})

	// Public routes
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Authenticated routes
	api := router.Group("/api", middleware.JWTAuth(jwtManager))
	{
		api.GET("/auth/profile", authHandler.GetProfile)

		clients := api.Group("/clients")
		{
			clients.POST("", clientHandler.Create)
			clients.GET("", clientHandler.List)
			clients.GET("/:id", clientHandler.GetByID)
			clients.PUT("/:id", clientHandler.Update)
			clients.DELETE("/:id", clientHandler.Delete)
		}

		processes := api.Group("/processes")
		{
			processes.POST("", processHandler.Create)
			processes.GET("", processHandler.List)
			processes.GET("/mine", processHandler.ListMine)
			processes.GET("/client/:clientId", processHandler.ListByClient)
			processes.GET("/user/:userId", processHandler.ListByUser)
			processes.GET("/:id", processHandler.GetByID)
			processes.PUT("/:id", processHandler.Update)
			processes.DELETE("/:id", processHandler.Delete)
		}

		entries := api.Group("/financial-entries")
		{
			entries.POST("", financialHandler.Create)
			entries.GET("", financialHandler.List)
			entries.GET("/process/:processId", financialHandler.ListByProcess)
			entries.GET("/:id", financialHandler.GetByID)
			entries.PUT("/:id", financialHandler.Update)
			entries.POST("/:id/pay", financialHandler.MarkAsPaid)
			entries.DELETE("/:id", financialHandler.Delete)
		}

		documents := api.Group("/documents")
		{
			documents.POST("/processes/:processId", documentHandler.Upload)
			documents.GET("/processes/:processId", documentHandler.ListByProcess)
			documents.GET("/:id/download", documentHandler.Download)
			documents.DELETE("/:id", documentHandler.Delete)
		}

		api.GET("/dashboard/stats", dashboardHandler.GetStats)

		chat := api.Group("/chat")
		{
			chat.POST("/send", chatHandler.SendMessage)
			chat.GET("/contacts", chatHandler.GetContacts)
			chat.GET("/conversation/:otherUserId", chatHandler.GetConversation)
			chat.GET("/conversation/:otherUserId/new", chatHandler.GetNewMessages)
			chat.POST("/conversation/:otherUserId/mark-read", chatHandler.MarkConversationRead)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	pkglogger.Info("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func initStorage(cfg *config.Config) (pkgstorage.Store, error) {
	if cfg.Storage.Driver == "s3" {
		return pkgstorage.NewS3Store(pkgstorage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			BasePath:        cfg.Storage.BasePath,
			ForcePathStyle:  cfg.Storage.ForcePathStyle,
		})
	}
	return pkgstorage.NewLocalStore(cfg.Storage.UploadPath)
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
