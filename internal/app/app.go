package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"growcoach_backend/internal/auth"
	"growcoach_backend/internal/config"
	"growcoach_backend/internal/cooldown"
	"growcoach_backend/internal/email"
	"growcoach_backend/internal/handlers"
	"growcoach_backend/internal/imageprocessor"
	"growcoach_backend/internal/logger"
	"growcoach_backend/internal/middleware"
	"growcoach_backend/internal/models"
	"growcoach_backend/internal/repositories"
	"growcoach_backend/internal/routes"
	"growcoach_backend/internal/services"
	"growcoach_backend/internal/storage"
	"growcoach_backend/internal/validator"
	"growcoach_backend/internal/workers"
)

func Run() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}
	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter, cleanup := SetupRouter(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cleanup.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.User{},
		&models.CandidateProfile{},
		&models.CompanyProfile{},
		&models.Job{},
		&models.JobApplication{},
		&models.Notification{},
		&models.PasswordResetCode{},
		&models.BlacklistedToken{},
	)
}

// SetupRouter builds the full dependency graph and returns the router
// plus the background cleanup worker.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *workers.CleanupWorker) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	var emailProvider email.Provider
	if cfg.Email.SMTPHost != "" {
		emailProvider, err = email.NewSMTPProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			logger.Fatal("Failed to initialize SMTP provider", "error", err)
		}
	} else {
		logger.Warn("SMTP not configured, emails will be logged only")
		emailProvider = email.NoopProvider{}
	}

	var cooldownStore cooldown.Store
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cooldownStore = cooldown.NewRedisStore(client, "growcoach")
		logger.Info("Cooldown store backed by Redis", "addr", cfg.Redis.Addr)
	} else {
		cooldownStore = cooldown.NewMemoryStore()
		logger.Info("Cooldown store in memory")
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	// Repositories
	userRepo := repositories.NewUserRepository(gormDB)
	candidateRepo := repositories.NewCandidateProfileRepository(gormDB)
	companyRepo := repositories.NewCompanyProfileRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	resetRepo := repositories.NewPasswordResetRepository(gormDB)
	blacklistRepo := repositories.NewTokenBlacklistRepository(gormDB)

	// Services
	processor := imageprocessor.NewProcessor(cfg.Upload.ImageQuality)
	uploadService := services.NewUploadService(storageInstance, processor, candidateRepo, companyRepo, cfg.Upload.MaxSize)

	container := &services.ServiceContainer{
		AuthService: services.NewAuthService(
			userRepo, candidateRepo, companyRepo, notificationRepo, blacklistRepo, tokens, emailProvider),
		PasswordResetService: services.NewPasswordResetService(
			userRepo, resetRepo, emailProvider, cooldownStore, cfg.ResetCodeTTL(), cfg.ResetCooldown()),
		CandidateService:    services.NewCandidateService(userRepo, candidateRepo, jobRepo, uploadService),
		CompanyService:      services.NewCompanyService(userRepo, companyRepo, notificationRepo, uploadService),
		JobService:          services.NewJobService(jobRepo, userRepo, candidateRepo, companyRepo, uploadService),
		AdminService:        services.NewAdminService(userRepo, candidateRepo, companyRepo, notificationRepo, uploadService, emailProvider),
		NotificationService: services.NewNotificationService(notificationRepo),
		UploadService:       uploadService,
	}

	// Handlers
	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		AuthHandler:      handlers.NewAuthHandler(base, container.AuthService, container.PasswordResetService),
		CandidateHandler: handlers.NewCandidateHandler(base, container.CandidateService, container.JobService, container.UploadService),
		CompanyHandler:   handlers.NewCompanyHandler(base, container.CompanyService, container.JobService, container.UploadService),
		JobHandler:       handlers.NewJobHandler(base, container.JobService),
		AdminHandler:     handlers.NewAdminHandler(base, container.AdminService, container.NotificationService, container.CandidateService, container.UploadService),
		FileHandler:      handlers.NewFileHandler(base, container.UploadService),
	}

	authMW := middleware.NewAuthMiddleware(tokens, blacklistRepo)
	authLimiter := middleware.NewRateLimiter(cfg.RateLimit.AuthPerMinute)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	ginRouter.Use(middleware.CORSMiddleware())

	routes.RegisterRoutes(ginRouter, appHandlers, authMW, authLimiter)

	cleanup := workers.NewCleanupWorker(resetRepo, blacklistRepo, 10*time.Minute)
	return ginRouter, cleanup
}

// seedFirstAdmin creates the configured admin account if no admin
// exists yet.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        cfg.FirstAdminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	logger.Info("Seeded first admin account", "email", cfg.FirstAdminEmail)
	return nil
}
