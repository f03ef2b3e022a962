package app

import (
	"context"
	"errors"
	"fmt"

	"gymdesk_backend/database"
	"gymdesk_backend/internal/config"
	"gymdesk_backend/internal/email"
	"gymdesk_backend/internal/handlers"
	"gymdesk_backend/internal/identity"
	"gymdesk_backend/internal/logger"
	"gymdesk_backend/internal/middleware"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/repositories"
	"gymdesk_backend/internal/routes"
	"gymdesk_backend/internal/services"
	"gymdesk_backend/internal/validator"
	"gymdesk_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.Connect(cfg.Database.DSN)
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

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstTenant(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first tenant", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg, gormDB)
	appHandlers := initializeHandlers(serviceContainer)

	startWorkers(cfg, gormDB)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers, cfg.JWT.Secret)
	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	tenantRepo := repositories.NewTenantRepository(gormDB)
	profileRepo := repositories.NewProfileRepository(gormDB)
	memberRepo := repositories.NewMemberRepository(gormDB)
	trainerRepo := repositories.NewTrainerRepository(gormDB)
	exerciseRepo := repositories.NewExerciseRepository(gormDB)
	subscriptionRepo := repositories.NewSubscriptionRepository(gormDB)
	provisionRepo := repositories.NewProvisionRepository(gormDB)

	return services.NewServiceContainer(
		tenantRepo,
		profileRepo,
		memberRepo,
		trainerRepo,
		exerciseRepo,
		subscriptionRepo,
		provisionRepo,
		newIdentityProvider(cfg),
		newEmailProvider(cfg),
	)
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator, container.Tenant)

	return &handlers.AppHandlers{
		MemberHandler:       handlers.NewMemberHandler(baseHandler, container.Member),
		TrainerHandler:      handlers.NewTrainerHandler(baseHandler, container.Trainer),
		ExerciseHandler:     handlers.NewExerciseHandler(baseHandler, container.Exercise),
		SubscriptionHandler: handlers.NewSubscriptionHandler(baseHandler, container.Subscription),
		ProvisionHandler:    handlers.NewProvisionHandler(baseHandler, container.Provision),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

func startWorkers(cfg *config.Config, gormDB *gorm.DB) {
	worker := workers.NewSubscriptionWorker(
		repositories.NewSubscriptionRepository(gormDB),
		repositories.NewTenantRepository(gormDB),
		newEmailProvider(cfg),
		cfg.Workers.ReminderDays,
	)
	worker.Start(context.Background())
}

// newIdentityProvider selects the external identity backend. "dev" keeps the
// whole system runnable without a provider account.
func newIdentityProvider(cfg *config.Config) identity.Provider {
	switch cfg.Identity.Provider {
	case "http":
		logger.Info("Using HTTP identity provider", "base_url", cfg.Identity.BaseURL)
		return identity.NewHTTPProvider(cfg.Identity.BaseURL, cfg.Identity.APIKey)
	default:
		logger.Warn("Using in-memory dev identity provider; identities do not persist")
		return identity.NewDevProvider()
	}
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured; outgoing mail is logged, not sent")
		return &LogEmailProvider{}
	}
	return email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}, email.NewTemplateManager())
}

// seedFirstTenant bootstraps an empty database with one tenant and one
// super_admin profile bound to a pre-existing identity. Without it there is
// no profile to resolve the very first authenticated request against.
func seedFirstTenant(db *gorm.DB, cfg *config.Config) error {
	if cfg.Seed.TenantName == "" || cfg.Seed.AdminEmail == "" || cfg.Seed.AdminIdentityID == "" {
		logger.Warn("Seed config incomplete; skipping first-tenant seeding")
		return nil
	}

	var count int64
	if err := db.Model(&models.Tenant{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count tenants: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var existing models.Profile
	err := tx.Where("identity_id = ?", cfg.Seed.AdminIdentityID).First(&existing).Error
	if err == nil {
		tx.Rollback()
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin profile: %w", err)
	}

	tenant := &models.Tenant{
		Name:     cfg.Seed.TenantName,
		IsActive: true,
	}
	if err := tx.Create(tenant).Error; err != nil {
		return fmt.Errorf("failed to create first tenant: %w", err)
	}

	admin := &models.Profile{
		TenantID:   tenant.ID,
		IdentityID: cfg.Seed.AdminIdentityID,
		Email:      cfg.Seed.AdminEmail,
		FullName:   "Administrator",
		Role:       models.UserRoleSuperAdmin,
		IsActive:   true,
	}
	if err := tx.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin profile: %w", err)
	}

	logger.Info("Seeded first tenant and admin profile",
		"tenant", tenant.Name, "admin_email", admin.Email)

	return tx.Commit().Error
}
