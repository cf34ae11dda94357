package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/subber-app/subber/internal/app/controllers"
	appMigrations "github.com/subber-app/subber/internal/app/migrations"
	appRepos "github.com/subber-app/subber/internal/app/repositories"
	appRoutes "github.com/subber-app/subber/internal/app/routes"
	appServices "github.com/subber-app/subber/internal/app/services"
	"github.com/subber-app/subber/internal/config"
	"github.com/subber-app/subber/internal/db"
	appMiddleware "github.com/subber-app/subber/internal/middleware"
	"github.com/subber-app/subber/internal/pkg/logger"
	"github.com/subber-app/subber/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	IdentityService  appServices.IdentityService
	UserService      appServices.UserService
	CommunityService appServices.CommunityService
	AnalyticsService appServices.AnalyticsService
	PostService      appServices.PostService
	MessageService   appServices.MessageService
	PortfolioService appServices.PortfolioService

	AuthController      *appControllers.AuthController
	UserController      *appControllers.UserController
	CommunityController *appControllers.CommunityController
	PostController      *appControllers.PostController
	MessageController   *appControllers.MessageController
	PortfolioController *appControllers.PortfolioController

	WalletMiddleware *appMiddleware.WalletMiddleware
	Repos            *appRepos.Repositories
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the starter communities.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.IdentityService = appServices.NewIdentityService(deps.Repos.UserRepository, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, deps.Repos.FollowRepository, lgr)
	deps.CommunityService = appServices.NewCommunityService(database, deps.Repos.CommunityRepository, deps.Repos.MemberRepository, lgr)
	deps.AnalyticsService = appServices.NewAnalyticsService(deps.Repos.AnalyticsRepository, lgr)
	deps.PostService = appServices.NewPostService(
		deps.Repos.PostRepository,
		deps.Repos.CommentRepository,
		deps.Repos.CommunityRepository,
		deps.Repos.MemberRepository,
		deps.Repos.UserRepository,
		lgr,
	)
	deps.MessageService = appServices.NewMessageService(deps.Repos.ConversationRepository, deps.Repos.UserRepository, lgr)
	deps.PortfolioService = appServices.NewPortfolioService(deps.Repos.PortfolioRepository, deps.Repos.UserRepository, lgr)

	deps.WalletMiddleware = appMiddleware.NewWalletMiddleware(deps.IdentityService)

	deps.AuthController = appControllers.NewAuthController(deps.IdentityService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.CommunityController = appControllers.NewCommunityController(deps.CommunityService, deps.AnalyticsService)
	deps.PostController = appControllers.NewPostController(deps.PostService)
	deps.MessageController = appControllers.NewMessageController(deps.MessageService)
	deps.PortfolioController = appControllers.NewPortfolioController(deps.PortfolioService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.CommunityController,
		deps.PostController,
		deps.MessageController,
		deps.PortfolioController,
		deps.WalletMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
