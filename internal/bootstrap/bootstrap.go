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

	appControllers "github.com/cid2105/virtual-greek/internal/app/controllers"
	appMigrations "github.com/cid2105/virtual-greek/internal/app/migrations"
	appRepos "github.com/cid2105/virtual-greek/internal/app/repositories"
	appRoutes "github.com/cid2105/virtual-greek/internal/app/routes"
	appServices "github.com/cid2105/virtual-greek/internal/app/services"
	"github.com/cid2105/virtual-greek/internal/config"
	"github.com/cid2105/virtual-greek/internal/db"
	appMiddleware "github.com/cid2105/virtual-greek/internal/middleware"
	pkgAuth "github.com/cid2105/virtual-greek/internal/pkg/auth"
	"github.com/cid2105/virtual-greek/internal/pkg/filestorage"
	"github.com/cid2105/virtual-greek/internal/pkg/helpers"
	"github.com/cid2105/virtual-greek/internal/pkg/logger"
	"github.com/cid2105/virtual-greek/internal/pkg/profanity"
	"github.com/cid2105/virtual-greek/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        appServices.AuthService
	ProfileService     appServices.ProfileService
	ChapterService     appServices.ChapterService
	DiscussionService  appServices.DiscussionService
	MailboxService     appServices.MailboxService
	FeedService        appServices.FeedService
	GalleryService     appServices.GalleryService
	AuthController     *appControllers.AuthController
	ChapterController  *appControllers.ChapterController
	ProfileController  *appControllers.ProfileController
	TopicController    *appControllers.TopicController
	MailboxController  *appControllers.MailboxController
	FeedController     *appControllers.FeedController
	GalleryController  *appControllers.GalleryController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	Logger             zerolog.Logger
	FileStorage        *filestorage.LocalStorage
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

// SetupDatabase establishes the database connection and runs migrations.
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
	migrator := appMigrations.NewMigrator(dbPool, lgr)

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

	// The historical schema allowed exactly one chapter per university. The
	// constraint is applied as an index rather than baked into the table so a
	// deployment can relax it by configuration.
	if cfg.Directory.SingleChapterPerUniversity {
		_, err := dbPool.Exec(context.Background(),
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_chapters_single_per_university ON chapters (university_id)`)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to apply single-chapter constraint")
			return nil, fmt.Errorf("failed to apply single-chapter constraint: %w", err)
		}
	}

	// Create default data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	// File storage serves uploaded blobs under the static /uploads path.
	var err error
	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	filter := profanity.NewFilter(cfg.Content.BlockedWords)

	audienceService := appServices.NewAudienceService(deps.Repos.Profile, lgr)

	deps.ProfileService = appServices.NewProfileService(
		deps.Repos.Profile,
		deps.Repos.Chapter,
		deps.FileStorage,
		lgr,
	)
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.User,
		deps.Repos.Profile,
		deps.ProfileService,
		deps.JWTService,
		lgr,
	)
	deps.ChapterService = appServices.NewChapterService(
		deps.Repos.Chapter,
		deps.Repos.Organization,
		deps.Repos.Profile,
		deps.FileStorage,
		lgr,
	)
	deps.DiscussionService = appServices.NewDiscussionService(
		deps.Repos.Topic,
		deps.Repos.Reply,
		deps.Repos.Chapter,
		deps.Repos.Organization,
		audienceService,
		filter,
		database,
		lgr,
	)
	deps.MailboxService = appServices.NewMailboxService(
		deps.Repos.Conversation,
		deps.Repos.Profile,
		filter,
		database,
		lgr,
	)
	deps.FeedService = appServices.NewFeedService(
		deps.Repos.University,
		deps.Repos.Organization,
		deps.Repos.Chapter,
		deps.Repos.Announcement,
		filter,
		lgr,
	)
	deps.GalleryService = appServices.NewGalleryService(
		deps.Repos.Album,
		deps.Repos.Photo,
		deps.FileStorage,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.Profile)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.ChapterController = appControllers.NewChapterController(deps.ChapterService)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService)
	deps.TopicController = appControllers.NewTopicController(deps.DiscussionService)
	deps.MailboxController = appControllers.NewMailboxController(deps.MailboxService)
	deps.FeedController = appControllers.NewFeedController(deps.FeedService)
	deps.GalleryController = appControllers.NewGalleryController(deps.GalleryService)

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
		deps.ChapterController,
		deps.ProfileController,
		deps.TopicController,
		deps.MailboxController,
		deps.FeedController,
		deps.GalleryController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
