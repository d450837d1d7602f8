package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/huyndo/acadmin/internal/app/controllers"
	"github.com/huyndo/acadmin/internal/app/migrations"
	"github.com/huyndo/acadmin/internal/app/repositories"
	"github.com/huyndo/acadmin/internal/app/routes"
	"github.com/huyndo/acadmin/internal/app/services"
	"github.com/huyndo/acadmin/internal/config"
	"github.com/huyndo/acadmin/internal/db"
	"github.com/huyndo/acadmin/internal/middleware"
	"github.com/huyndo/acadmin/internal/pkg/auth"
	"github.com/huyndo/acadmin/internal/pkg/cache"
	"github.com/huyndo/acadmin/internal/pkg/helpers"
	"github.com/huyndo/acadmin/internal/pkg/logger"
	"github.com/huyndo/acadmin/internal/seed"
)

// Dependencies holds the wired application graph.
type Dependencies struct {
	Repos       *repositories.Container
	Services    *services.Container
	Controllers *controllers.Container
	JWTService  *auth.JWTService
	Cache       cache.Store
}

// LoadConfigAndSetupLogger loads configuration and configures the logger.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	logger.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("logFormat", cfg.Logging.Format).
		Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase connects to postgres, applies migrations and seeds default
// data.
func SetupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	logger.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	logger.Info().Msg("Running database migrations...")
	migrator := migrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		logger.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		logger.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	logger.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg.App.AdminRole); err != nil {
		logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// SetupCacheStore picks the cache backend: redis when enabled, otherwise
// the in-process store.
func SetupCacheStore(cfg *config.Config) cache.Store {
	if !cfg.Redis.Enabled {
		logger.Info().Msg("Redis disabled, using in-memory cache store")
		return cache.NewMemory()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("Redis ping failed, falling back to in-memory cache store")
		return cache.NewMemory()
	}

	logger.Info().Str("addr", cfg.GetRedisAddr()).Msg("Redis cache store connected")
	return cache.NewRedis(client)
}

// BuildDependencies wires repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Cache = SetupCacheStore(cfg)

	deps.Repos = repositories.NewContainer(repositories.Deps{
		Q:               dbPool,
		Cache:           deps.Cache,
		DefaultPageSize: cfg.App.DefaultPageSize,
		TTLFor:          cfg.App.CacheTTLFor,
	})

	deps.JWTService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 360*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Services = services.NewContainer(deps.Repos, deps.JWTService, cfg.App)
	deps.Controllers = controllers.NewContainer(deps.Services, cfg.App)

	return deps, nil
}

// SetupRouter configures the gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	authMW := middleware.JWTAuth(deps.JWTService, deps.Repos.Users)
	routes.SetupRouter(router, deps.Controllers, cfg.App, authMW)

	return router
}
