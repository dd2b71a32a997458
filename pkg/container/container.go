package container

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/config"
	infraCache "blog-backend/internal/infrastructure/cache"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"

	// Blog domain imports
	blogHandler "blog-backend/internal/domains/blog/handler"
	blogRepo "blog-backend/internal/domains/blog/repository"
	blogService "blog-backend/internal/domains/blog/service"

	// User domain imports
	"blog-backend/internal/domains/user"
	userHandler "blog-backend/internal/domains/user/handler"
	userRepo "blog-backend/internal/domains/user/repository"
	userService "blog-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Dùng chung cho cmd/api và cmd/blogctl
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *infraCache.RedisClient // nil khi REDIS_ENABLED=false hoặc connect lỗi
	Cache      cache.Cache             // nil = tắt cache
	JWTManager *jwt.Manager
	Registry   *prometheus.Registry
	Metrics    *middleware.HTTPMetrics

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	BlogRepo    blogRepo.BlogRepository
	AuthorRepo  blogRepo.AuthorRepository
	CommentRepo blogRepo.CommentRepository
	UserRepo    user.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	BlogService  blogService.ServiceInterface
	AdminService blogService.AdminServiceInterface
	UserService  user.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	BlogHandler  *blogHandler.BlogHandler
	AdminHandler *blogHandler.AdminHandler
	UserHandler  *userHandler.UserHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Config
// 2. Infrastructure (DB, Cache, JWT, Metrics)
// 3. Repositories
// 4. Services
// 5. Handlers
func NewContainer() (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Info().Msg("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("✅ Config loaded", map[string]interface{}{"env": cfg.App.Environment})

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Info().Msg("🗄️  Connecting to PostgreSQL...")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db
	log.Info().Msg("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	c.initCache(ctx)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL())

	// ========================================
	// STEP 4: METRICS
	// ========================================
	c.initMetrics()

	// ========================================
	// STEP 5: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	log.Info().Msg("📦 Initializing repositories...")
	c.initRepositories()

	log.Info().Msg("⚙️  Initializing services...")
	c.initServices()

	log.Info().Msg("🎯 Initializing handlers...")
	c.initHandlers()

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

// initCache - Redis khi bật và connect được, lỗi thì fallback sang in-memory cache
func (c *Container) initCache(ctx context.Context) {
	if !c.Config.Redis.Enabled {
		logger.Warn("⚠️  Redis disabled, list/detail caching is off", nil)
		return
	}

	log.Info().Msg("🔴 Connecting to Redis...")
	rc := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		// Redis failure không critical
		logger.Warn("⚠️  Redis connection failed (non-critical), using in-memory cache", map[string]interface{}{
			"error": err.Error(),
		})
		_ = rc.Close()
		c.Cache = cache.NewMemoryCache()
		return
	}

	c.Redis = rc
	c.Cache = infraCache.NewRedisCache(rc.Client)
	log.Info().Msg("✅ Redis connected")
}

func (c *Container) initMetrics() {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.poolGauge("db_pool_total_conns", "Total connections in the PostgreSQL pool.", func(s *database.PoolStats) float64 {
			return float64(s.TotalConns)
		}),
		c.poolGauge("db_pool_acquired_conns", "Connections currently acquired from the PostgreSQL pool.", func(s *database.PoolStats) float64 {
			return float64(s.AcquiredConns)
		}),
	)
	c.Registry = reg
	c.Metrics = middleware.NewHTTPMetrics(reg)
	logger.Debug("📈 Prometheus registry ready")
}

func (c *Container) poolGauge(name, help string, read func(*database.PoolStats) float64) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{Namespace: "blog", Name: name, Help: help}, func() float64 {
		stats, err := c.DB.Stats()
		if err != nil {
			return 0
		}
		return read(stats)
	})
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.BlogRepo = blogRepo.NewPostgresBlogRepository(pool)
	c.AuthorRepo = blogRepo.NewPostgresAuthorRepository(pool)
	c.CommentRepo = blogRepo.NewPostgresCommentRepository(pool)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.BlogService = blogService.NewBlogService(
		c.BlogRepo,
		c.AuthorRepo,
		c.CommentRepo,
		c.Cache,
		blogService.Config{
			ListTTL:   c.Config.Cache.ListTTL,
			DetailTTL: c.Config.Cache.DetailTTL,
		},
	)

	c.AdminService = blogService.NewAdminService(
		c.BlogRepo,
		c.AuthorRepo,
		c.CommentRepo,
		c.Cache,
		time.Now,
	)

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Cache, 0)
}

func (c *Container) initHandlers() {
	c.BlogHandler = blogHandler.NewBlogHandler(c.BlogService, c.Config.App.Name)
	c.AdminHandler = blogHandler.NewAdminHandler(c.AdminService)
	c.UserHandler = userHandler.NewUserHandler(
		c.UserService,
		c.Config.App.LoginURL,
		c.Config.App.Environment == "production",
	)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.DB != nil {
		c.DB.Close()
		log.Info().Msg("✅ Database connections closed")
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("⚠️  Failed to close Redis", err)
		} else {
			log.Info().Msg("✅ Redis connections closed")
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
