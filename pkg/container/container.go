package container

import (
	"context"
	"fmt"
	"time"

	"bookcatalog-backend/internal/config"
	bookHandler "bookcatalog-backend/internal/domains/book/handler"
	bookRepo "bookcatalog-backend/internal/domains/book/repository"
	bookService "bookcatalog-backend/internal/domains/book/service"
	categoryHandler "bookcatalog-backend/internal/domains/category/handler"
	categoryRepo "bookcatalog-backend/internal/domains/category/repository"
	categoryService "bookcatalog-backend/internal/domains/category/service"
	userHandler "bookcatalog-backend/internal/domains/user/handler"
	userRepo "bookcatalog-backend/internal/domains/user/repository"
	userService "bookcatalog-backend/internal/domains/user/service"
	infraCache "bookcatalog-backend/internal/infrastructure/cache"
	"bookcatalog-backend/internal/infrastructure/database"
	"bookcatalog-backend/internal/infrastructure/queue"
	"bookcatalog-backend/internal/infrastructure/storage"
	"bookcatalog-backend/internal/shared/middleware"
	"bookcatalog-backend/pkg/cache"
	pkgdb "bookcatalog-backend/pkg/database"
	"bookcatalog-backend/pkg/jwt"
	"bookcatalog-backend/pkg/logger"
)

// Container chứa toàn bộ dependencies của application (api và worker dùng chung)
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache // noop nếu Redis không kết nối được
	redis       *infraCache.RedisCache
	Transactor  pkgdb.Transactor
	CoverStore  storage.CoverStore
	QueueClient *queue.Client
	JWTManager  *jwt.Manager
	RateLimiter *middleware.RateLimiter

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	BookRepo     bookRepo.Repository
	UserRepo     userRepo.Repository
	CategoryRepo categoryRepo.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	CoverService    *bookService.CoverService
	BookService     bookService.Service
	UserService     userService.Service
	CategoryService categoryService.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	BookHandler     *bookHandler.Handler
	UserHandler     *userHandler.UserHandler
	CategoryHandler *categoryHandler.CategoryHandler
}

// NewContainer tạo dependency graph theo thứ tự:
// config -> infrastructure -> repositories -> services -> handlers
func NewContainer(cfg *config.Config) (*Container, error) {
	logger.Info("🔧 Initializing DI Container...", nil)
	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig(cfg.Database)
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
	c.Transactor = pkgdb.NewPoolTransactor(db.Pool)

	// ========================================
	// STEP 2: CACHE
	// ========================================
	// Redis failure không critical, fallback sang noop cache
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		logger.Warn("⚠️  Redis connection failed (non-critical), cache disabled", map[string]interface{}{
			"error": err.Error(),
		})
		_ = redisCache.Close()
		c.Cache = cache.NewNoop()
	} else {
		c.redis = redisCache
		c.Cache = redisCache
	}

	// ========================================
	// STEP 3: COVER STORAGE + QUEUE
	// ========================================
	store, err := newCoverStore(ctx, cfg)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init cover storage: %w", err)
	}
	c.CoverStore = store
	c.QueueClient = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	c.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("🎉 DI Container initialized successfully", map[string]interface{}{
		"environment":   cfg.App.Environment,
		"cover_storage": cfg.Cover.Storage,
	})
	return c, nil
}

// newCoverStore chọn backend lưu ảnh bìa theo COVER_STORAGE
func newCoverStore(ctx context.Context, cfg *config.Config) (storage.CoverStore, error) {
	switch cfg.Cover.Storage {
	case "minio":
		return storage.NewMinIOStorage(ctx, cfg.MinIO)
	case "local", "":
		return storage.NewLocalStorage(cfg.Cover.Dir)
	default:
		return nil, fmt.Errorf("unknown cover storage %q", cfg.Cover.Storage)
	}
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.CoverService = bookService.NewCoverService(c.CoverStore, bookService.CoverConfig{
		BaseURL:        c.Config.App.BaseURL,
		RoutePrefix:    c.Config.Cover.RoutePrefix,
		ConnectTimeout: c.Config.Cover.ConnectTimeout,
		ReadTimeout:    c.Config.Cover.ReadTimeout,
		MaxBytes:       c.Config.Cover.MaxBytes,
	})

	c.BookService = bookService.NewBookService(
		c.BookRepo,
		c.Transactor,
		c.CoverService,
		c.QueueClient,
		c.Cache,
	)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.Cache)
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewHandler(c.BookService, c.CoverService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
}

// PingRedis kiểm tra Redis, trả về lỗi nếu đang chạy bằng noop cache
func (c *Container) PingRedis(ctx context.Context) error {
	if c.redis == nil {
		return fmt.Errorf("redis not connected")
	}
	return c.redis.Ping(ctx)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	logger.Info("🧹 Cleaning up container resources...", nil)

	if c.RateLimiter != nil {
		c.RateLimiter.Stop()
	}

	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Error("failed to close queue client", err)
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("failed to close database", err)
		}
	}

	logger.Info("✅ Container cleanup completed", nil)
}
