package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"store-api/cache"
	"store-api/controllers"
	"store-api/database"
	"store-api/logger"
	"store-api/middleware"
	"store-api/repository"
	"store-api/routes"
	"store-api/services"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.Initialize(cfg.Env)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if err := database.Connect(cfg.MongoURL, cfg.MongoDB); err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
		}
	}

	// --- Dependency injection ---

	productRepo := repository.NewProductRepository(database.DB)
	orderRepo := repository.NewOrderRepository(database.DB)
	userRepo := repository.NewUserRepository(database.DB)
	branchRepo := repository.NewBranchRepository(database.DB)

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer bootCancel()
	if err := productRepo.EnsureIndexes(bootCtx); err != nil {
		log.Warn("Failed to ensure product indexes", zap.Error(err))
	}
	if err := orderRepo.EnsureIndexes(bootCtx); err != nil {
		log.Warn("Failed to ensure order indexes", zap.Error(err))
	}
	if err := userRepo.EnsureIndexes(bootCtx); err != nil {
		log.Warn("Failed to ensure user indexes", zap.Error(err))
	}

	catalogCache := cache.NewCatalogCache(redisClient, cfg.CacheTTL)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)

	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, userRepo, branchRepo, log)
	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userRepo, tokenService)
	branchService := services.NewBranchService(branchRepo)

	ctl := routes.Controllers{
		Auth:     controllers.NewAuthController(authService),
		Users:    controllers.NewUserController(userService),
		Products: controllers.NewProductController(productService, catalogCache),
		Orders:   controllers.NewOrderController(orderService),
		Branches: controllers.NewBranchController(branchService),
		Tokens:   tokenService,
	}

	// --- HTTP server ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	// Bound every request so a stuck Mongo call cannot pin a handler.
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.RegisterRoutes(r, ctl)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("Store API starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down Store API...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}
	if err := database.Close(); err != nil {
		log.Error("Failed to close MongoDB", zap.Error(err))
	}

	log.Info("Store API stopped gracefully")
}
