package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	awspkg "github.com/pawsitivecheck/backend/pkg/aws"
	"github.com/pawsitivecheck/backend/services/catalog-service/cache"
	"github.com/pawsitivecheck/backend/services/catalog-service/controllers"
	"github.com/pawsitivecheck/backend/services/catalog-service/database"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"github.com/pawsitivecheck/backend/services/catalog-service/providers"
	"github.com/pawsitivecheck/backend/services/catalog-service/repository"
	"github.com/pawsitivecheck/backend/services/catalog-service/routes"
	servicepkg "github.com/pawsitivecheck/backend/services/catalog-service/services"
	"github.com/pawsitivecheck/backend/services/common/logger"
	"github.com/pawsitivecheck/backend/services/common/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl := logger.Initialize(cfg.Env)
	defer zl.Sync() //nolint:errcheck

	if err := database.Connect(cfg.DB, zl); err != nil {
		zl.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close() //nolint:errcheck

	if err := controllers.RegisterValidators(); err != nil {
		zl.Fatal("Failed to register validators", zap.Error(err))
	}

	// AWS clients
	awsCfg, awsErr := awspkg.LoadAWSConfig(context.Background())
	var (
		snsClient awspkg.SNSPublisher
		metrics   *awspkg.MetricsClient
		presigner awspkg.Presigner
	)
	if awsErr != nil {
		zl.Warn("AWS config unavailable, SNS, metrics and uploads disabled", zap.Error(awsErr))
	} else {
		snsClient = awspkg.NewSNSClient(awsCfg)
		metrics = awspkg.NewMetricsClient(awsCfg)
		if cfg.UploadBucket != "" {
			presigner = awspkg.NewS3Presigner(awsCfg, cfg.UploadBucket)
		}
	}

	// Redis is optional; lookups fall through to Postgres without it.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zl.Fatal("Invalid REDIS_URL", zap.Error(err))
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close() //nolint:errcheck
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			zl.Warn("Redis unreachable, continuing without product cache hits", zap.Error(err))
		}
		cancel()
	}

	// Repositories
	productRepo := repository.NewGormProductRepository(database.DB)
	reviewRepo := repository.NewGormReviewRepository(database.DB)
	recallRepo := repository.NewGormRecallRepository(database.DB)
	blacklistRepo := repository.NewGormBlacklistRepository(database.DB)
	scanRepo := repository.NewGormScanRepository(database.DB)

	// Caches and external collaborators
	productCache := cache.NewProductCache(redisClient, cfg.CacheTTL, zl)
	blacklistCache := cache.NewBlacklistCache(cfg.BlacklistTTL, func(ctx context.Context) ([]models.BlacklistEntry, error) {
		return blacklistRepo.FindAll(ctx, true)
	})
	search := providers.NewOpenPetFoodFactsProvider(cfg.OpenPetFoodFactsURL, cfg.SearchCacheTTL)
	var recognizer providers.ImageRecognizer = providers.NoopImageRecognizer{}
	if cfg.ImageRecognizerURL != "" {
		recognizer = providers.NewHTTPImageRecognizer(cfg.ImageRecognizerURL, cfg.ImageRecognizerKey)
	}
	events := servicepkg.NewEventPublisher(snsClient, cfg.EventTopicARN, zl)

	// Services
	analysisService := servicepkg.NewAnalysisService(productRepo, recallRepo, reviewRepo, blacklistCache, productCache, events, metrics, cfg.Safety, zl)
	productService := servicepkg.NewProductService(productRepo, productCache, analysisService, search, recognizer, zl)
	scanService := servicepkg.NewScanService(productRepo, scanRepo, productCache, analysisService, search, recognizer, metrics, cfg.Safety, zl)
	reviewService := servicepkg.NewReviewService(reviewRepo, productRepo, zl)
	recallService := servicepkg.NewRecallService(recallRepo, productRepo, productCache, events, metrics, zl)
	blacklistService := servicepkg.NewBlacklistService(blacklistRepo, blacklistCache, productCache, zl)
	uploadService := servicepkg.NewUploadService(presigner, zl)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(middleware.RequestLogger(zl))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MetricsMiddleware(metrics, "catalog-service"))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "catalog-service"})
	})

	routes.RegisterCatalogRoutes(r, routes.Controllers{
		Products:  controllers.NewProductController(productService),
		Reviews:   controllers.NewReviewController(reviewService),
		Recalls:   controllers.NewRecallController(recallService),
		Blacklist: controllers.NewBlacklistController(blacklistService),
		Scans:     controllers.NewScanController(scanService),
		Uploads:   controllers.NewUploadController(uploadService),
	}, cfg.ScansPerMinute)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("Server failed", zap.Error(err))
		}
	}()

	zl.Info("Catalog service started", zap.String("port", cfg.Port))
	<-quit
	zl.Info("Shutting down catalog service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Fatal("Server forced to shutdown", zap.Error(err))
	}
	zl.Info("Server exited cleanly")
}
