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
	"github.com/pawsitivecheck/backend/services/common/logger"
	"github.com/pawsitivecheck/backend/services/common/middleware"
	"github.com/pawsitivecheck/backend/services/pet-service/consumer"
	"github.com/pawsitivecheck/backend/services/pet-service/controllers"
	"github.com/pawsitivecheck/backend/services/pet-service/database"
	"github.com/pawsitivecheck/backend/services/pet-service/repository"
	"github.com/pawsitivecheck/backend/services/pet-service/routes"
	servicepkg "github.com/pawsitivecheck/backend/services/pet-service/services"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl := logger.Initialize(cfg.Env)
	defer zl.Sync() //nolint:errcheck

	if err := database.Connect(cfg.DSN(), zl); err != nil {
		zl.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close() //nolint:errcheck

	var metrics *awspkg.MetricsClient
	awsCfg, awsErr := awspkg.LoadAWSConfig(context.Background())
	if awsErr != nil {
		zl.Warn("AWS config unavailable, recall consumer and metrics disabled", zap.Error(awsErr))
	} else {
		metrics = awspkg.NewMetricsClient(awsCfg)
	}

	petRepo := repository.NewGormPetRepository(database.DB)
	livestockRepo := repository.NewGormLivestockRepository(database.DB)
	alertRepo := repository.NewGormAlertRepository(database.DB)

	petService := servicepkg.NewPetService(petRepo, zl)
	livestockService := servicepkg.NewLivestockService(livestockRepo, zl)
	alertService := servicepkg.NewAlertService(alertRepo, petRepo, livestockRepo, metrics, zl)

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	if awsErr == nil && cfg.RecallQueueURL != "" {
		sqsConsumer := awspkg.NewSQSConsumer(awsCfg, cfg.RecallQueueURL, zl)
		go consumer.NewRecallConsumer(sqsConsumer, alertService, metrics, zl).Start(consumerCtx)
	} else {
		zl.Warn("RECALL_SQS_QUEUE_URL not set or AWS unavailable, recall alerts disabled")
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(middleware.RequestLogger(zl))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MetricsMiddleware(metrics, "pet-service"))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "pet-service"})
	})

	routes.RegisterPetRoutes(r,
		controllers.NewPetController(petService),
		controllers.NewLivestockController(livestockService),
		controllers.NewAlertController(alertService),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("Server failed", zap.Error(err))
		}
	}()

	zl.Info("Pet service started", zap.String("port", cfg.Port))
	<-quit
	zl.Info("Shutting down pet service...")
	stopConsumer()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Fatal("Server forced to shutdown", zap.Error(err))
	}
	zl.Info("Server exited cleanly")
}
