package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/komoralink/komora/app"
	"github.com/komoralink/komora/config"
	"github.com/komoralink/komora/logging"
	"github.com/komoralink/komora/models"
	"github.com/komoralink/komora/telemetry"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger, err := logging.New(cfg.Logger, cfg.Server.IsDevelopment())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer appLogger.Sync()

	// 3. Initialize Tracing
	shutdownTracing, err := telemetry.Init(cfg.Telemetry)
	if err != nil {
		appLogger.Fatal("Could not initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			appLogger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	// 4. Connect to Database
	gormLevel := gormlogger.Warn
	if cfg.Server.IsDevelopment() {
		gormLevel = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLevel),
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Fatal("Could not access the connection pool", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
	defer sqlDB.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if err := models.AutoMigrate(db); err != nil {
		appLogger.Fatal("Could not migrate schema", zap.Error(err))
	}

	// 5. Initialize Repositories
	repos := app.Repositories{
		Categories: models.NewCategoriesRepository(db),
		Products:   models.NewProductsRepository(db),
		Businesses: models.NewBusinessesRepository(db),
		Restaurant: models.NewRestaurantRepository(db),
		Inventory:  models.NewInventoryRepository(db),
		Orders:     models.NewOrdersRepository(db),
		Wallets:    models.NewWalletRepository(db),
	}

	// 6. Start HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           app.NewRouter(repos, []byte(cfg.JWT.SecretKey), cfg.Telemetry.ServiceName, appLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
