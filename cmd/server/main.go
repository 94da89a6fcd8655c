package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"barliman/internal/catalog"
	"barliman/internal/catalog/repository"
	"barliman/internal/checkout"
	checkoutctrl "barliman/internal/checkout/controller"
	"barliman/internal/commons"
	"barliman/internal/config"
	"barliman/internal/infrastructure/logger"
	"barliman/internal/infrastructure/mysql"
	"barliman/internal/receipt"
	"barliman/internal/server"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	catalogSvc := catalog.NewService(zapLogger)
	if err := seedCatalog(cfg, catalogSvc, zapLogger); err != nil {
		zapLogger.Fatal("seeding catalog", zap.Error(err))
	}
	zapLogger.Info("catalog seeded", zap.Int("productCount", len(catalogSvc.List())))

	tx := checkout.NewTransaction(catalogSvc, receipt.NewFactory(), zapLogger)

	catalogCtrl := catalog.NewController(catalogSvc, zapLogger)
	registerCtrl := checkoutctrl.NewRegisterController(tx, zapLogger)

	router := server.NewRouter(catalogCtrl, registerCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}

func seedCatalog(cfg *config.Config, svc *catalog.Service, zapLogger *zap.Logger) error {
	if cfg.Catalog.Source == config.CatalogSourceMySQL {
		db, err := mysql.NewConnection(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		zapLogger.Info("database connected")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		products, err := repository.NewMySQLProductRepository(db).FindAll(ctx)
		if err != nil {
			return err
		}
		for _, p := range products {
			if err := svc.Register(p); err != nil {
				return err
			}
		}
		return nil
	}

	return catalog.LoadSeed(svc, cfg.Catalog.SeedPath)
}
