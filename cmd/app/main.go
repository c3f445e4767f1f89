package main

import (
	"fmt"
	"net/http"

	"dispatch/cmd"
	dispatchhttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/carrierconfigrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/redis"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// A .env file is optional; real environment variables win either way.
	_ = godotenv.Load(".env")

	config, err := cmd.Load(".")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	zlog, err := logger.New(config.Environment, config.LogLevel)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer func() {
		_ = zlog.Sync()
	}()

	gormDB, err := gorm.Open(gorm_postgres.Open(config.Database.DSN()), &gorm.Config{})
	if err != nil {
		zlog.Fatal("failed to connect database", zap.Error(err))
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.TrackingEventDTO{},
		&carrierconfigrepo.CarrierConfigDTO{},
	)
	if err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	var cache ports.Cache
	if config.Redis.URL != "" {
		redisCache, cacheErr := redis.NewAdapter(config.Redis.URL)
		if cacheErr != nil {
			zlog.Fatal("failed to connect redis", zap.Error(cacheErr))
		}
		defer func() {
			_ = redisCache.Close()
		}()
		cache = redisCache
	}

	root := cmd.NewCompositionRoot(*config, gormDB, cache, zlog)

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		zlog.Fatal("failed to start background jobs", zap.Error(err))
	}
	defer jobManager.StopAll()

	startWebServer(&root, config.HTTPPort)
}

func startWebServer(root *cmd.CompositionRoot, port int) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := dispatchhttp.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateShipOrderCommandHandler(),
		root.CreateAutoShipOrderCommandHandler(),
		root.CreateSyncTrackingCommandHandler(),
		root.CreateCancelShipmentCommandHandler(),
		root.CreateGetLabelCommandHandler(),
		root.CreateGetTrackingTimelineQueryHandler(),
		root.CreateGetActiveShipmentsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%d", port)))
}
