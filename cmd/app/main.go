package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asquebay/star-burger-service/internal/config"
	"github.com/asquebay/star-burger-service/internal/geocoder"
	"github.com/asquebay/star-burger-service/internal/lib/logger"
	"github.com/asquebay/star-burger-service/internal/repository/cache"
	"github.com/asquebay/star-burger-service/internal/repository/postgres"
	"github.com/asquebay/star-burger-service/internal/service"
	httptransport "github.com/asquebay/star-burger-service/internal/transport/http"
	"github.com/asquebay/star-burger-service/internal/transport/kafka"
)

func main() {
	// 1. Инициализация конфигурации
	cfg := config.MustLoad("config/config.yaml")

	// 2. Инициализация логгера
	log := logger.New(cfg.Logger.Level)
	log.Info("starting star-burger-service", slog.String("log_level", cfg.Logger.Level))

	// 3. Инициализация репозиториев (БД)
	initCtx := context.Background()
	dbpool, err := postgres.New(initCtx, cfg.Postgres)
	if err != nil {
		log.Error("failed to connect to postgres", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbpool.Close()
	log.Info("successfully connected to postgres")

	orderRepo := postgres.NewOrderRepository(dbpool)
	catalogRepo := postgres.NewCatalogRepository(dbpool)
	placeRepo := postgres.NewPlaceRepository(dbpool)

	// 4. Инициализация кэша мест и клиента геокодера
	placeCache := cache.NewPlaceCache()
	geoClient := geocoder.New(cfg.Geocoder)
	log.Info("place cache and geocoder client initialized")

	// 5. Инициализация сервисного слоя
	placeSvc := service.NewPlaceService(placeRepo, placeCache, geoClient, log)
	orderSvc := service.NewOrderService(orderRepo, catalogRepo, placeSvc, log)
	catalogSvc := service.NewCatalogService(catalogRepo, log)

	// 6. Восстановление кэша мест из БД при старте
	err = placeSvc.RestoreCache(context.Background())
	if err != nil {
		// не фатальная ошибка, сервис может работать и с пустым кэшем
		log.Error("failed to restore place cache", slog.String("error", err.Error()))
	}

	// 7. Инициализация и запуск Kafka-консьюмера
	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID, orderSvc, log)
	ctx, cancel := context.WithCancel(context.Background())
	go consumer.Run(ctx)

	// 8. Инициализация и запуск HTTP-сервера
	handler := httptransport.NewHandler(orderSvc, catalogSvc, log)
	httpServer := httptransport.NewServer(cfg.HTTPServer.Port, handler, cfg.HTTPServer.Timeout)
	log.Info("starting http server", slog.String("port", cfg.HTTPServer.Port))

	go func() {
		if err := httpServer.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed to start", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// 9. Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down application")
	cancel() // сигнал для консьюмера на завершение

	// создаем контекст с таймаутом для шатдауна сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", slog.String("error", err.Error()))
	}

	if err := consumer.Close(); err != nil {
		log.Error("error closing kafka consumer", slog.String("error", err.Error()))
	}

	log.Info("application stopped")
}
