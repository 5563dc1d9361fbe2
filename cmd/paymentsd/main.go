package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Navin9820/super-app-QA-sub013/internal/application/usecase"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/service"
	"github.com/Navin9820/super-app-QA-sub013/internal/infrastructure/cache"
	"github.com/Navin9820/super-app-QA-sub013/internal/infrastructure/config"
	"github.com/Navin9820/super-app-QA-sub013/internal/infrastructure/gateway"
	"github.com/Navin9820/super-app-QA-sub013/internal/infrastructure/messaging"
	"github.com/Navin9820/super-app-QA-sub013/internal/infrastructure/orders"
	infraPG "github.com/Navin9820/super-app-QA-sub013/internal/infrastructure/postgres"
	"github.com/Navin9820/super-app-QA-sub013/internal/presentation/rest"
	kafkapkg "github.com/Navin9820/super-app-QA-sub013/pkg/kafka"
	"github.com/Navin9820/super-app-QA-sub013/pkg/observability"
	pgpkg "github.com/Navin9820/super-app-QA-sub013/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	logger.Info("starting payments service", "http_port", cfg.HTTPPort)

	pool, err := pgpkg.NewPool(ctx, pgpkg.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	dsn := pgpkg.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}.DSN()
	if err := pgpkg.RunMigrations(dsn, "file://internal/infrastructure/postgres/migrations"); err != nil {
		logger.Warn("migration warning", "error", err)
	}

	producer := kafkapkg.NewProducer(kafkapkg.Config{Brokers: cfg.Kafka.Brokers})
	defer producer.Close()

	var paymentCache port.PaymentCache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		paymentCache = cache.NewRedisCache(rdb)
	}

	metrics := observability.NewMetrics(nil)

	// Wire dependencies (DI via constructors).
	paymentRepo := infraPG.NewPaymentRecordRepo(pool)
	publisher := messaging.NewPublisher(producer)
	gatewayClient := gateway.NewClient(gateway.Config{
		BaseURL:   cfg.Gateway.BaseURL,
		KeyID:     cfg.Gateway.KeyID,
		KeySecret: cfg.Gateway.KeySecret,
		Timeout:   cfg.Gateway.Timeout,
	})
	verifier := service.NewSignatureVerifier([]byte(cfg.Gateway.WebhookSecret))
	dispatcher := service.NewOrderDispatcher(
		orders.NewRetailAdapter(pool),
		orders.NewGroceryAdapter(pool),
		orders.NewFoodAdapter(pool),
		orders.NewHotelAdapter(pool),
		orders.NewTaxiAdapter(pool),
		orders.NewPorterAdapter(pool),
	)

	// Use cases.
	createIntentUC := usecase.NewCreateIntent(paymentRepo, gatewayClient, dispatcher, publisher, metrics, logger)
	confirmPaymentUC := usecase.NewConfirmPayment(paymentRepo, verifier, dispatcher, publisher, paymentCache, metrics, logger)
	failPaymentUC := usecase.NewFailPayment(paymentRepo, verifier, publisher, metrics, logger)
	refundPaymentUC := usecase.NewRefundPayment(paymentRepo, publisher, paymentCache, logger)
	getPaymentUC := usecase.NewGetPayment(paymentRepo, paymentCache, logger)
	listPaymentsUC := usecase.NewListPayments(paymentRepo)

	// Reconciliation sweep for captures whose order update did not land.
	sweep := usecase.NewReconcileOrders(paymentRepo, dispatcher, metrics, logger, cfg.Sweep.GracePeriod, cfg.Sweep.BatchSize)
	go sweep.Run(ctx, cfg.Sweep.Interval)

	handler := rest.NewPaymentHandler(
		createIntentUC, confirmPaymentUC, failPaymentUC,
		refundPaymentUC, getPaymentUC, listPaymentsUC, logger,
	)
	router := rest.NewRouter(handler, pool, observability.MetricsHandler(), logger)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	logger.Info("payments service stopped")
}
