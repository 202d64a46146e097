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
	"go.uber.org/zap"

	appsales "github.com/sales/backend/internal/application/sales"
	"github.com/sales/backend/internal/infrastructure/config"
	"github.com/sales/backend/internal/infrastructure/logger"
	"github.com/sales/backend/internal/infrastructure/persistence"
	"github.com/sales/backend/internal/infrastructure/replication"
	"github.com/sales/backend/internal/interfaces/http/handler"
	"github.com/sales/backend/internal/interfaces/http/middleware"
	"github.com/sales/backend/internal/interfaces/http/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync(log)

	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	needRedis := cfg.Replication.Transport == config.TransportRedis || cfg.Replication.WorkerEnabled
	if needRedis {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
	}

	gateway, err := buildGateway(ctx, cfg, redisClient, log)
	if err != nil {
		return fmt.Errorf("build replication gateway: %w", err)
	}

	sequences := persistence.NewGormSequenceRepository()
	orders := persistence.NewGormOrderRepository(db.DB, sequences)
	companies := persistence.NewGormCompanyRepository(db.DB)
	users := persistence.NewGormUserRepository(db.DB)
	products := persistence.NewGormProductRepository(db.DB)

	orderService := appsales.NewOrderService(orders, companies, users, products, gateway, log)
	orderQueries := appsales.NewOrderQueryService(orders)
	companyService := appsales.NewCompanyService(companies, log)
	userService := appsales.NewUserService(users, log)
	productService := appsales.NewProductService(products, gateway, log)

	if cfg.Replication.WorkerEnabled {
		reception := appsales.NewReceptionHandler(companyService, userService, log)
		worker := replication.NewReceptionWorker(
			redisClient,
			cfg.Replication.ReceptionStream,
			cfg.Replication.ReceptionGroup,
			hostnameConsumer(cfg.App.Name),
			reception,
			log,
		)
		go func() {
			if err := worker.Start(ctx); err != nil {
				log.Error("reception worker stopped", zap.Error(err))
			}
		}()
	}

	apiKey := middleware.APIKey(cfg.App.APIKey)
	engine := router.New(cfg, log,
		handler.NewOrderHandler(orderService, orderQueries, apiKey, log),
		handler.NewCompanyHandler(companyService, apiKey, log),
		handler.NewUserHandler(userService, apiKey, log),
		handler.NewProductHandler(productService, apiKey, log),
		handler.NewSystemHandler(db, log),
	).Setup()

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("stopped")
	return nil
}

func buildGateway(ctx context.Context, cfg *config.Config, redisClient *redis.Client, log *zap.Logger) (replication.Gateway, error) {
	switch cfg.Replication.Transport {
	case config.TransportAWS:
		return replication.NewSNSPublisher(ctx, &cfg.AWS, log)
	default:
		return replication.NewRedisQueueProducer(
			redisClient,
			cfg.Replication.ProductsStream,
			cfg.Replication.MaxAttempts,
			cfg.Replication.InitialBackoff,
			log,
		), nil
	}
}

func hostnameConsumer(appName string) string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return appName
	}
	return appName + "-" + host
}
