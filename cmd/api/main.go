package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rahulpatwa/bookbazaar-backend/api/routes"
	"github.com/rahulpatwa/bookbazaar-backend/internal/borrow"
	"github.com/rahulpatwa/bookbazaar-backend/internal/cart"
	"github.com/rahulpatwa/bookbazaar-backend/internal/catalog"
	"github.com/rahulpatwa/bookbazaar-backend/internal/checkout"
	"github.com/rahulpatwa/bookbazaar-backend/internal/events"
	"github.com/rahulpatwa/bookbazaar-backend/internal/orders"
	"github.com/rahulpatwa/bookbazaar-backend/internal/wallet"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/config"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/db"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/logger"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/metrics"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/migrate"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/pubsub"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var publisher events.Publisher = events.Noop{}
	if cfg.PubSub.Enabled(cfg.GCP) {
		pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub, events disabled", err)
		} else {
			defer func() {
				if err := pubsubClient.Close(); err != nil {
					logg.Error(context.Background(), "error closing pubsub", err)
				}
			}()
			publisher = events.NewPubSubPublisher(pubsubClient, logg)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	cartMetrics := metrics.NewCartMetrics(registry)

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient, publisher, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	borrowService, err := borrow.NewService(borrow.NewRepository(dbClient.DB()), dbClient, publisher, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create borrow service", err)
		os.Exit(1)
	}

	walletService, err := wallet.NewService(wallet.NewRepository(dbClient.DB()), dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create wallet service", err)
		os.Exit(1)
	}

	gateway, err := checkout.NewGateway(ordersService, borrowService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout gateway", err)
		os.Exit(1)
	}

	carts, err := cart.NewManager(cart.ManagerParams{
		Slot: redis.NewSlot(redisClient, cfg.Cart.SlotTTL),
		KeyFn: func(kind enums.CartKind, userID uuid.UUID) string {
			return redisClient.CartSlotKey(string(kind), userID.String())
		},
		Gateway: gateway,
		Rental:  cfg.Rental,
		Logger:  logg,
		Metrics: cartMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart manager", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			carts,
			catalogService,
			ordersService,
			borrowService,
			walletService,
		),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-shutdown
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
