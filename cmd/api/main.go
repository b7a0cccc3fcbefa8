package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dwikikusuma/storefront/internal/api"
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartadapter "github.com/dwikikusuma/storefront/internal/cart/infra/adapter"
	cartpg "github.com/dwikikusuma/storefront/internal/cart/infra/postgres"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogpg "github.com/dwikikusuma/storefront/internal/catalog/infra/postgres"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutadapter "github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"
	checkoutcache "github.com/dwikikusuma/storefront/internal/checkout/infra/cache"
	checkoutpg "github.com/dwikikusuma/storefront/internal/checkout/infra/postgres"
	deliveryapp "github.com/dwikikusuma/storefront/internal/delivery/app"
	"github.com/dwikikusuma/storefront/internal/delivery/infra/geocode"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	orderpg "github.com/dwikikusuma/storefront/internal/order/infra/postgres"
	storeapp "github.com/dwikikusuma/storefront/internal/store/app"
	storepg "github.com/dwikikusuma/storefront/internal/store/infra/postgres"

	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
)

func main() {
	cfg, err := config.Load(getenv("CONFIG_DIR", "configs"), getenv("APP_ENV", "dev"))
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service:   cfg.App.Name,
		Env:       cfg.App.Env,
		Level:     cfg.App.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	db := mustDB(log, cfg)
	defer db.Close()

	if err := postgres.Migrate(db, cfg.Postgres.MigrationsDir); err != nil {
		log.Error("migrations failed", slog.Any("err", err))
		os.Exit(1)
	}

	// Stores & catalog
	storeSvc := storeapp.NewService(storepg.NewStoreRepo(db))
	catalogSvc := catalogapp.NewService(catalogpg.NewProductRepo(db))

	// Cart
	cartSvc := cartapp.NewService(
		cartpg.NewCartRepo(db),
		cartadapter.NewCatalogServiceReader(catalogSvc),
		cfg.Checkout.MaxPriceLookups,
	)

	// Delivery
	geocoder := geocode.NewHTTPGeocoder(geocode.Config{
		BaseURL:   cfg.Geocoder.BaseURL,
		UserAgent: cfg.Geocoder.UserAgent,
		Timeout:   cfg.Geocoder.Timeout,
	})
	resolver := deliveryapp.NewResolver(geocoder)

	// Checkout
	var idem checkoutapp.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
		idem = checkoutcache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	}
	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewCartServiceReader(cartSvc),
		checkoutadapter.NewCatalogServiceReader(catalogSvc),
		checkoutadapter.NewStoreServiceReader(storeSvc),
		checkoutadapter.NewDeliveryZoneResolver(resolver),
		checkoutpg.NewCheckoutRepo(db),
		idem,
		log,
		cfg.Checkout.MaxPriceLookups,
		cfg.Postgres.PersistTimeout,
	)

	// Orders
	orderSvc := orderapp.NewService(orderpg.NewOrderRepo(db))

	handler := api.NewRouter(api.RouterConfig{
		Log:            log,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		Stores:         storeSvc,
		Carts:          cartSvc,
		Checkout:       checkoutSvc,
		Orders:         orderSvc,
	})

	server := &http.Server{
		Addr:              cfg.App.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", cfg.App.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	if err := server.Shutdown(stopCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

func mustDB(log *slog.Logger, cfg config.Config) *sql.DB {
	db, err := postgres.Open(postgres.Config{
		Host:         cfg.Postgres.Host,
		Port:         cfg.Postgres.Port,
		User:         cfg.Postgres.User,
		Pass:         cfg.Postgres.Password,
		DB:           cfg.Postgres.DB,
		SSLMode:      cfg.Postgres.SSLMode,
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Postgres.MaxIdleConns,
	})
	if err != nil {
		log.Error("db open failed", slog.Any("err", err))
		os.Exit(1)
	}
	return db
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
