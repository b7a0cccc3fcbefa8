package api

import (
	"log/slog"
	"net/http"
	"time"

	apimw "github.com/dwikikusuma/storefront/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	Log            *slog.Logger
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int

	Stores   StoreService
	Carts    CartService
	Checkout CheckoutService
	Orders   OrderService
}

func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}

	cartHandler := NewCartHandler(cfg.Stores, cfg.Carts)
	checkoutHandler := NewCheckoutHandler(cfg.Checkout)
	orderHandler := NewOrderHandler(cfg.Orders)
	limiter := apimw.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(apimw.Logging(cfg.Log))
	r.Use(apimw.Metrics)
	r.Use(limiter.Limit)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/stores/{slug}", func(r chi.Router) {
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{productID}", cartHandler.SetItemQuantity)
				r.Delete("/items/{productID}", cartHandler.RemoveItem)
			})
			r.Get("/checkout/quote", checkoutHandler.Quote)
			r.Post("/delivery/preview", checkoutHandler.Preview)
			r.Post("/checkout", checkoutHandler.Checkout)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderHandler.List)
			r.Get("/{orderID}", orderHandler.Get)
			r.Post("/{orderID}/status", orderHandler.AdvanceStatus)
		})
	})

	return r
}
