package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rahulpatwa/bookbazaar-backend/api/controllers"
	"github.com/rahulpatwa/bookbazaar-backend/api/middleware"
	"github.com/rahulpatwa/bookbazaar-backend/internal/borrow"
	cartsvc "github.com/rahulpatwa/bookbazaar-backend/internal/cart"
	"github.com/rahulpatwa/bookbazaar-backend/internal/catalog"
	"github.com/rahulpatwa/bookbazaar-backend/internal/orders"
	"github.com/rahulpatwa/bookbazaar-backend/internal/wallet"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/config"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/db"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/logger"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	cacheP redis.Pinger,
	registry *prometheus.Registry,
	carts *cartsvc.Manager,
	catalogService catalog.Service,
	ordersService orders.Service,
	borrowService borrow.Service,
	walletService wallet.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, cacheP, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/v1/cart/{cartKind}", func(r chi.Router) {
			r.Get("/", controllers.CartGet(carts, logg))
			r.Post("/items", controllers.CartAdd(carts, catalogService, logg))
			r.Delete("/items/{lineItemId}", controllers.CartRemove(carts, logg))
			r.Post("/clear", controllers.CartClear(carts, logg))
			r.Post("/checkout", controllers.CartCheckout(carts, logg))
		})

		r.Route("/v1/listings", func(r chi.Router) {
			r.Post("/evaluate", controllers.ListingEvaluate(logg))
			r.Post("/", controllers.ListingSubmit(catalogService, logg))
		})

		r.Route("/v1/catalog", func(r chi.Router) {
			r.Route("/books", func(r chi.Router) {
				r.Get("/", controllers.BookList(catalogService, logg))
				r.Post("/", controllers.BookCreate(catalogService, logg))
			})
			r.Route("/ebooks", func(r chi.Router) {
				r.Get("/", controllers.EbookList(catalogService, logg))
				r.Post("/", controllers.EbookCreate(catalogService, logg))
			})
			r.Route("/products", func(r chi.Router) {
				r.Get("/mine", controllers.SellerProductList(catalogService, logg))
				r.Get("/{productId}", controllers.ProductGet(catalogService, logg))
			})
		})

		r.Route("/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(ordersService, logg))
			r.Get("/{orderId}", controllers.OrderGet(ordersService, logg))
			r.Post("/{orderId}/status", controllers.OrderUpdateStatus(ordersService, logg))
		})

		r.Route("/v1/borrows", func(r chi.Router) {
			r.Get("/", controllers.BorrowList(borrowService, logg))
			r.Get("/queue", controllers.BorrowQueue(borrowService, logg))
			r.Post("/{requestId}/decision", controllers.BorrowDecide(borrowService, logg))
		})

		r.Route("/v1/wallet", func(r chi.Router) {
			r.Get("/", controllers.WalletBalance(walletService, logg))
			r.Get("/entries", controllers.WalletHistory(walletService, logg))
			r.Post("/credit", controllers.WalletCredit(walletService, logg))
			r.Post("/debit", controllers.WalletDebit(walletService, logg))
		})
	})

	return r
}
