package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shopyard/shopyard-backend/api/controllers"
	"github.com/shopyard/shopyard-backend/api/middleware"
	"github.com/shopyard/shopyard-backend/internal/auth"
	cartsvc "github.com/shopyard/shopyard-backend/internal/cart"
	"github.com/shopyard/shopyard-backend/internal/categories"
	checkoutsvc "github.com/shopyard/shopyard-backend/internal/checkout"
	orderssvc "github.com/shopyard/shopyard-backend/internal/orders"
	productssvc "github.com/shopyard/shopyard-backend/internal/products"
	"github.com/shopyard/shopyard-backend/internal/profiles"
	reviewssvc "github.com/shopyard/shopyard-backend/internal/reviews"
	sellerssvc "github.com/shopyard/shopyard-backend/internal/sellers"
	"github.com/shopyard/shopyard-backend/pkg/auth/session"
	"github.com/shopyard/shopyard-backend/pkg/config"
	"github.com/shopyard/shopyard-backend/pkg/logger"
	"github.com/shopyard/shopyard-backend/pkg/metrics"
	"github.com/shopyard/shopyard-backend/pkg/redis"
)

// Deps carries everything the router wires together.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Redis       *redis.Client
	DBPinger    controllers.Pinger
	Sessions    session.SessionChecker
	HTTPMetrics *metrics.HTTPMetrics
	// MetricsHandler serves the Prometheus scrape endpoint.
	MetricsHandler http.Handler

	AuthService     auth.Service
	RegisterService auth.RegisterService
	Categories      categories.Service
	Sellers         sellerssvc.Service
	Products        productssvc.Service
	Reviews         reviewssvc.Service
	Cart            cartsvc.Service
	Checkout        checkoutsvc.Service
	Orders          orderssvc.Service
	Profiles        profiles.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DBPinger,
			"redis":    pingerOrNil(deps.Redis),
		}))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(
			middleware.AuthRateLimit(registerPolicy, deps.Redis, logg),
			middleware.Idempotency(deps.Redis, logg),
		).Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public catalog reads.
		r.Get("/categories", controllers.ListCategories(deps.Categories, logg))
		r.Get("/categories/{slug}", controllers.GetCategory(deps.Categories, deps.Products, logg))
		r.Get("/sellers", controllers.ListSellers(deps.Sellers, logg))
		r.Get("/sellers/{slug}", controllers.GetSeller(deps.Sellers, deps.Products, logg))
		r.Get("/products", controllers.ListProducts(deps.Products, logg))
		r.Get("/products/reviews/{slug}", controllers.ListProductReviews(deps.Reviews, logg))
		r.Get("/products/{slug}", controllers.GetProduct(deps.Products, logg))

		// Everything below requires a live session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.Idempotency(deps.Redis, logg))

			r.With(middleware.RequireStaff(logg)).
				Post("/categories", controllers.CreateCategory(deps.Categories, logg))

			r.Post("/products/reviews", controllers.CreateReview(deps.Reviews, logg))
			r.Put("/products/reviews", controllers.UpdateReview(deps.Reviews, logg))
			r.Delete("/products/reviews/{slug}", controllers.DeleteReview(deps.Reviews, logg))

			r.Get("/cart", controllers.GetCart(deps.Cart, logg))
			r.Post("/cart", controllers.ToggleCart(deps.Cart, logg))
			r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))

			r.Get("/orders", controllers.ListOrders(deps.Orders, logg))
			r.Get("/orders/{txRef}", controllers.GetOrder(deps.Orders, logg))

			r.Route("/me", func(r chi.Router) {
				r.Get("/", controllers.GetProfile(deps.Profiles, logg))
				r.Patch("/", controllers.UpdateProfile(deps.Profiles, logg))
				r.Delete("/", controllers.DeleteProfile(deps.Profiles, logg))
				r.Get("/addresses", controllers.ListShippingAddresses(deps.Profiles, logg))
				r.Post("/addresses", controllers.CreateShippingAddress(deps.Profiles, logg))
				r.Put("/addresses/{addressID}", controllers.UpdateShippingAddress(deps.Profiles, logg))
				r.Delete("/addresses/{addressID}", controllers.DeleteShippingAddress(deps.Profiles, logg))
			})

			r.Route("/seller", func(r chi.Router) {
				r.Use(middleware.SellerContext(sellerLookup(deps.Sellers), logg))
				r.Get("/orders", controllers.SellerListOrders(deps.Orders, logg))
				r.Route("/products", func(r chi.Router) {
					r.Get("/", controllers.SellerListProducts(deps.Products, logg))
					r.Post("/", controllers.SellerCreateProduct(deps.Products, logg))
					r.Put("/{slug}", controllers.SellerUpdateProduct(deps.Products, logg))
					r.Delete("/{slug}", controllers.SellerDeleteProduct(deps.Products, logg))
				})
			})
		})
	})

	return r
}

func sellerLookup(svc sellerssvc.Service) middleware.SellerLookup {
	return func(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
		seller, err := svc.GetByUserID(ctx, userID)
		if err != nil {
			return uuid.Nil, err
		}
		return seller.ID, nil
	}
}

func pingerOrNil(client *redis.Client) controllers.Pinger {
	if client == nil {
		return nil
	}
	return client
}
