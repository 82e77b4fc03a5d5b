package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopyard/shopyard-backend/api/routes"
	"github.com/shopyard/shopyard-backend/internal/auth"
	cartsvc "github.com/shopyard/shopyard-backend/internal/cart"
	"github.com/shopyard/shopyard-backend/internal/categories"
	checkoutsvc "github.com/shopyard/shopyard-backend/internal/checkout"
	orderssvc "github.com/shopyard/shopyard-backend/internal/orders"
	productssvc "github.com/shopyard/shopyard-backend/internal/products"
	"github.com/shopyard/shopyard-backend/internal/profiles"
	reviewssvc "github.com/shopyard/shopyard-backend/internal/reviews"
	sellerssvc "github.com/shopyard/shopyard-backend/internal/sellers"
	"github.com/shopyard/shopyard-backend/internal/users"
	"github.com/shopyard/shopyard-backend/pkg/auth/session"
	"github.com/shopyard/shopyard-backend/pkg/config"
	"github.com/shopyard/shopyard-backend/pkg/db"
	"github.com/shopyard/shopyard-backend/pkg/logger"
	"github.com/shopyard/shopyard-backend/pkg/metrics"
	"github.com/shopyard/shopyard-backend/pkg/migrate"
	"github.com/shopyard/shopyard-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	conn := dbClient.DB()
	userRepo := users.NewRepository(conn)
	sellerRepo := sellerssvc.NewRepository(conn)
	categoryRepo := categories.NewRepository(conn)
	productRepo := productssvc.NewRepository(conn)
	reviewRepo := reviewssvc.NewRepository(conn)
	cartRepo := cartsvc.NewRepository(conn)
	orderRepo := orderssvc.NewRepository(conn)
	profileRepo := profiles.NewRepository(conn)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SellerRepo:     sellerRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	exitOnErr(logg, "auth service", err)

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	exitOnErr(logg, "register service", err)

	categoryService, err := categories.NewService(categoryRepo)
	exitOnErr(logg, "category service", err)

	sellerService, err := sellerssvc.NewService(sellerRepo)
	exitOnErr(logg, "seller service", err)

	reviewService, err := reviewssvc.NewService(reviewssvc.ServiceParams{
		Repo:     reviewRepo,
		Products: productRepo,
	})
	exitOnErr(logg, "review service", err)

	productService, err := productssvc.NewService(productssvc.ServiceParams{
		Repo:       productRepo,
		Categories: categoryRepo,
		Reviews:    reviewRepo,
	})
	exitOnErr(logg, "product service", err)

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Repo:     cartRepo,
		Products: productRepo,
	})
	exitOnErr(logg, "cart service", err)

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{DB: dbClient})
	exitOnErr(logg, "checkout service", err)

	orderService, err := orderssvc.NewService(orderRepo)
	exitOnErr(logg, "order service", err)

	profileService, err := profiles.NewService(profiles.ServiceParams{
		Repo:  profileRepo,
		Users: userRepo,
	})
	exitOnErr(logg, "profile service", err)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	handler := routes.NewRouter(routes.Deps{
		Config:         cfg,
		Logger:         logg,
		Redis:          redisClient,
		DBPinger:       dbClient,
		Sessions:       sessionManager,
		HTTPMetrics:    httpMetrics,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),

		AuthService:     authService,
		RegisterService: registerService,
		Categories:      categoryService,
		Sellers:         sellerService,
		Products:        productService,
		Reviews:         reviewService,
		Cart:            cartService,
		Checkout:        checkoutService,
		Orders:          orderService,
		Profiles:        profileService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stop:
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

func exitOnErr(logg *logger.Logger, what string, err error) {
	if err != nil {
		logg.Error(context.Background(), "failed to create "+what, err)
		os.Exit(1)
	}
}
