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

	"github.com/pedizone/pedizone-crm/internal/app"
	"github.com/pedizone/pedizone-crm/internal/auth"
	"github.com/pedizone/pedizone-crm/internal/bootstrap"
	"github.com/pedizone/pedizone-crm/internal/collections"
	"github.com/pedizone/pedizone-crm/internal/customers"
	"github.com/pedizone/pedizone-crm/internal/dashboard"
	"github.com/pedizone/pedizone-crm/internal/documents"
	"github.com/pedizone/pedizone-crm/internal/observability"
	"github.com/pedizone/pedizone-crm/internal/platform/cache"
	"github.com/pedizone/pedizone-crm/internal/platform/db"
	"github.com/pedizone/pedizone-crm/internal/platform/httpx"
	"github.com/pedizone/pedizone-crm/internal/platform/mongodb"
	"github.com/pedizone/pedizone-crm/internal/products"
	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/regions"
	"github.com/pedizone/pedizone-crm/internal/reports"
	"github.com/pedizone/pedizone-crm/internal/sales"
	"github.com/pedizone/pedizone-crm/internal/users"
	"github.com/pedizone/pedizone-crm/internal/visits"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN, db.PoolOptions{MaxConns: cfg.PGMaxConns, MaxConnIdleTime: cfg.PGMaxIdleTime})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	var denylist auth.Denylist = auth.NopDenylist{}
	if cfg.RedisAddr != "" {
		redisClient, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("redis unavailable, token revocation disabled", slog.Any("error", err))
		} else {
			denylist = auth.NewRedisDenylist(redisClient)
			defer func() {
				if err := redisClient.Close(); err != nil {
					logger.Warn("redis close", slog.Any("error", err))
				}
			}()
		}
	}

	documentRepo := documents.NewRepository(dbpool)
	if cfg.DocumentStore == app.DocumentStoreMongo {
		mongoClient, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			logger.Error("connect mongo", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				logger.Warn("mongo disconnect", slog.Any("error", err))
			}
		}()
		documentRepo, err = documents.NewMongoRepository(ctx, mongoClient.Database(cfg.MongoDB))
		if err != nil {
			logger.Error("prepare document store", slog.Any("error", err))
			os.Exit(1)
		}
	}

	metrics := observability.NewMetrics()
	binder := httpx.NewBinder()
	rbacMiddleware := rbac.Middleware{Logger: logger}

	usersRepo := users.NewRepository(dbpool)
	resolver := rbac.NewResolver(usersRepo)
	usersService := users.NewService(usersRepo, resolver, cfg.BcryptCost)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	authService := auth.NewService(usersService, tokens, denylist, metrics, logger)

	customersService := customers.NewService(customers.NewRepository(dbpool), resolver)
	visitsService := visits.NewService(visits.NewRepository(dbpool), resolver)
	salesService := sales.NewService(sales.NewRepository(dbpool), resolver)
	collectionsService := collections.NewService(collections.NewRepository(dbpool), resolver)
	dashboardService := dashboard.NewService(resolver, salesService, visitsService, collectionsService, customersService)
	reportsService := reports.NewService(salesService, visitsService)
	bootstrapService := bootstrap.NewService(dbpool, cfg.BcryptCost, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Metrics:            metrics,
		AuthHandler:        auth.NewHandler(logger, authService, binder, cfg.LoginLimit),
		BootstrapHandler:   bootstrap.NewHandler(logger, bootstrapService),
		UsersHandler:       users.NewHandler(logger, usersService, binder, rbacMiddleware),
		RegionsHandler:     regions.NewHandler(logger, regions.NewService(regions.NewRepository(dbpool)), binder, rbacMiddleware),
		CustomersHandler:   customers.NewHandler(logger, customersService, binder, rbacMiddleware),
		ProductsHandler:    products.NewHandler(logger, products.NewService(products.NewRepository(dbpool)), binder, rbacMiddleware),
		VisitsHandler:      visits.NewHandler(logger, visitsService, binder, rbacMiddleware),
		SalesHandler:       sales.NewHandler(logger, salesService, binder, rbacMiddleware),
		CollectionsHandler: collections.NewHandler(logger, collectionsService, binder, rbacMiddleware),
		DocumentsHandler:   documents.NewHandler(logger, documents.NewService(documentRepo), binder, rbacMiddleware),
		DashboardHandler:   dashboard.NewHandler(logger, dashboardService, rbacMiddleware),
		ReportsHandler:     reports.NewHandler(logger, reportsService, rbacMiddleware),
	})

	server := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           router,
		ReadTimeout:       cfg.AppReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("api_prefix", cfg.APIPrefix), slog.String("document_store", cfg.DocumentStore))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
