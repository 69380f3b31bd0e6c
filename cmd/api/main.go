package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talenthub-api/internal/cache"
	"talenthub-api/internal/config"
	"talenthub-api/internal/handler"
	"talenthub-api/internal/middleware"
	"talenthub-api/internal/payment"
	"talenthub-api/internal/repository"
	"talenthub-api/internal/router"
	"talenthub-api/internal/service"
	"talenthub-api/internal/storage"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting TalentHub API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Open the SQLite store (investments, showcases, payment events,
	// and users unless MySQL is selected)
	db, err := repository.OpenSQLite(cfg.Store.Path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	investmentRepo := repository.NewSQLiteInvestmentRepository(db)
	showcaseRepo := repository.NewSQLiteShowcaseRepository(db)
	eventRepo := repository.NewSQLitePaymentEventRepository(db)

	// Select the user/profile backend
	var userRepo repository.UserRepository
	var mysqlDB *sql.DB
	switch cfg.UserDB.Type {
	case "mysql":
		mysqlDB, err = sql.Open("mysql", cfg.UserDB.DSN())
		if err != nil {
			log.Fatalf("Failed to open MySQL: %v", err)
		}
		mysqlDB.SetMaxOpenConns(10)
		mysqlDB.SetMaxIdleConns(5)
		mysqlDB.SetConnMaxLifetime(5 * time.Minute)
		if err := mysqlDB.Ping(); err != nil {
			log.Fatalf("MySQL ping failed: %v", err)
		}
		userRepo, err = repository.NewMySQLUserRepository(mysqlDB)
		if err != nil {
			log.Fatalf("Failed to initialize MySQL user repository: %v", err)
		}
		log.Println("MySQL user repository initialized")
	default: // sqlite
		userRepo = repository.NewSQLiteUserRepository(db)
		log.Println("SQLite user repository initialized")
	}
	if mysqlDB != nil {
		defer mysqlDB.Close()
	}

	// Initialize Redis client (sessions + directory cache)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis connection failed, falling back to in-process session store: %v", err)
		redisClient = nil
	} else {
		log.Println("Redis client initialized")
	}
	cancel()

	// Session store: Redis in production, memory fallback for development
	var sessionStore cache.Cache
	if redisClient != nil {
		sessionStore = cache.NewRedisCache(redisClient)
	} else {
		sessionStore = cache.NewMemoryCache()
	}
	sessionService := service.NewSessionService(sessionStore, cfg.Session.TTL)

	// Directory cache per config
	var directoryCache cache.Cache
	switch {
	case cfg.Cache.Type == "redis" && redisClient != nil:
		directoryCache = cache.NewRedisCache(redisClient)
		log.Println("Redis directory cache initialized")
	case cfg.Cache.Type == "memory":
		directoryCache = cache.NewMemoryCache()
		log.Println("Memory directory cache initialized")
	default:
		log.Println("Directory cache disabled")
	}

	// Object store for showcase media
	var mediaStore storage.ObjectStore
	storeCtx, storeCancel := context.WithTimeout(context.Background(), 10*time.Second)
	minioStore, err := storage.NewMinIOStore(storeCtx, cfg.Media)
	storeCancel()
	if err != nil {
		log.Printf("Warning: object store initialization failed, showcase uploads disabled: %v", err)
	} else {
		mediaStore = minioStore
	}

	// Payment processor
	var stripeProvider *payment.StripeProvider
	if cfg.Payment.StripeSecretKey != "" {
		stripeProvider = payment.NewStripeProvider(cfg.Payment.StripeSecretKey, cfg.Payment.WebhookSecret)
		log.Println("Stripe provider initialized")
	} else {
		log.Println("Warning: STRIPE_SECRET_KEY not set, checkout disabled")
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, sessionService)
	showcaseService := service.NewShowcaseService(showcaseRepo, mediaStore)
	directoryService := service.NewDirectoryService(userRepo, directoryCache, cfg.Cache.TTL)

	var investmentService *service.InvestmentService
	if stripeProvider != nil {
		investmentService = service.NewInvestmentService(investmentRepo, userRepo, stripeProvider, service.CheckoutConfig{
			Currency:       cfg.Payment.Currency,
			ProductName:    cfg.Payment.ProductName,
			SuccessPath:    cfg.Payment.SuccessPath,
			CancelPath:     cfg.Payment.CancelPath,
			FallbackOrigin: cfg.App.BaseURL,
		})
	}

	// Pending-investment sweeper
	var sweeper *service.PendingSweeper
	if cfg.Sweeper.Enabled && investmentService != nil {
		sweeper = service.NewPendingSweeper(investmentService, service.SweeperConfig{
			MaxPendingAge: cfg.Sweeper.MaxPendingAge,
			Interval:      cfg.Sweeper.Interval,
		})
		sweeper.Start()
	}

	// Readiness probes
	checks := []handler.ReadinessCheck{
		{Name: "store", Probe: func(ctx context.Context) error { return db.PingContext(ctx) }},
	}
	if redisClient != nil {
		checks = append(checks, handler.ReadinessCheck{
			Name: "redis", Probe: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}
	if mediaStore != nil {
		checks = append(checks, handler.ReadinessCheck{
			Name: "object_store", Probe: mediaStore.Ping,
		})
	}

	// Initialize handlers
	healthHandler := handler.New(cfg.App.Version, checks...)
	authHandler := handler.NewAuthHandler(authService)
	talentHandler := handler.NewTalentHandler(directoryService, showcaseService, investmentService)
	adminHandler := handler.NewAdminHandler(investmentRepo, showcaseRepo, sweeper, cfg.UserDB.Type)

	var showcaseHandler *handler.ShowcaseHandler
	if showcaseService != nil {
		showcaseHandler = handler.NewShowcaseHandler(showcaseService, cfg.Media.MaxUploadBytes)
	}

	var investmentHandler *handler.InvestmentHandler
	var webhookHandler *handler.WebhookHandler
	if investmentService != nil {
		investmentHandler = handler.NewInvestmentHandler(investmentService, sessionService)
		webhookHandler = handler.NewWebhookHandler(stripeProvider, stripeProvider.Name(), eventRepo, investmentService)
	}

	// Auth middleware with injected session resolver
	authMiddleware := middleware.NewAuthMiddleware(sessionService)

	// Create router
	r := router.New(router.Config{
		Handler:           healthHandler,
		AuthHandler:       authHandler,
		TalentHandler:     talentHandler,
		ShowcaseHandler:   showcaseHandler,
		InvestmentHandler: investmentHandler,
		WebhookHandler:    webhookHandler,
		AdminHandler:      adminHandler,
		AuthMiddleware:    authMiddleware,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if sweeper != nil {
		sweeper.Stop()
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	fmt.Println("Goodbye!")
}
