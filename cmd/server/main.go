package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"chavecerta-backend/internal/auth"
	"chavecerta-backend/internal/cache"
	"chavecerta-backend/internal/config"
	"chavecerta-backend/internal/database"
	"chavecerta-backend/internal/db"
	"chavecerta-backend/internal/handlers"
	"chavecerta-backend/internal/health"
	h "chavecerta-backend/internal/http"
	"chavecerta-backend/internal/mail"
	"chavecerta-backend/internal/middleware"
	"chavecerta-backend/internal/monitoring"
	"chavecerta-backend/internal/repositories"
	"chavecerta-backend/internal/services"
	"chavecerta-backend/internal/storage"
	"chavecerta-backend/migrations"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	// Run pending migrations from the embedded filesystem
	migrator := database.NewMigrator(pool, migrations.FS, ".")
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Redis is optional; listing caches degrade to no-ops without it
	if err := cache.Init(); err != nil {
		log.Printf("[Cache] Redis unavailable, caching disabled: %v", err)
	} else {
		log.Println("[Cache] Redis connected")
	}

	// Internal monitoring endpoint, not exposed through the main router
	monitoringServer := monitoring.NewMonitoringServer(pool, 9090)
	go monitoringServer.Start()

	jwtManager := auth.NewJWTManager(cfg)

	// Activation mails go through SMTP when configured, otherwise the mock
	// logs the activation link for local development
	var mailer mail.Mailer
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPMailer(cfg)
		log.Println("[Mail] SMTP mailer configured")
	} else {
		mailer = mail.NewMockMailer()
		log.Println("[Mail] SMTP not configured, using mock mailer")
	}

	// Object storage is optional; profile image uploads return 503 without it
	objectStorage, err := storage.NewObjectStorage(cfg)
	if err != nil {
		log.Printf("[Storage] Object storage disabled: %v", err)
		objectStorage = nil
	}

	// Repositories
	accountRepo := repositories.NewAccountRepository(pool)
	listingRepo := repositories.NewListingRepository(pool)
	contractRepo := repositories.NewContractRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	reviewRepo := repositories.NewReviewRepository(pool)

	// Services
	accountService := services.NewAccountService(accountRepo, jwtManager, mailer)
	listingService := services.NewListingService(listingRepo)
	contractService := services.NewContractService(contractRepo, listingRepo)
	paymentService := services.NewPaymentService(paymentRepo, contractRepo)
	reviewService := services.NewReviewService(reviewRepo, contractRepo)
	razorpayService := services.NewRazorpayService(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, paymentRepo, contractRepo)
	receiptService := services.NewReceiptService(paymentRepo, contractRepo)

	healthChecker := health.NewHealthChecker(pool)

	// Handlers
	authHandler := handlers.NewAuthHandler(accountService)
	accountHandler := handlers.NewAccountHandler(accountService, objectStorage)
	listingHandler := handlers.NewListingHandler(listingService)
	contractHandler := handlers.NewContractHandler(contractService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, razorpayService, receiptService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, accountRepo)

	router := h.NewRouter(
		authHandler,
		accountHandler,
		listingHandler,
		contractHandler,
		paymentHandler,
		reviewHandler,
		healthHandler,
		authMiddleware,
	)

	cors := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(cors(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
