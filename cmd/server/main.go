package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"

	"stitch-backend/internal/ai"
	"stitch-backend/internal/auth"
	"stitch-backend/internal/cache"
	"stitch-backend/internal/config"
	"stitch-backend/internal/database"
	"stitch-backend/internal/db"
	"stitch-backend/internal/handlers"
	"stitch-backend/internal/health"
	h "stitch-backend/internal/http"
	"stitch-backend/internal/middleware"
	"stitch-backend/internal/monitoring"
	"stitch-backend/internal/realtime"
	"stitch-backend/internal/repositories"
	"stitch-backend/internal/services"
	"stitch-backend/internal/storage"
)

func main() {
	port := flag.Int("port", 0, "override the configured listen port")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	if err := database.NewMigrator(pool).RunMigrations(context.Background()); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	if err := cache.Init(); err != nil {
		log.Printf("[Main] Redis unavailable, running without cache: %v", err)
	}

	// Object storage is optional in development.
	store, err := storage.New(cfg)
	if err != nil {
		log.Printf("[Main] Storage unavailable, uploads disabled: %v", err)
		store = nil
	}

	// The AI endpoints are optional too: without them quote pricing runs on
	// the local engine and the assistant is served by the mock provider.
	var quoteGen ai.QuoteGenerator
	var assistant ai.Assistant
	var imageGen ai.ImageGenerator
	if cfg.AI.QuoteEndpoint != "" {
		client := ai.NewClient(cfg)
		quoteGen, assistant, imageGen = client, client, client
	} else {
		log.Printf("[Main] AI endpoints not configured, using local pricing and mock assistant")
		mock := ai.NewMockProvider()
		quoteGen, assistant, imageGen = mock, mock, mock
	}

	hub := realtime.NewHub()
	go hub.Run()

	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	quoteRepo := repositories.NewQuoteRepository(pool)
	orderRepo := repositories.NewOrderRepository(pool)
	stageRepo := repositories.NewProductionStageRepository(pool)
	supplierRepo := repositories.NewSupplierRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	messageRepo := repositories.NewMessageRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	totpRepo := repositories.NewTOTPRepository(pool)

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	totpService := services.NewTOTPService(userRepo, totpRepo, jwtManager)
	productionService := services.NewProductionService(stageRepo, orderRepo, hub)
	quoteService := services.NewQuoteService(quoteRepo, orderRepo, quoteGen, productionService, store, hub, cfg)
	orderService := services.NewOrderService(orderRepo, stageRepo, hub)
	dashboardService := services.NewDashboardService(userRepo, quoteRepo, orderRepo)
	supplierService := services.NewSupplierService(supplierRepo)
	productService := services.NewProductService(productRepo, imageGen, store, cfg)
	messageService := services.NewMessageService(messageRepo, userRepo, hub)
	paymentService := services.NewPaymentService(cfg, paymentRepo, orderRepo, hub)
	reportService := services.NewReportService(quoteRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, totpService)
	userHandler := handlers.NewUserHandler(userService)
	totpHandler := handlers.NewTOTPHandler(totpService)
	quoteHandler := handlers.NewQuoteHandler(quoteService, reportService)
	orderHandler := handlers.NewOrderHandler(orderService, supplierService)
	productionHandler := handlers.NewProductionHandler(productionService, orderService, supplierService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	supplierHandler := handlers.NewSupplierHandler(supplierService)
	productHandler := handlers.NewProductHandler(productService)
	messageHandler := handlers.NewMessageHandler(messageService, orderService, supplierService)
	assistantHandler := handlers.NewAssistantHandler(assistant)
	paymentHandler := handlers.NewPaymentHandler(paymentService, orderService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		userHandler,
		totpHandler,
		quoteHandler,
		orderHandler,
		productionHandler,
		dashboardHandler,
		supplierHandler,
		productHandler,
		messageHandler,
		assistantHandler,
		paymentHandler,
		healthHandler,
		hub,
		authMiddleware,
	)

	// Internal ops dashboard on a separate port
	go func() {
		if err := monitoring.NewServer(pool, 9090).Start(); err != nil {
			log.Printf("[Main] Ops server stopped: %v", err)
		}
	}()

	handler := middleware.PanicRecovery(corsMiddleware(router))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[Main] Server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
