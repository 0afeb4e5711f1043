package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stitch-backend/internal/handlers"
	"stitch-backend/internal/middleware"
	"stitch-backend/internal/models"
	"stitch-backend/internal/realtime"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	totpHandler *handlers.TOTPHandler,
	quoteHandler *handlers.QuoteHandler,
	orderHandler *handlers.OrderHandler,
	productionHandler *handlers.ProductionHandler,
	dashboardHandler *handlers.DashboardHandler,
	supplierHandler *handlers.SupplierHandler,
	productHandler *handlers.ProductHandler,
	messageHandler *handlers.MessageHandler,
	assistantHandler *handlers.AssistantHandler,
	paymentHandler *handlers.PaymentHandler,
	healthHandler *handlers.HealthHandler,
	hub *realtime.Hub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Registered on the router (not the outer wrap) so the matched path
	// template is available for the metric labels.
	r.Use(middleware.MetricsMiddleware)

	// Public routes
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/verify-totp", authHandler.VerifyTOTP).Methods("POST")

	// The quote form and the assistant are public: anonymous visitors are
	// leads. A valid token links the quote to the buyer's account.
	r.Handle("/api/quotes", authMiddleware.OptionalAuthenticate(
		http.HandlerFunc(quoteHandler.Create))).Methods("POST")
	r.HandleFunc("/api/assistant/chat", assistantHandler.Chat).Methods("POST")

	// Public catalog
	r.Handle("/api/products", authMiddleware.OptionalAuthenticate(
		http.HandlerFunc(productHandler.List))).Methods("GET")
	r.HandleFunc("/api/products/{id:[0-9]+}", productHandler.Get).Methods("GET")

	// Quotes
	quotesAPI := r.PathPrefix("/api/quotes").Subrouter()
	quotesAPI.Use(authMiddleware.Authenticate)
	quotesAPI.HandleFunc("", quoteHandler.List).Methods("GET")
	quotesAPI.HandleFunc("/{id:[0-9]+}", quoteHandler.Get).Methods("GET")
	quotesAPI.HandleFunc("/{id:[0-9]+}/pdf", quoteHandler.PDF).Methods("GET")
	quotesAPI.Handle("/{id:[0-9]+}/status", authMiddleware.RequireAdmin(
		http.HandlerFunc(quoteHandler.UpdateStatus))).Methods("PATCH")
	quotesAPI.HandleFunc("/{id:[0-9]+}/convert", quoteHandler.Convert).Methods("POST")

	// Orders
	ordersAPI := r.PathPrefix("/api/orders").Subrouter()
	ordersAPI.Use(authMiddleware.Authenticate)
	ordersAPI.HandleFunc("", orderHandler.List).Methods("GET")
	ordersAPI.HandleFunc("/{id:[0-9]+}", orderHandler.Get).Methods("GET")
	ordersAPI.HandleFunc("/{id:[0-9]+}/progress", orderHandler.Progress).Methods("GET")
	ordersAPI.Handle("/{id:[0-9]+}/status", authMiddleware.RequireRole(models.RoleAdmin, models.RoleSupplier)(
		http.HandlerFunc(orderHandler.UpdateStatus))).Methods("PATCH")
	ordersAPI.Handle("/{id:[0-9]+}/supplier", authMiddleware.RequireAdmin(
		http.HandlerFunc(orderHandler.AssignSupplier))).Methods("PUT")
	ordersAPI.Handle("/{id:[0-9]+}/supplier-matches", authMiddleware.RequireAdmin(
		http.HandlerFunc(orderHandler.MatchSuppliers))).Methods("GET")
	ordersAPI.HandleFunc("/{orderID:[0-9]+}/stages", productionHandler.ListStages).Methods("GET")
	ordersAPI.HandleFunc("/{orderID:[0-9]+}/messages", messageHandler.ByOrder).Methods("GET")
	ordersAPI.HandleFunc("/{orderID:[0-9]+}/deposit", paymentHandler.CreateDeposit).Methods("POST")

	// Production stages: suppliers and admins write, everyone on the order reads
	stagesAPI := r.PathPrefix("/api/stages").Subrouter()
	stagesAPI.Use(authMiddleware.RequireRole(models.RoleAdmin, models.RoleSupplier))
	stagesAPI.HandleFunc("", productionHandler.CreateStage).Methods("POST")
	stagesAPI.HandleFunc("/{id:[0-9]+}", productionHandler.UpdateStage).Methods("PATCH")

	// Payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.HandleFunc("/verify", paymentHandler.VerifyDeposit).Methods("POST")

	// Dashboards
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("/buyer", dashboardHandler.Buyer).Methods("GET")
	dashboardAPI.Handle("/admin", authMiddleware.RequireAdmin(
		http.HandlerFunc(dashboardHandler.Admin))).Methods("GET")
	dashboardAPI.Handle("/funnel", authMiddleware.RequireAdmin(
		http.HandlerFunc(dashboardHandler.Funnel))).Methods("GET")
	dashboardAPI.Handle("/leads", authMiddleware.RequireAdmin(
		http.HandlerFunc(dashboardHandler.Leads))).Methods("GET")

	// Suppliers (admin management)
	suppliersAPI := r.PathPrefix("/api/suppliers").Subrouter()
	suppliersAPI.Use(authMiddleware.RequireAdmin)
	suppliersAPI.HandleFunc("", supplierHandler.Create).Methods("POST")
	suppliersAPI.HandleFunc("", supplierHandler.List).Methods("GET")
	suppliersAPI.HandleFunc("/{id:[0-9]+}", supplierHandler.Get).Methods("GET")
	suppliersAPI.HandleFunc("/{id:[0-9]+}", supplierHandler.Update).Methods("PUT")

	// Products (admin management; public reads are above)
	productsAPI := r.PathPrefix("/api/products").Subrouter()
	productsAPI.Use(authMiddleware.RequireAdmin)
	productsAPI.HandleFunc("", productHandler.Create).Methods("POST")
	productsAPI.HandleFunc("/{id:[0-9]+}", productHandler.Update).Methods("PUT")
	productsAPI.HandleFunc("/{id:[0-9]+}", productHandler.Delete).Methods("DELETE")
	productsAPI.HandleFunc("/{id:[0-9]+}/image", productHandler.UploadImage).Methods("POST")
	productsAPI.HandleFunc("/{id:[0-9]+}/generate-image", productHandler.GenerateImage).Methods("POST")

	// Messages
	messagesAPI := r.PathPrefix("/api/messages").Subrouter()
	messagesAPI.Use(authMiddleware.Authenticate)
	messagesAPI.HandleFunc("", messageHandler.Send).Methods("POST")
	messagesAPI.HandleFunc("/with/{userID:[0-9]+}", messageHandler.Conversation).Methods("GET")
	messagesAPI.HandleFunc("/{id:[0-9]+}/read", messageHandler.MarkRead).Methods("POST")

	// Users
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("/me", userHandler.Me).Methods("GET")
	usersAPI.Handle("", authMiddleware.RequireAdmin(
		http.HandlerFunc(userHandler.List))).Methods("GET")
	usersAPI.Handle("/{id:[0-9]+}/active", authMiddleware.RequireAdmin(
		http.HandlerFunc(userHandler.SetActive))).Methods("PATCH")

	// Two-factor setup (admin accounts)
	totpAPI := r.PathPrefix("/api/totp").Subrouter()
	totpAPI.Use(authMiddleware.RequireAdmin)
	totpAPI.HandleFunc("/setup", totpHandler.Setup).Methods("POST")
	totpAPI.HandleFunc("/enable", totpHandler.Enable).Methods("POST")
	totpAPI.HandleFunc("/disable", totpHandler.Disable).Methods("POST")

	// Realtime change feed
	r.HandleFunc("/ws", hub.HandleWebSocket)

	// Operational endpoints
	r.HandleFunc("/health", healthHandler.Check).Methods("GET")
	r.HandleFunc("/health/live", healthHandler.Live).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
