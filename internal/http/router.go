package http

import (
	"chavecerta-backend/internal/handlers"
	"chavecerta-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	accountHandler *handlers.AccountHandler,
	listingHandler *handlers.ListingHandler,
	contractHandler *handlers.ContractHandler,
	paymentHandler *handlers.PaymentHandler,
	reviewHandler *handlers.ReviewHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes - Authentication and account lifecycle
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/activate", authHandler.Activate).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Health and metrics
	r.HandleFunc("/health", healthHandler.Check).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Listings - reads are public, mutations require authentication. The
	// optional principal resolver lets an authenticated read see the same
	// data without a second token parse.
	listingsPublic := r.PathPrefix("/api/listings").Subrouter()
	listingsPublic.Use(authMiddleware.ResolvePrincipal)
	listingsPublic.HandleFunc("", listingHandler.ListListings).Methods("GET")
	listingsPublic.HandleFunc("/available", listingHandler.ListAvailable).Methods("GET")
	listingsPublic.HandleFunc("/{id:[0-9]+}", listingHandler.GetListing).Methods("GET")

	listingsAPI := r.PathPrefix("/api/listings").Subrouter()
	listingsAPI.Use(authMiddleware.Authenticate)
	listingsAPI.HandleFunc("", listingHandler.CreateListing).Methods("POST")
	listingsAPI.HandleFunc("/{id:[0-9]+}", listingHandler.UpdateListing).Methods("PUT")
	listingsAPI.HandleFunc("/{id:[0-9]+}", listingHandler.DeleteListing).Methods("DELETE")

	// Protected routes - Accounts
	accountsAPI := r.PathPrefix("/api/accounts").Subrouter()
	accountsAPI.Use(authMiddleware.Authenticate)
	accountsAPI.HandleFunc("", accountHandler.ListAccounts).Methods("GET")
	accountsAPI.HandleFunc("/me", accountHandler.Me).Methods("GET")
	accountsAPI.HandleFunc("/{id:[0-9]+}", accountHandler.GetAccount).Methods("GET")
	accountsAPI.HandleFunc("/{id:[0-9]+}", accountHandler.UpdateAccount).Methods("PUT")
	accountsAPI.HandleFunc("/{id:[0-9]+}", accountHandler.DeleteAccount).Methods("DELETE")
	accountsAPI.HandleFunc("/{id:[0-9]+}/profile-image", accountHandler.UploadProfileImage).Methods("POST")

	// Protected routes - Contracts
	contractsAPI := r.PathPrefix("/api/contracts").Subrouter()
	contractsAPI.Use(authMiddleware.Authenticate)
	contractsAPI.HandleFunc("", contractHandler.ListContracts).Methods("GET")
	contractsAPI.HandleFunc("", contractHandler.CreateContract).Methods("POST")
	contractsAPI.HandleFunc("/{id:[0-9]+}", contractHandler.GetContract).Methods("GET")
	contractsAPI.HandleFunc("/{id:[0-9]+}", contractHandler.UpdateContract).Methods("PUT")
	contractsAPI.HandleFunc("/{id:[0-9]+}", contractHandler.DeleteContract).Methods("DELETE")

	// Protected routes - Payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.HandleFunc("", paymentHandler.ListPayments).Methods("GET")
	paymentsAPI.HandleFunc("", paymentHandler.CreatePayment).Methods("POST")
	paymentsAPI.HandleFunc("/pending", paymentHandler.ListPendingPayments).Methods("GET")
	paymentsAPI.HandleFunc("/online/order", paymentHandler.CreateOnlineOrder).Methods("POST")
	paymentsAPI.HandleFunc("/online/verify", paymentHandler.VerifyOnlinePayment).Methods("POST")
	paymentsAPI.HandleFunc("/{id:[0-9]+}", paymentHandler.GetPayment).Methods("GET")
	paymentsAPI.HandleFunc("/{id:[0-9]+}", paymentHandler.UpdatePayment).Methods("PUT")
	paymentsAPI.HandleFunc("/{id:[0-9]+}", paymentHandler.DeletePayment).Methods("DELETE")
	paymentsAPI.HandleFunc("/{id:[0-9]+}/receipt", paymentHandler.DownloadReceipt).Methods("GET")

	// Protected routes - Reviews
	reviewsAPI := r.PathPrefix("/api/reviews").Subrouter()
	reviewsAPI.Use(authMiddleware.Authenticate)
	reviewsAPI.HandleFunc("", reviewHandler.ListReviews).Methods("GET")
	reviewsAPI.HandleFunc("", reviewHandler.CreateReview).Methods("POST")
	reviewsAPI.HandleFunc("/{id:[0-9]+}", reviewHandler.GetReview).Methods("GET")
	reviewsAPI.HandleFunc("/{id:[0-9]+}", reviewHandler.UpdateReview).Methods("PUT")
	reviewsAPI.HandleFunc("/{id:[0-9]+}", reviewHandler.DeleteReview).Methods("DELETE")

	return r
}
