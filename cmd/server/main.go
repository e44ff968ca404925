package main

import (
	"encoding/gob"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"gift-registry-platform/internal/config"
	"gift-registry-platform/internal/database"
	"gift-registry-platform/internal/handlers"
	"gift-registry-platform/internal/middleware"
	"gift-registry-platform/internal/models"
	"gift-registry-platform/internal/repositories"
	"gift-registry-platform/internal/services"
)

func main() {
	// Register types for session serialization
	gob.Register(&models.Cart{})
	gob.Register(models.CartLineItem{})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database connection
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	log.Println("Database connection established successfully")

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Create session store
	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30, // 30 days
		HttpOnly: true,
		Secure:   cfg.Server.Env == "production",
		SameSite: http.SameSiteLaxMode,
	}
	sessionMiddleware := middleware.NewSessionMiddleware(sessionStore)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	giftRepo := repositories.NewGiftRepository(db)
	rsvpRepo := repositories.NewRSVPRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Initialize storage: R2 when configured, local disk otherwise
	r2Service, r2Err := services.NewR2Service(cfg.R2)
	storage := services.NewStorageService(r2Service, r2Err, "uploads", cfg.Server.SiteURL+"/uploads")

	// Initialize services
	paymentProvider := services.NewMercadoPagoService(cfg.MercadoPago)
	idempotencyStore := services.NewIdempotencyStore(cfg.Redis.URL)

	registryService := services.NewRegistryService(eventRepo, giftRepo, rsvpRepo, settingsRepo)
	checkoutService := services.NewCheckoutService(eventRepo, giftRepo, settingsRepo,
		paymentProvider, idempotencyStore, cfg.Server.SiteURL)
	connectService := services.NewConnectService(eventRepo, paymentProvider)
	authService := services.NewAuthService(userRepo)
	settingsService := services.NewSettingsService(settingsRepo, eventRepo)
	imageService := services.NewImageService(storage)

	// Initialize handlers
	publicHandler := handlers.NewPublicHandler(registryService)
	cartHandler := handlers.NewCartHandler(registryService, sessionStore)
	paymentHandler := handlers.NewPaymentHandler(connectService, checkoutService)
	dashboardHandler := handlers.NewDashboardHandler(registryService, imageService)
	authHandler := handlers.NewAuthHandler(authService, sessionMiddleware)
	adminHandler := handlers.NewAdminHandler(settingsService, cfg.Server.AdminToken)

	loginLimiter := middleware.NewLoginRateLimiter(5, 15*time.Minute)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.ErrorHandlingMiddleware)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))
	r.Use(sessionMiddleware.LoadUser)

	// Static pages and assets
	r.Get("/", publicHandler.Home)
	r.Get("/login", publicHandler.LoginPage)
	r.Get("/mp-callback", paymentHandler.Callback)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir("uploads"))))

	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware.RequireAuth)
		r.Get("/dashboard", publicHandler.DashboardPage)
	})

	// Auth endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.LoginRateLimit(loginLimiter))
		r.Post("/api/register", authHandler.Register)
		r.Post("/api/login", authHandler.Login)
	})
	r.Post("/api/logout", authHandler.Logout)

	// Public page data and guest actions
	r.Get("/api/page-data", publicHandler.PageData)
	r.Post("/api/events/{eventID}/rsvp", publicHandler.SubmitRSVP)
	r.Get("/api/cart", cartHandler.GetCart)
	r.Post("/api/cart/add", cartHandler.AddItem)
	r.Post("/api/cart/remove", cartHandler.RemoveItem)
	r.Post("/api/cart/clear", cartHandler.ClearCart)
	r.Post("/api/create-payment-preference", paymentHandler.CreatePaymentPreference)
	r.Post("/create-payment-preference", paymentHandler.CreatePaymentPreference)

	// Owner endpoints
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware.RequireAuth)
		r.Get("/api/dashboard", dashboardHandler.GetPage)
		r.Post("/api/save-registry", dashboardHandler.SavePage)
		r.Get("/api/rsvps", dashboardHandler.ListRSVPs)
		r.Post("/api/upload-image", dashboardHandler.UploadImage)
		r.Post("/api/create-mp-connect-link", paymentHandler.CreateConnectLink)
		r.Get("/api/get-mp-balance", paymentHandler.GetBalance)
		r.Post("/api/mp-disconnect", paymentHandler.Disconnect)
		r.Post("/api/account/email", authHandler.UpdateEmail)
		r.Post("/api/account/password", authHandler.UpdatePassword)

		// Route names used by the original page scripts.
		r.Post("/create-mp-connect-link", paymentHandler.CreateConnectLink)
		r.Post("/get-mp-balance", paymentHandler.GetBalance)
	})

	// Platform administration
	r.Group(func(r chi.Router) {
		r.Use(adminHandler.RequireToken)
		r.Get("/api/admin/settings", adminHandler.GetSettings)
		r.Put("/api/admin/settings", adminHandler.UpdateSettings)
		r.Put("/api/admin/events/{eventID}/custom-fee", adminHandler.SetCustomFee)
	})

	// Catch-all: public event pages by slug and legacy id routes
	r.Get("/casamento/{id}", publicHandler.EventPage)
	r.Get("/evento/{id}", publicHandler.EventPage)
	r.Get("/{slug}", publicHandler.EventPage)

	serverAddr := ":" + cfg.Server.Port
	log.Printf("Server starting on %s", serverAddr)
	log.Fatal(http.ListenAndServe(serverAddr, r))
}
