package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/schema"
	"github.com/gorilla/sessions"
	"github.com/oViqa/Raihan/internal/config"
	"github.com/oViqa/Raihan/internal/handlers"
	"github.com/oViqa/Raihan/internal/imagestore"
	"github.com/oViqa/Raihan/internal/store"
)

func main() {
	// Configure slog as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	// Run Migrations
	if err := db.Migrate("migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Image storage: Cloudinary when configured, local disk otherwise
	var images imagestore.Storage
	if cfg.CloudinaryURL != "" {
		images, err = imagestore.NewCloudinaryStorage(cfg.CloudinaryURL)
		if err != nil {
			slog.Error("Failed to initialize Cloudinary storage", "error", err)
			os.Exit(1)
		}
		slog.Info("Product images stored on Cloudinary")
	} else {
		images, err = imagestore.NewDiskStorage(cfg.UploadDir)
		if err != nil {
			slog.Error("Failed to initialize upload directory", "error", err)
			os.Exit(1)
		}
		slog.Info("Product images stored on local disk", "dir", cfg.UploadDir)
	}

	// 5. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// Form decoder shared by the admin handlers
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	// 6. Setup Handlers
	adminHandler := &handlers.AdminHandler{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
		Images:       images,
		Decoder:      decoder,
	}
	shopHandler := &handlers.ShopHandler{
		Store:         db,
		Templates:     templates,
		SessionStore:  sessionStore,
		WhatsAppPhone: cfg.WhatsAppPhone,
	}
	apiHandler := &handlers.APIHandler{
		Store:     db,
		JWTSecret: cfg.JWTSecret,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate limiter for the login endpoints
	rateLimiter := handlers.NewRateLimiter(10 * time.Second)

	// Public Routes
	mux.HandleFunc("/", shopHandler.Index)
	mux.HandleFunc("/products", shopHandler.ListProducts)
	mux.HandleFunc("/products/view", shopHandler.ShowProduct)
	mux.HandleFunc("/products/order", shopHandler.OrderRedirect)
	mux.HandleFunc("/about", shopHandler.About)
	mux.HandleFunc("/contact", shopHandler.Contact)

	// Auth
	mux.HandleFunc("/login", adminHandler.LoginGet)
	mux.HandleFunc("POST /login", rateLimiter.Middleware(adminHandler.LoginPost))
	mux.HandleFunc("/logout", adminHandler.Logout)

	// Protected Routes
	mux.HandleFunc("/admin", adminHandler.AuthMiddleware(adminHandler.Dashboard))

	mux.HandleFunc("/admin/products", adminHandler.AuthMiddleware(adminHandler.ListProducts))
	mux.HandleFunc("/admin/products/new", adminHandler.AuthMiddleware(adminHandler.AddProductForm))
	mux.HandleFunc("POST /admin/products", adminHandler.AuthMiddleware(adminHandler.CreateProduct))
	mux.HandleFunc("/admin/products/edit", adminHandler.AuthMiddleware(adminHandler.EditProductForm))
	mux.HandleFunc("POST /admin/products/update", adminHandler.AuthMiddleware(adminHandler.UpdateProduct))
	mux.HandleFunc("POST /admin/products/delete", adminHandler.AuthMiddleware(adminHandler.DeleteProduct))
	mux.HandleFunc("POST /admin/products/stock", adminHandler.AuthMiddleware(adminHandler.UpdateProductStock))

	mux.HandleFunc("/admin/categories", adminHandler.AuthMiddleware(adminHandler.ListCategories))
	mux.HandleFunc("/admin/categories/new", adminHandler.AuthMiddleware(adminHandler.AddCategoryForm))
	mux.HandleFunc("POST /admin/categories", adminHandler.AuthMiddleware(adminHandler.CreateCategory))
	mux.HandleFunc("/admin/categories/edit", adminHandler.AuthMiddleware(adminHandler.EditCategoryForm))
	mux.HandleFunc("POST /admin/categories/update", adminHandler.AuthMiddleware(adminHandler.UpdateCategory))
	mux.HandleFunc("POST /admin/categories/delete", adminHandler.AuthMiddleware(adminHandler.DeleteCategory))

	mux.HandleFunc("/admin/admins", adminHandler.AuthMiddleware(adminHandler.ListAdmins))
	mux.HandleFunc("/admin/admins/new", adminHandler.AuthMiddleware(adminHandler.AddAdminForm))
	mux.HandleFunc("POST /admin/admins", adminHandler.AuthMiddleware(adminHandler.CreateAdmin))
	mux.HandleFunc("/admin/admins/edit", adminHandler.AuthMiddleware(adminHandler.EditAdminForm))
	mux.HandleFunc("POST /admin/admins/update", adminHandler.AuthMiddleware(adminHandler.UpdateAdmin))
	mux.HandleFunc("POST /admin/admins/delete", adminHandler.AuthMiddleware(adminHandler.DeleteAdmin))

	// 7. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// JSON API routes sit outside the CSRF wrapper: their clients
	// authenticate with the signed token, not a browser session.
	root := http.NewServeMux()
	root.HandleFunc("POST /api/admin/login", rateLimiter.Middleware(apiHandler.Login))
	root.Handle("/", CSRF(mux))

	// Chain: Logger -> Security Headers -> CSRF (pages) -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			root,
		),
	)

	// 8. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
