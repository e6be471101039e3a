package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foodtook_backoffice/pkg/catalog"
	"foodtook_backoffice/pkg/config"
	"foodtook_backoffice/pkg/database"
	"foodtook_backoffice/pkg/directory"
	"foodtook_backoffice/pkg/logger"
	"foodtook_backoffice/pkg/metrics"
	"foodtook_backoffice/pkg/middleware"
	"foodtook_backoffice/pkg/registration"
	"foodtook_backoffice/pkg/routes"
	"foodtook_backoffice/pkg/services"
	"foodtook_backoffice/pkg/session"
)

const serviceName = "foodtook-backoffice"

func main() {
	config.LoadConfig()

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       config.AppConfig.LogLevel,
		Environment: config.AppConfig.Environment,
		ServiceName: serviceName,
	}); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Demo store
	log.Println("🔌 Initializing database connection...")
	if err := database.InitDatabase(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.CloseDatabase()

	if err := database.AutoMigrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	if config.DemoSeedEnabled() {
		seeded, err := catalog.SeedDemo(ctx, database.DB)
		switch {
		case err != nil:
			log.Printf("⚠️  Warning: demo seed failed: %v", err)
		case seeded:
			log.Println("🌱 Demo data seeded")
		}
	}

	geocoder := services.NewGeocoder(config.AppConfig.GeocoderURL, config.AppConfig.GeocoderUserAgent, 10*time.Second)
	deps := routes.Deps{
		DB:       database.DB,
		Catalog:  catalog.NewStore(database.DB),
		Tracker:  session.NewTracker(config.JWTDuration()),
		Geocoder: geocoder,
	}
	var dir session.Directory = directory.Offline{}

	// Firebase: auth, Firestore, FCM, storage
	if err := services.InitFirebase(ctx); err != nil {
		log.Printf("⚠️  Warning: Firebase initialization failed: %v", err)
		log.Println("⚠️  Sign-in and registration are disabled")
		deps.Moderation = catalog.NewModeration(deps.Catalog, nil)
	} else {
		log.Println("✅ Firebase initialized successfully")
		defer services.CloseFirebase()

		fs := directory.NewFirestore(services.UsersDB(), services.AdminDB())
		dir = fs
		deps.Moderation = catalog.NewModeration(deps.Catalog, fs)

		if err := services.InitFCM(ctx); err != nil {
			log.Printf("⚠️  Warning: FCM initialization failed: %v", err)
		} else {
			log.Println("✅ FCM initialized successfully")
		}
		if err := services.InitGCPStorage(ctx); err != nil {
			log.Printf("⚠️  Warning: GCP Storage initialization failed: %v", err)
		} else {
			log.Println("✅ GCP Storage initialized successfully")
			defer services.CloseGCPStorage()
		}

		identity, err := services.NewIdentity(ctx)
		if err != nil {
			log.Printf("⚠️  Warning: identity service unavailable: %v", err)
		} else {
			log.Println("✅ Identity service initialized successfully")
			deps.Auth = identity
			svc, closeRegistration := newRegistration(ctx, identity, geocoder)
			defer closeRegistration()
			deps.Registration = svc
		}
	}

	deps.Resolver = session.NewResolver(dir, session.Options{
		AdminEntryPath: config.AppConfig.AdminEntryPath,
		StaffEntryPath: config.AppConfig.StaffEntryPath,
		LookupTimeout:  config.AppConfig.LookupTimeout,
	})
	routes.Setup(deps)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(logger.Middleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(metrics.NewHTTPMetrics(serviceName).Middleware())
	router.Use(middleware.ErrorMiddleware())

	store := cookie.NewStore([]byte(config.AppConfig.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(config.JWTDuration().Seconds()),
		HttpOnly: true,
		Secure:   config.AppConfig.CookieSecure == "true",
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("foodtook_session", store))

	setupCORS(router)

	// registration documents are capped at 10 MB each
	router.MaxMultipartMemory = 10 << 20

	setupRoutes(router)
	router.NoRoute(middleware.NotFoundHandler())

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.Port,
		Handler: router,
	}

	go func() {
		log.Printf("🚀 Server running in %s mode\n", config.AppConfig.Environment)
		log.Printf("📡 Server listening on http://localhost:%s\n", config.AppConfig.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().Error("server forced to shutdown", zap.Error(err))
		return
	}

	log.Println("✅ Server exited gracefully")
}

// newRegistration wires the registration wizards to Firestore, GCS, FCM and the optional
// broker and captcha services. The returned func closes the broker and captcha clients.
func newRegistration(ctx context.Context, identity *services.Identity, geocoder *services.Geocoder) (*registration.Service, func()) {
	cfg := config.AppConfig
	d := registration.Deps{
		Accounts:  identity,
		Blobs:     services.GCSBlobStore{},
		Store:     registration.NewFirestoreStore(services.UsersDB()),
		Notifier:  services.FCMNotifier{},
		Publisher: services.NopPublisher{},
		Geocoder:  geocoder,
	}
	var closers []func() error

	if cfg.RabbitMQURL != "" {
		pub, err := services.InitRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("⚠️  Warning: RabbitMQ connection failed, events are not published: %v", err)
		} else {
			log.Println("✅ RabbitMQ connected")
			d.Publisher = pub
			closers = append(closers, pub.Close)
		}
	}

	if cfg.RecaptchaProjectID != "" && cfg.RecaptchaSiteKey != "" {
		rc, err := services.NewRecaptcha(ctx, cfg.RecaptchaProjectID, cfg.RecaptchaSiteKey, cfg.RecaptchaMinScore)
		if err != nil {
			log.Printf("⚠️  Warning: reCAPTCHA initialization failed: %v", err)
		} else {
			log.Println("✅ reCAPTCHA Enterprise initialized successfully")
			d.Captcha = rc
			closers = append(closers, rc.Close)
		}
	}

	return registration.NewService(d), func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.GetLogger().Warn("failed to close client", zap.Error(err))
			}
		}
	}
}

// setupCORS allows the configured back-office origins, or any origin in development
func setupCORS(router *gin.Engine) {
	isProduction := config.IsProduction()

	defaultOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}

	allowOrigins := defaultOrigins
	if config.AppConfig.AllowedOrigins != "" {
		allowOrigins = parseOrigins(config.AppConfig.AllowedOrigins)
	}

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if isProduction {
		corsConfig.AllowOrigins = allowOrigins
		log.Printf("🔒 CORS enabled for origins: %v\n", allowOrigins)
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool {
			return true
		}
		log.Println("🔓 CORS enabled for all origins (development mode)")
	}

	router.Use(cors.New(corsConfig))
}

// parseOrigins splits comma-separated origin string
func parseOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setupRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "FoodTook back office is running...")
	})
	router.GET("/metrics", gin.WrapH(metrics.GetPrometheusHandler()))

	api := routes.Register(router)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"environment": config.AppConfig.Environment,
			"database":    config.AppConfig.DemoDBDriver,
			"firebase":    services.AuthClient() != nil,
			"fcm":         services.GetServiceStatus(),
		})
	})
}
