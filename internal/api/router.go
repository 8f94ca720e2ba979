package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/way2pg/way2pg-api/docs"
	"github.com/way2pg/way2pg-api/internal/api/handler"
	"github.com/way2pg/way2pg-api/internal/api/middleware"
	"github.com/way2pg/way2pg-api/internal/core/domain"
	"github.com/way2pg/way2pg-api/internal/core/ports"
	"github.com/way2pg/way2pg-api/internal/core/service"
	"github.com/way2pg/way2pg-api/internal/infrastructure/config"
	mongodb "github.com/way2pg/way2pg-api/internal/infrastructure/db/mongo"
	redisdb "github.com/way2pg/way2pg-api/internal/infrastructure/db/redis"
	"github.com/way2pg/way2pg-api/internal/infrastructure/media"
)

// Repositories bundles the Mongo-backed stores so main can run index creation
// before serving.
type Repositories struct {
	Users          *mongodb.UserRepository
	Accommodations *mongodb.AccommodationRepository
	Bookings       *mongodb.BookingRepository
}

// NewRepositories constructs all Mongo repositories on the given database.
func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:          mongodb.NewUserRepository(db),
		Accommodations: mongodb.NewAccommodationRepository(db),
		Bookings:       mongodb.NewBookingRepository(db),
	}
}

// NewRouter builds and returns the Echo instance with all routes registered.
// The mailer is shared with the notification pipeline; main owns its
// construction.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, repos *Repositories, mailer ports.Mailer, notifier ports.Notifier, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("way2pg"))

	// --- Dependencies ---
	resetCodes := redisdb.NewResetCodeStore(rdb)
	mediaStore := media.NewClient(media.Config{
		BaseURL: cfg.Media.BaseURL,
		APIKey:  cfg.Media.APIKey,
	})

	authService := service.NewAuthService(repos.Users, resetCodes, mailer, cfg.JWTSecret, 0, log)
	bookingService := service.NewBookingService(repos.Bookings, repos.Accommodations, repos.Users, notifier, log)
	accommodationService := service.NewAccommodationService(repos.Accommodations, repos.Bookings, repos.Users, mediaStore, log)
	adminService := service.NewAdminService(repos.Users, repos.Accommodations, repos.Bookings, mediaStore, log)

	authHandler := handler.NewAuthHandler(authService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	accommodationHandler := handler.NewAccommodationHandler(accommodationService)
	adminHandler := handler.NewAdminHandler(adminService)

	authRequired := middleware.Auth(cfg.JWTSecret, repos.Users)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/password-reset", authHandler.RequestPasswordReset)
	e.POST("/auth/password-reset/confirm", authHandler.ConfirmPasswordReset)

	// --- Public browsing ---
	e.GET("/v1/accommodations", accommodationHandler.Browse)
	e.GET("/v1/accommodations/:id", accommodationHandler.Get)

	// --- Listing management (owner/admin) ---
	manage := e.Group("/v1/accommodations", authRequired, middleware.RBAC(domain.RoleOwner, domain.RoleAdmin))
	manage.POST("", accommodationHandler.Create)
	manage.PUT("/:id", accommodationHandler.Update)
	manage.DELETE("/:id", accommodationHandler.Delete)
	manage.POST("/:id/images", accommodationHandler.UploadImage)

	owner := e.Group("/v1/owner", authRequired, middleware.RBAC(domain.RoleOwner))
	owner.GET("/accommodations", accommodationHandler.ListOwn)

	// --- Bookings (student) ---
	bookings := e.Group("/v1/bookings", authRequired, middleware.RBAC(domain.RoleStudent))
	bookings.POST("", bookingHandler.Create)
	bookings.GET("", bookingHandler.List)
	bookings.POST("/:id/cancel", bookingHandler.Cancel)

	// --- Admin ---
	admin := e.Group("/v1/admin", authRequired, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/owners/:id/approve", adminHandler.ApproveOwner)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	// --- Ops endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
