package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/studyshare/materials-api/docs"
	"github.com/studyshare/materials-api/internal/api/handler"
	"github.com/studyshare/materials-api/internal/api/middleware"
	"github.com/studyshare/materials-api/internal/core/ports"
	"github.com/studyshare/materials-api/internal/core/service"
	mongodb "github.com/studyshare/materials-api/internal/infrastructure/db/mongo"
	redisdb "github.com/studyshare/materials-api/internal/infrastructure/db/redis"
	"github.com/studyshare/materials-api/internal/infrastructure/http/handlers"
)

// Dependencies carries the externally constructed clients the router wires
// into repositories, services, and handlers.
type Dependencies struct {
	Mongo          *mongo.Database
	Redis          *redis.Client
	Blobs          ports.BlobStore
	Activity       handler.ActivityPublisher
	JWTSecret      string
	AllowedOrigins []string
	Logger         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     deps.AllowedOrigins,
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("studyshare"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(deps.Mongo)
	subjectRepo := mongodb.NewSubjectRepository(deps.Mongo)
	materialRepo := mongodb.NewMaterialRepository(deps.Mongo)
	urlCache := redisdb.NewURLCache(deps.Redis)

	authService := service.NewAuthService(authRepo, deps.JWTSecret, 24*time.Hour)
	subjectService := service.NewSubjectService(subjectRepo, materialRepo, deps.Blobs, deps.Logger)
	materialService := service.NewMaterialService(materialRepo, subjectRepo, deps.Blobs, urlCache, deps.Logger)

	authHandler := handler.NewAuthHandler(authService)
	subjectHandler := handler.NewSubjectHandler(subjectService, deps.Activity)
	materialHandler := handler.NewMaterialHandler(materialService, deps.Activity)

	auth := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RequireAdmin()

	// --- API routes ---
	api := e.Group("/api")

	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/signin", authHandler.Signin)
	api.POST("/auth/admin/signup", authHandler.AdminSignup)
	api.POST("/auth/admin/signin", authHandler.AdminSignin)

	subjects := api.Group("/subjects", auth)
	subjects.POST("/create", subjectHandler.Create)
	subjects.GET("", subjectHandler.List)
	subjects.DELETE("/:id", subjectHandler.Delete)

	materials := api.Group("/materials", auth)
	materials.POST("", materialHandler.Create)
	materials.GET("/download/:id", materialHandler.Download)
	materials.GET("/url/:id", materialHandler.GetURL)
	materials.GET("/:subjectId", materialHandler.ListBySubject)
	materials.DELETE("/:id", materialHandler.Delete)

	// Admin mirror of the subject/material surface.
	admin := api.Group("/admin", auth, adminOnly)
	admin.GET("/subjects", subjectHandler.List)
	admin.POST("/subjects", subjectHandler.Create)
	admin.DELETE("/subjects/:id", subjectHandler.Delete)
	admin.DELETE("/materials/:id", materialHandler.Delete)
	admin.GET("/materials/download/:id", materialHandler.Download)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
