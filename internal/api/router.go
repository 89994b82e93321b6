package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/davixiao/MeetTheDev/internal/api/handler"
	"github.com/davixiao/MeetTheDev/internal/api/middleware"
	"github.com/davixiao/MeetTheDev/internal/core/ports"

	_ "github.com/davixiao/MeetTheDev/docs"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Auth     ports.AuthService
	Profiles ports.ProfileService
	Posts    ports.PostService
	Verifier ports.TokenVerifier
	// Limiter throttles the credential endpoints; nil disables throttling.
	Limiter middleware.Limiter
	// Checks back the readiness probe, keyed by dependency name.
	Checks map[string]handler.Check
	Logger zerolog.Logger
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "devconnector",
		Registerer: d.Registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Checks)
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	auth := middleware.Auth(d.Verifier)
	throttle := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	if d.Limiter != nil {
		throttle = middleware.RateLimit(d.Limiter, d.Logger)
	}

	api := e.Group("/api")

	// --- Users and auth ---
	authHandler := handler.NewAuthHandler(d.Auth)
	api.POST("/users", authHandler.Register, throttle)
	api.POST("/auth", authHandler.Login, throttle)
	api.GET("/auth", authHandler.Me, auth)

	// --- Profiles ---
	profileHandler := handler.NewProfileHandler(d.Profiles)
	profile := api.Group("/profile")
	profile.GET("", profileHandler.List)
	profile.GET("/user/:user_id", profileHandler.ByUser)
	profile.GET("/github/:username", profileHandler.Github)
	profile.GET("/me", profileHandler.Me, auth)
	profile.POST("", profileHandler.Upsert, auth)
	profile.DELETE("", profileHandler.Delete, auth)
	profile.PUT("/experience", profileHandler.AddExperience, auth)
	profile.DELETE("/experience/:exp_id", profileHandler.RemoveExperience, auth)
	profile.PUT("/education", profileHandler.AddEducation, auth)
	profile.DELETE("/education/:edu_id", profileHandler.RemoveEducation, auth)

	// --- Posts (all protected) ---
	postHandler := handler.NewPostHandler(d.Posts)
	posts := api.Group("/posts", auth)
	posts.POST("", postHandler.Create)
	posts.GET("", postHandler.List)
	posts.GET("/:id", postHandler.Get)
	posts.DELETE("/:id", postHandler.Delete)
	posts.PUT("/like/:id", postHandler.Like)
	posts.PUT("/unlike/:id", postHandler.Unlike)
	posts.POST("/comment/:id", postHandler.Comment)
	posts.DELETE("/comment/:id/:comment_id", postHandler.Uncomment)

	return e
}
