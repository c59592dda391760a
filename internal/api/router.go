package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/salon/booking-api/docs"
	"github.com/salon/booking-api/internal/api/handler"
	"github.com/salon/booking-api/internal/api/middleware"
	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/ports"
)

// Authenticator is the auth surface plus the token resolver used by the
// session middleware.
type Authenticator interface {
	ports.AuthService
	ports.IdentityResolver
}

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Auth     Authenticator
	Bookings ports.BookingService
	Reviews  ports.ReviewService
	Feedback ports.FeedbackService
	Catalog  ports.CatalogService
	Users    ports.UserService
	Schedule ports.ScheduleService

	// Checks are run by the readiness probe, keyed by dependency name.
	Checks map[string]handler.Check
	Log    zerolog.Logger
	// PublicDocs serves /swagger without a session; otherwise it is admin only.
	PublicDocs bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Pre(middleware.CORS())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("salon"))
	e.Use(middleware.Session(d.Auth))

	// --- Auth ---
	auth := handler.NewAuthHandler(d.Auth)
	e.GET("/auth", auth.Me)
	e.POST("/auth", auth.Action)

	// --- Resources ---
	bookings := handler.NewBookingHandler(d.Bookings)
	e.GET("/bookings", bookings.Get)
	e.POST("/bookings", bookings.Create)
	e.PUT("/bookings", bookings.Update)
	e.DELETE("/bookings", bookings.Delete)

	reviews := handler.NewReviewHandler(d.Reviews)
	e.GET("/reviews", reviews.List)
	e.POST("/reviews", reviews.Create)
	e.PUT("/reviews", reviews.Moderate)
	e.DELETE("/reviews", reviews.Delete)

	feedback := handler.NewFeedbackHandler(d.Feedback)
	e.GET("/feedback", feedback.List)
	e.POST("/feedback", feedback.Submit)
	e.PUT("/feedback", feedback.MarkRead)

	catalog := handler.NewCatalogHandler(d.Catalog)
	e.GET("/services", catalog.Get)
	e.POST("/services", catalog.Create)
	e.PUT("/services", catalog.Update)
	e.DELETE("/services", catalog.Delete)

	users := handler.NewUserHandler(d.Users)
	e.GET("/users", users.Get)
	e.POST("/users", users.Create)
	e.PUT("/users", users.Update)
	e.DELETE("/users", users.Delete)

	schedule := handler.NewScheduleHandler(d.Schedule)
	e.GET("/schedule", schedule.List)
	e.POST("/schedule", schedule.Upsert)

	// --- Ops ---
	e.GET("/health", handler.NewHealthHandler().Liveness)                // liveness  – is the process alive?
	e.GET("/health/ready", handler.NewReadinessHandler(d.Checks).Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	if d.PublicDocs {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	} else {
		e.GET("/swagger/*", echoSwagger.WrapHandler, middleware.RBAC(domain.RoleAdmin))
	}

	return e
}
