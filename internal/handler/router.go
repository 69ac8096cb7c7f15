package handler

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"slot-booking/internal/handler/api"
	"slot-booking/internal/handler/middleware"
	"slot-booking/internal/pkg/config"
	"slot-booking/internal/pkg/metrics"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth    *api.AuthHandler
	Slot    *api.SlotHandler
	Booking *api.BookingHandler
	Health  *api.HealthHandler
}

type Middlewares struct {
	Auth      *middleware.AuthMiddleware
	RateLimit *middleware.RateLimiter
	Logger    *middleware.Logger
}

func NewRouter(engine *gin.Engine, cfg config.Config, m *metrics.Metrics, h Handlers, mw Middlewares) {
	setupMiddleware(engine, cfg, m, mw)
	setupRoutes(engine, m, h, mw)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, m *metrics.Metrics, mw Middlewares) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(mw.Logger.Middleware())
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, m *metrics.Metrics, h Handlers, mw Middlewares) {
	engine.GET("/health", h.Health.Check)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Limits apply after authentication so buckets are keyed by user.
	limited := []gin.HandlerFunc{mw.RateLimit.Middleware()}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register, Mw: limited},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login, Mw: limited},
			})

			authRequired := auth.Group("")
			authRequired.Use(mw.Auth.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
				{Method: http.MethodPut, Path: "/profile", Handler: h.Auth.UpdateProfile, Mw: limited},
			})
		}

		slots := apiGroup.Group("/slots")
		slots.Use(mw.Auth.RequireAuth())
		{
			addRoutes(slots, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Slot.List},
				{Method: http.MethodGet, Path: "/available", Handler: h.Slot.ListAvailable},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Slot.Get},
				{Method: http.MethodPost, Path: "", Handler: h.Slot.Create, Mw: limited},
				{Method: http.MethodPut, Path: "/:id/status", Handler: h.Slot.SetStatus, Mw: limited},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(mw.Auth.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Booking.List},
				{Method: http.MethodGet, Path: "/my", Handler: h.Booking.Mine},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
				{Method: http.MethodPost, Path: "", Handler: h.Booking.Create, Mw: limited},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Booking.Update, Mw: limited},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Booking.Delete, Mw: limited},
				{Method: http.MethodPut, Path: "/:id/status", Handler: h.Booking.SetStatus, Mw: limited},
			})
		}
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(slices.Clone(r.Mw), r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
