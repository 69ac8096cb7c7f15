package components

import (
	"slot-booking/internal/handler"
	"slot-booking/internal/handler/api"
	"slot-booking/internal/handler/middleware"
	"slot-booking/internal/handler/validation"
	"slot-booking/internal/infra/idempotency"
	"slot-booking/internal/pkg/config"
	"slot-booking/internal/usecase/commands"
	"slot-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewAuthHandler,
		api.NewSlotHandler,
		api.NewBookingHandler,
		NewHealthHandler,
		middleware.NewAuthMiddleware,
		NewRateLimiter,
		NewHandlers,
		NewMiddlewares,
	),
	fx.Invoke(
		validation.Register,
		handler.NewRouter,
	),
)

func NewAuthHandler(cmds commands.AuthCommands, users queries.UserQueries, cfg config.Config) *api.AuthHandler {
	return api.NewAuthHandler(cmds, users, cfg.Cookie, cfg.JWT.Duration)
}

func NewHealthHandler(pool *pgxpool.Pool, store *idempotency.RedisStore) *api.HealthHandler {
	deps := map[string]api.Pinger{"postgres": pool}
	if store != nil {
		deps["redis"] = store
	}
	return api.NewHealthHandler(deps)
}

func NewRateLimiter(cfg config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit)
}

func NewHandlers(auth *api.AuthHandler, slot *api.SlotHandler, booking *api.BookingHandler, health *api.HealthHandler) handler.Handlers {
	return handler.Handlers{Auth: auth, Slot: slot, Booking: booking, Health: health}
}

func NewMiddlewares(auth *middleware.AuthMiddleware, limiter *middleware.RateLimiter, logger *middleware.Logger) handler.Middlewares {
	return handler.Middlewares{Auth: auth, RateLimit: limiter, Logger: logger}
}
