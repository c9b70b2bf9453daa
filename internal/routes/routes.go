package routes

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/temply-mn/temply-api/internal/authz"
	"github.com/temply-mn/temply-api/internal/config"
	"github.com/temply-mn/temply-api/internal/handlers"
	"github.com/temply-mn/temply-api/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	Template *handlers.TemplateHandler
	Cart     *handlers.CartHandler
	Purchase *handlers.PurchaseHandler
	Download *handlers.DownloadHandler
	Admin    *handlers.AdminHandler
}

// NewApp returns a Fiber app using goccy/go-json and the {"error": ...} error handler.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "temply-api",
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})
}

func Setup(app *fiber.App, cfg *config.Config, gate *authz.Gate, authenticate fiber.Handler, h Handlers) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// General API rate limiter per IP
	if cfg.RateLimit > 0 {
		api.Use(rateLimiter(cfg.RateLimit))
	}

	api.Get("/health", h.Health.Check)

	// Every other route sees the caller's principal, anonymous or not.
	api.Use(authenticate)

	// Auth-specific rate limit (stricter)
	auth := api.Group("/auth")
	if cfg.AuthRateLimit > 0 {
		auth.Use(rateLimiter(cfg.AuthRateLimit))
	}
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Get("/me", h.Auth.Me)

	// Templates: reads are public, the gate decides the rest per request.
	api.Get("/templates", h.Template.List)
	api.Post("/templates", h.Template.Create)
	api.Get("/templates/:id", h.Template.Get)
	api.Patch("/templates/:id", h.Template.Update)
	api.Put("/templates/:id", h.Template.Update)
	api.Delete("/templates/:id", h.Template.Delete)

	api.Get("/cart", h.Cart.List)
	api.Post("/cart", h.Cart.Add)
	api.Delete("/cart", h.Cart.Remove)

	api.Get("/purchases", h.Purchase.List)
	api.Post("/purchases", h.Purchase.Create)

	api.Get("/downloads", h.Download.List)
	api.Post("/downloads", h.Download.Create)

	// Back office (admin required)
	admin := api.Group("/admin", middleware.AdminRequired(gate))
	admin.Get("/summary", h.Admin.Summary)
}

func rateLimiter(perMinute int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               perMinute,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.ErrTooManyRequests
		},
	})
}
