package http

import (
	"embed"
	"io/fs"
	nethttp "net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

//go:embed static
var staticFS embed.FS

// NewApp creates the fiber app with middleware and routes. env is GO_ENV:
// "development" prints the route table at startup, "production" prints no banner.
func NewApp(handler *Handler, env string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "WeatherView v1.0 (" + env + ")",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          customErrorHandler,
		EnablePrintRoutes:     env == "development",
		DisableStartupMessage: env == "production",
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	SetupRoutes(app, handler)
	return app
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, handler *Handler) {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   nethttp.FS(static),
		MaxAge: 3600,
	}))

	// Health check
	app.Get("/health", handler.HealthCheck)

	// Page and form actions
	app.Get("/", handler.Session, handler.Index)
	app.Post("/search", handler.Session, handler.Search)
	app.Post("/unit", handler.Session, handler.ToggleUnit)

	api := app.Group("/api")
	{
		api.Get("/view", handler.Session, handler.GetView)
		api.Get("/searches", handler.GetSearches)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
