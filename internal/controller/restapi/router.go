package restapi

import (
	"net/http"
	"strings"

	"github.com/andreyxaxa/Media-Service/config"
	"github.com/andreyxaxa/Media-Service/internal/controller/restapi/middleware"
	v1 "github.com/andreyxaxa/Media-Service/internal/controller/restapi/v1"
	"github.com/andreyxaxa/Media-Service/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Media-Service/internal/usecase"
	"github.com/andreyxaxa/Media-Service/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	// swagger docs
	_ "github.com/andreyxaxa/Media-Service/docs"
)

const mediaBasePath = "/api/media"

// @title Media service
// @version 1.0.0
// @description Image uploads, storage, thumbnails and signed URLs
// @host localhost:8000
// @BasePath /
func NewRouter(app *fiber.App, cfg *config.Config, media usecase.MediaUseCase, gatherer prometheus.Gatherer, l logger.Interface) {
	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.Logger(l))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORS.Origins, ","),
		AllowCredentials: !allowsAnyOrigin(cfg.CORS.Origins),
		AllowMethods:     "GET,POST,HEAD,OPTIONS",
	}))

	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Metrics
	if cfg.Metrics.Enabled {
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// Health
	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.Status(http.StatusOK).JSON(response.Healthy())
	})

	// Routers
	mediaGroup := app.Group(mediaBasePath)
	{
		v1.NewMediaRoutes(mediaGroup, mediaBasePath, media, l)
	}
}

// fiber refuses credentials together with a wildcard origin; empty means wildcard
func allowsAnyOrigin(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}

	return false
}
