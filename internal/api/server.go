package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mul-meong/backend-feed/internal/metrics"
)

func NewServer(svc FeedService) *fiber.App {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	h := NewHandlers(svc)

	api := app.Group("/v1")
	api.Post("/feeds", h.createFeed)
	api.Get("/feeds/:feed_id", h.getFeed)
	api.Patch("/feeds/:feed_id", h.updateFeed)
	api.Patch("/feeds/:feed_id/status", h.updateFeedStatus)
	api.Put("/feeds/:feed_id/hashtags", h.updateFeedHashtags)
	api.Delete("/feeds/:feed_id", h.deleteFeed)

	return app
}
