package middleware

import (
	"time"

	"github.com/andreyxaxa/Media-Service/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

// Logger logs one line per request after the handler chain ran.
func Logger(l logger.Interface) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		// the error handler has not written the status yet
		status := ctx.Response().StatusCode()
		if err != nil {
			status = StatusFromError(err)
		}

		l.Info("%s %s %d %s request_id=%v",
			ctx.Method(), ctx.Path(), status, time.Since(start), ctx.Locals("requestid"))

		return err
	}
}
