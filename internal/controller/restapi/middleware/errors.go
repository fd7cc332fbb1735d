package middleware

import (
	"errors"
	"net/http"

	"github.com/andreyxaxa/Media-Service/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Media-Service/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

// StatusFromError is the status ErrorHandler writes for err.
func StatusFromError(err error) int {
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		return http.StatusInternalServerError
	}

	// an oversize body is a client mistake like any other upload validation
	if fe.Code == http.StatusRequestEntityTooLarge {
		return http.StatusBadRequest
	}

	return fe.Code
}

// ErrorHandler renders errors that escape handlers as {"error": "..."}.
func ErrorHandler(l logger.Interface) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := StatusFromError(err)

		var (
			fe  *fiber.Error
			msg string
		)

		switch {
		case errors.As(err, &fe) && fe.Code == http.StatusRequestEntityTooLarge:
			msg = "file too large"
		case errors.As(err, &fe):
			msg = fe.Message
		default:
			l.Error(err, "restapi - ErrorHandler")
			msg = http.StatusText(code)
		}

		return ctx.Status(code).JSON(response.Error{Error: msg})
	}
}
