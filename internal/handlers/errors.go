package handlers

import (
	"errors"
	"log/slog"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/temply-mn/temply-api/internal/apperr"
	"github.com/temply-mn/temply-api/internal/dto"
	"github.com/temply-mn/temply-api/internal/middleware"
)

// respondError writes err as {"error": message}. Internal failures are logged
// and reported to Sentry but never described to the client.
func respondError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: fiberMessage(fe)})
	}

	kind := apperr.KindOf(err)
	message := apperr.MessageOf(err)

	switch kind {
	case apperr.KindUnauthenticated:
		// Say the token was bad rather than missing when one was sent.
		if authErr := middleware.AuthErrorFrom(c); authErr != nil {
			message = apperr.MessageOf(authErr)
		}
	case apperr.KindInternal:
		slog.Error("request failed",
			"request_id", c.Locals("requestid"),
			"user_id", c.Locals(middleware.LocalUserID),
			"role", string(middleware.PrincipalFrom(c).Role),
			"action", c.Method()+" "+c.Route().Path,
			"path", c.Path(),
			"status", kind.HTTPStatus(),
			"template_id", c.Params("id"),
			"error", err.Error(),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	}

	return c.Status(kind.HTTPStatus()).JSON(dto.ErrorResponse{Error: message})
}

// ErrorHandler is the Fiber error handler. Middleware and handlers that return
// an error end up here with the same response shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return respondError(c, err)
}

func fiberMessage(fe *fiber.Error) string {
	switch fe.Code {
	case fiber.StatusNotFound:
		return apperr.MsgRouteNotFound
	case fiber.StatusTooManyRequests:
		return apperr.MsgTooManyRequests
	case fiber.StatusRequestEntityTooLarge, fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return apperr.MsgInvalidBody
	}
	if fe.Code >= fiber.StatusInternalServerError {
		return apperr.MsgInternal
	}
	return fe.Message
}
