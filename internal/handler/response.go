package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ludo/bugtrack/internal/domain"
)

// Message is the body of every 400/409 response.
type Message struct {
	Message string `json:"message"`
}

// HTTPErrorHandler is the global error handler: the single place where
// domain errors become status codes and response bodies. Validation and
// conflict errors carry a {message} body; 401, 404, and 500 responses carry
// none. Anything unrecognized is logged and becomes a 500 with no detail
// leaked to the client.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var sendErr error
	var reqErr *domain.RequestError
	var conflictErr *domain.ConflictError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &reqErr):
		sendErr = c.JSON(http.StatusBadRequest, Message{Message: reqErr.Message})
	case errors.As(err, &conflictErr):
		sendErr = c.JSON(http.StatusConflict, Message{Message: conflictErr.Message})
	case errors.Is(err, domain.ErrConflict):
		sendErr = c.NoContent(http.StatusConflict)
	case errors.Is(err, domain.ErrUnauthorized):
		sendErr = c.NoContent(http.StatusUnauthorized)
	case errors.Is(err, domain.ErrNotFound):
		sendErr = c.NoContent(http.StatusNotFound)
	case errors.As(err, &echoErr):
		// echo's own routing errors (404 on unknown paths, 405, ...)
		sendErr = c.JSON(echoErr.Code, Message{Message: http.StatusText(echoErr.Code)})
	default:
		slog.Error("unhandled error",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", err,
		)
		sendErr = c.NoContent(http.StatusInternalServerError)
	}

	if sendErr != nil {
		slog.Error("failed to send error response", "error", sendErr)
	}
}
