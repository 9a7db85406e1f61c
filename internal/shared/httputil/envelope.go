package httputil

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// OK writes the standard success envelope {success, message?, <payload>} with
// the payload keys flattened at the top level.
func OK(c echo.Context, status int, message string, payload map[string]any) error {
	body := map[string]any{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

// Fail maps the error through the mapper and writes the failure envelope.
// Internal errors are logged with their cause; the response carries only the
// stable message, never the underlying error text.
func Fail(c echo.Context, mapper *ErrorMapper, err error) error {
	info := mapper.Map(err)
	if info.Status >= http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
	}
	return c.JSON(info.Status, map[string]any{
		"success": false,
		"message": info.Message,
	})
}
