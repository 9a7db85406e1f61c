package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"mesaYaCore/internal/modules/realtime/domain"
	"mesaYaCore/internal/modules/realtime/infrastructure"
	"mesaYaCore/internal/shared/auth"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var sessionCounter atomic.Uint64

// NewRestaurantWebsocketHandler exposes /ws/restaurant/:id/:token. The JWT is
// validated locally and the client joins the restaurant room.
func NewRestaurantWebsocketHandler(hub *infrastructure.Hub, validator auth.TokenValidator, sendBuffer int) func(echo.Context) error {
	return func(c echo.Context) error {
		restaurantID := strings.TrimSpace(c.Param("id"))
		if restaurantID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "missing restaurant id")
		}
		claims, err := validateToken(validator, requestToken(c))
		if err != nil {
			return err
		}
		return attach(c, hub, claims, []string{domain.RestaurantRoom(restaurantID)}, sendBuffer)
	}
}

// NewCustomerWebsocketHandler exposes /ws/customer/:token. The room is derived
// from the email claim, so a customer only ever sees their own notifications.
func NewCustomerWebsocketHandler(hub *infrastructure.Hub, validator auth.TokenValidator, sendBuffer int) func(echo.Context) error {
	return func(c echo.Context) error {
		claims, err := validateToken(validator, requestToken(c))
		if err != nil {
			return err
		}
		email := strings.TrimSpace(claims.Email)
		if email == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "token carries no email")
		}
		return attach(c, hub, claims, []string{domain.CustomerRoom(email)}, sendBuffer)
	}
}

// requestToken reads the JWT from the path, falling back to the Authorization
// header or the token query parameter.
func requestToken(c echo.Context) string {
	if token := strings.TrimSpace(c.Param("token")); token != "" {
		return token
	}
	return auth.ExtractToken(c.Request(), "token")
}

func validateToken(validator auth.TokenValidator, raw string) (*auth.Claims, error) {
	claims, err := validator.Validate(strings.TrimSpace(raw))
	if err != nil {
		if errors.Is(err, auth.ErrMissingToken) {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "missing token")
		}
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

func attach(c echo.Context, hub *infrastructure.Hub, claims *auth.Claims, rooms []string, sendBuffer int) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	userID := strings.TrimSpace(claims.RegisteredClaims.Subject)
	sessionID := strings.TrimSpace(claims.SessionID)
	if sessionID == "" {
		sessionID = fmt.Sprintf("session-%d", sessionCounter.Add(1))
	}
	if sendBuffer <= 0 {
		sendBuffer = 8
	}

	client := infrastructure.NewClient(hub, conn, userID, sessionID, sendBuffer)
	hub.AttachClient(client, rooms)

	go client.WritePump()
	go client.ReadPump()
	return nil
}
