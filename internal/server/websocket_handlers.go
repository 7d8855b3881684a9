package server

import (
	"fmt"
	"log"
	"time"

	"typehero/internal/middleware"
	"typehero/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// wsTicketTTL bounds how long an issued ticket stays redeemable.
const wsTicketTTL = 30 * time.Second

// IssueWSTicket handles POST /api/ws/ticket. It mints a short-lived,
// single-use ticket the browser passes as ?ticket= when opening the
// websocket, since browsers can't set an Authorization header there.
func (s *Server) IssueWSTicket(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if s.redis == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewInternalError(fmt.Errorf("realtime features unavailable")))
	}

	ticket := uuid.New().String()
	key := fmt.Sprintf("ws_ticket:%s", ticket)
	if err := s.redis.Set(c.Context(), key, fmt.Sprintf("%d", userID), wsTicketTTL).Err(); err != nil {
		middleware.RedisErrors.WithLabelValues("set").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"ticket":     ticket,
		"expires_in": int(wsTicketTTL.Seconds()),
	})
}

// WebsocketHandler upgrades the connection and registers it with the comment
// hub. AuthRequired has already consumed the ticket and set userID.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		userID, ok := conn.Locals("userID").(uint)
		if !ok {
			if err := conn.Close(); err != nil {
				log.Printf("failed to close unauthenticated websocket: %v", err)
			}
			return
		}

		if s.hub == nil {
			if err := conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "realtime unavailable")); err != nil {
				log.Printf("failed to write close message for user %d: %v", userID, err)
			}
			conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			if writeErr := conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error())); writeErr != nil {
				log.Printf("failed to write close message for user %d: %v", userID, writeErr)
			}
			conn.Close()
			return
		}
		defer s.hub.UnregisterClient(client)

		go client.WritePump()
		client.ReadPump()
	})
}
