package server

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Realtime event types pushed over websockets.
const (
	EventCommentCreated = "comment_created"
	EventCommentUpdated = "comment_updated"
	EventCommentDeleted = "comment_deleted"
	EventReplyCreated   = "reply_created"
)

type realtimeEvent struct {
	Type    string    `json:"type"`
	Payload fiber.Map `json:"payload"`
}

// publishBroadcastEvent pushes an event to every connected client on this
// instance and fans it out to the other instances through Redis.
func (s *Server) publishBroadcastEvent(ctx context.Context, eventType string, payload fiber.Map) {
	data, err := json.Marshal(realtimeEvent{Type: eventType, Payload: payload})
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastAll(string(data))
	}
	if s.notifier != nil {
		if pubErr := s.notifier.PublishBroadcast(ctx, string(data)); pubErr != nil {
			log.Printf("failed to publish %s event: %v", eventType, pubErr)
		}
	}
}

// publishUserEvent pushes an event to one user's connections, locally and via
// Redis for connections held by other instances.
func (s *Server) publishUserEvent(ctx context.Context, userID uint, eventType string, payload fiber.Map) {
	data, err := json.Marshal(realtimeEvent{Type: eventType, Payload: payload})
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}

	if s.hub != nil {
		s.hub.Broadcast(userID, string(data))
	}
	if s.notifier != nil {
		if pubErr := s.notifier.PublishUser(ctx, userID, string(data)); pubErr != nil {
			log.Printf("failed to publish %s event for user %d: %v", eventType, userID, pubErr)
		}
	}
}
