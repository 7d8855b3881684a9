package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "typehero_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// CommentMutations counts comment mutations by kind and outcome code.
	CommentMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "typehero_comment_mutations_total",
		Help: "Total number of comment mutations by kind and result",
	}, []string{"kind", "result"})

	// CommentPageCacheHits counts page-cache lookups by outcome.
	CommentPageCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "typehero_comment_page_cache_total",
		Help: "Comment page cache lookups by outcome (hit/miss)",
	}, []string{"outcome"})

	// ActiveWebSockets is the gauge of currently open websocket connections.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "typehero_websocket_connections",
		Help: "Number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped because a client's
	// send buffer was full or closed.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "typehero_websocket_backpressure_drops_total",
		Help: "Messages dropped due to websocket backpressure by reason",
	}, []string{"reason"})
)

// InitMetrics creates the fiberprometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-level prometheus middleware handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
