package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/feed"
	"github.com/bitfinek-invest/invest_service/pkg/logger"
)

// EventsHandlers streams per-user change events over SSE.
type EventsHandlers struct {
	feedService *feed.Service
	logger      *logger.Logger
}

// NewEventsHandlers creates a new EventsHandlers instance
func NewEventsHandlers(feedService *feed.Service, logger *logger.Logger) *EventsHandlers {
	return &EventsHandlers{
		feedService: feedService,
		logger:      logger,
	}
}

// StreamEvents handles GET /api/v1/events/stream
func (h *EventsHandlers) StreamEvents(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		SendUnauthorized(c, MsgUnauthorized)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	// Buffered so a slow client drops events instead of blocking the feed.
	events := make(chan entities.FeedEvent, 16)
	unsubscribe := h.feedService.Subscribe(userID, func(event entities.FeedEvent) {
		select {
		case events <- event:
		default:
		}
	})
	defer unsubscribe()

	h.logger.Info("SSE stream opened", "user_id", userID)

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case event, open := <-events:
			if !open {
				return false
			}
			c.SSEvent("change", event)
			return true
		}
	})

	h.logger.Info("SSE stream closed", "user_id", userID)
}
