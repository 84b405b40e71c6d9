package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/brightforge/agency-backend/internal/config"
	"github.com/brightforge/agency-backend/internal/middleware"
	"github.com/brightforge/agency-backend/internal/pubsub"
	"github.com/brightforge/agency-backend/internal/repository"
	"github.com/brightforge/agency-backend/internal/response"
	"github.com/brightforge/agency-backend/internal/service"
	ws "github.com/brightforge/agency-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams the live notification feed to dashboard clients.
type WSHandler struct {
	broker              pubsub.Broker
	notificationService *service.NotificationService
	log                 zerolog.Logger
	upgrader            websocket.Upgrader
	pingPeriod          time.Duration
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(broker pubsub.Broker, notificationService *service.NotificationService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		broker:              broker,
		notificationService: notificationService,
		log:                 log.With().Str("component", "ws_handler").Logger(),
		upgrader:            buildUpgrader(allowedOrigins),
		pingPeriod:          ws.PingPeriod,
	}
}

// NotificationStream godoc
// WS /ws/notifications?token=...
// Pushes every new notification; accepts ping and mark_read actions.
func (h *WSHandler) NotificationStream(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Subscribe before upgrading so a broker outage is still reported over HTTP.
	feed, unsubscribe, err := h.broker.Subscribe(ctx, config.CacheKey.NotificationFeedChannel())
	if err != nil {
		failInternal(c, h.log, err, "Failed to subscribe to notifications")
		return
	}
	defer unsubscribe()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("username", session.Username).Logger()
	wsLog.Info().Msg("Dashboard connected")

	// gorilla allows one concurrent writer: the reader hands replies to this loop.
	ws.PrepareRead(conn)
	replies := make(chan interface{}, 8)
	readerDone := make(chan struct{})
	go h.readLoop(ctx, conn, wsLog, replies, readerDone)

	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-readerDone:
			return
		case msg, ok := <-feed:
			if !ok {
				ws.WriteError(conn, "notification feed closed")
				return
			}
			if err := ws.WriteRaw(conn, msg); err != nil {
				wsLog.Debug().Err(err).Msg("Feed write failed")
				return
			}
		case reply := <-replies:
			if err := ws.WriteTyped(conn, reply); err != nil {
				wsLog.Debug().Err(err).Msg("Reply write failed")
				return
			}
		case <-ticker.C:
			if err := ws.WritePing(conn); err != nil {
				return
			}
		}
	}
}

// readLoop decodes client actions until the connection closes.
func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, wsLog zerolog.Logger, replies chan<- interface{}, done chan<- struct{}) {
	defer close(done)

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		reply := h.handleAction(ctx, wsLog, &msg)
		select {
		case replies <- reply:
		case <-ctx.Done():
			return
		}
	}
}

func (h *WSHandler) handleAction(ctx context.Context, wsLog zerolog.Logger, msg *ws.RequestPayload) interface{} {
	switch msg.Action {
	case ws.ActionPing:
		return ws.PongResponse{Event: ws.EventPong}

	case ws.ActionMarkRead:
		if msg.ID <= 0 {
			return ws.ErrorResponse{Event: ws.EventError, Error: "id is required"}
		}
		if _, err := h.notificationService.SetRead(ctx, msg.ID, true); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ws.ErrorResponse{Event: ws.EventError, Error: "notification not found"}
			}
			wsLog.Error().Err(err).Int("notification_id", msg.ID).Msg("Mark read failed")
			return ws.ErrorResponse{Event: ws.EventError, Error: "mark read failed"}
		}
		return ws.MarkedReadResponse{Event: ws.EventMarkedRead, ID: msg.ID}

	default:
		wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
		return ws.ErrorResponse{Event: ws.EventError, Error: "unknown action: " + string(msg.Action)}
	}
}
