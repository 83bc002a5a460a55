package api

import (
	"net/http"
	"time"

	"ALH_backend/internal/middleware"
	"ALH_backend/internal/model"
	"ALH_backend/internal/service"
	"ALH_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type notificationRoutes struct {
	notifier *service.Notifier
}

func NewNotificationRoutes(handler *gin.RouterGroup, notifier *service.Notifier, identity *middleware.Identity) {
	r := &notificationRoutes{notifier: notifier}
	h := handler.Group("/notifications")
	h.Use(identity.RequireUser())

	h.GET("/ws", r.handleWebSocket)
}

type badgeNotification struct {
	Type    string       `json:"type"`
	Payload badgePayload `json:"payload"`
}

type badgePayload struct {
	BadgeID     string    `json:"badge_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	Icon        string    `json:"icon"`
	EarnedAt    time.Time `json:"earned_at"`
}

type clientMessage struct {
	Type    string `json:"type"`
	BadgeID string `json:"badge_id"`
}

// handleWebSocket drains the user's notification queue over a websocket.
// The server pushes the head award and holds the queue until the client
// acknowledges it (explicit dismissal or its display timer running out),
// so at most one badge notification is on screen at a time.
func (r *notificationRoutes) handleWebSocket(c *gin.Context) {
	log := logger.Logger()

	user, ok := middleware.CurrentUser(c)
	if !ok {
		log.Error("user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	acks := make(chan string)
	done := make(chan struct{})

	go r.readLoop(conn, acks, done)
	go r.pushLoop(conn, user.ID, acks, done)
}

func (r *notificationRoutes) readLoop(conn *websocket.Conn, acks chan<- string, done chan struct{}) {
	defer close(done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Logger().Info("dropping malformed ws message", zap.Error(err))
			continue
		}

		if msg.Type == "ack" {
			select {
			case acks <- msg.BadgeID:
			case <-done:
				return
			}
		}
	}
}

func (r *notificationRoutes) pushLoop(conn *websocket.Conn, userID uuid.UUID, acks <-chan string, done <-chan struct{}) {
	defer conn.Close()

	log := logger.Logger()
	signal := r.notifier.Signal(userID)

	for {
		award, ok := r.notifier.Peek(userID)
		if !ok {
			select {
			case <-signal:
				continue
			case <-done:
				return
			}
		}

		if err := r.writeAward(conn, award); err != nil {
			log.Error("failed to push badge notification", zap.Error(err))
			return
		}

		select {
		case badgeID := <-acks:
			if !r.notifier.Ack(userID, badgeID) {
				log.Info("stale notification ack", zap.String("badge_id", badgeID))
			}
		case <-done:
			return
		}
	}
}

func (r *notificationRoutes) writeAward(conn *websocket.Conn, award *model.UserBadge) error {
	out, err := json.Marshal(badgeNotification{
		Type: "badge_awarded",
		Payload: badgePayload{
			BadgeID:     award.BadgeID,
			Title:       award.Title,
			Description: award.Description,
			Points:      award.Points,
			Icon:        award.Icon,
			EarnedAt:    award.EarnedAt,
		},
	})
	if err != nil {
		return err
	}

	return conn.WriteMessage(websocket.TextMessage, out)
}
