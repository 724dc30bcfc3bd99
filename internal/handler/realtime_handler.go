package handler

import (
	"encoding/json"

	"keep-notes-be/internal/pkg/logger"
	"keep-notes-be/internal/pkg/serverutils"
	"keep-notes-be/internal/service"
	internalWS "keep-notes-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const realtimeModule = "RealtimeHandler"

// RealtimeHandler streams a user's state over a websocket. The current state
// is sent on connect and after every transition.
type RealtimeHandler struct {
	noteService service.INoteService
	hub         *internalWS.Hub
	jwtSecret   []byte
	logger      logger.ILogger
}

func NewRealtimeHandler(noteService service.INoteService, hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *RealtimeHandler {
	return &RealtimeHandler{
		noteService: noteService,
		hub:         hub,
		jwtSecret:   []byte(jwtSecret),
		logger:      log,
	}
}

// ServeWs authenticates the handshake and upgrades the connection.
func (h *RealtimeHandler) ServeWs(c *fiber.Ctx) error {
	// Browsers cannot set headers on a websocket handshake.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Missing token (Query 'token' or Header 'Authorization')"))
	}

	userID, err := serverutils.ParseUserToken(tokenStr, h.jwtSecret)
	if err != nil {
		h.logger.Warn(realtimeModule, "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, err.Error()))
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	initial := h.initialState(c, userID)
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info(realtimeModule, "Starting WebSocket session", map[string]interface{}{"user_id": userID})
		internalWS.ServeWs(h.hub, conn, userID, initial)
		h.logger.Info(realtimeModule, "WebSocket session ended", map[string]interface{}{"user_id": userID})
	})(c)
}

func (h *RealtimeHandler) initialState(c *fiber.Ctx, userID uuid.UUID) []byte {
	state, err := h.noteService.State(c.UserContext(), userID)
	if err != nil {
		h.logger.Error(realtimeModule, "Failed to load state", map[string]interface{}{"error": err, "user_id": userID})
		return nil
	}
	data, err := json.Marshal(internalWS.Message{Type: "state", Data: state})
	if err != nil {
		return nil
	}
	return data
}

func (h *RealtimeHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/note/v1/ws", h.ServeWs)
}
