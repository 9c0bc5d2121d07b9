package chat

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"rentalhub/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origins are already filtered by the CORS middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/requests/:id/chat", h.OpenConversation)
	rg.GET("/chat/conversations/:id/messages", h.ListMessages)
	rg.POST("/chat/conversations/:id/messages", h.SendMessage)
	rg.GET("/chat/ws", h.WebSocket)
}

func (h *Handler) OpenConversation(c *gin.Context) {
	userID := c.GetInt64("user_id")
	conv, err := h.service.OpenConversation(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	peer := conv.TenantID
	if userID == conv.TenantID {
		peer = conv.OwnerID
	}

	response.Success(c, http.StatusOK, gin.H{
		"conversation": ToConversationResponse(conv),
		"peer_online":  h.hub.IsOnline(peer),
	})
}

func (h *Handler) SendMessage(c *gin.Context) {
	conversationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid conversation ID")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	msg, err := h.service.SendMessage(c.Request.Context(), userID, conversationID, req.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": ToMessageResponse(msg, userID)})
}

func (h *Handler) ListMessages(c *gin.Context) {
	conversationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid conversation ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	userID := c.GetInt64("user_id")
	messages, err := h.service.ListMessages(c.Request.Context(), userID, conversationID, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]*MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, ToMessageResponse(&messages[i], userID))
	}

	response.Success(c, http.StatusOK, gin.H{"messages": out})
}

type wsInbound struct {
	ConversationID int64  `json:"conversation_id"`
	Content        string `json:"content"`
}

// WebSocket upgrades the connection and keeps it registered in the hub.
// Inbound frames are treated like SendMessage calls; errors are reported
// back on the same socket.
func (h *Handler) WebSocket(c *gin.Context) {
	userID := c.GetInt64("user_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed user_id=%d: %v", userID, err)
		return
	}

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID)

	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			return
		}

		msg, err := h.service.SendMessage(c.Request.Context(), userID, in.ConversationID, in.Content)
		if err != nil {
			_ = conn.WriteJSON(gin.H{"error": err.Error()})
			continue
		}
		_ = conn.WriteJSON(ToMessageResponse(msg, userID))
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrRequestNotFound), errors.Is(err, ErrConversationNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrChatLocked):
		response.Error(c, http.StatusForbidden, "CHAT_LOCKED", "Chat unlocks when the owner approves your request")
	case errors.Is(err, ErrNotParticipant):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not a participant of this conversation")
	case errors.Is(err, ErrEmptyContent):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message content cannot be empty")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Chat operation failed")
	}
}
