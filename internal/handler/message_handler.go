package handler

import (
	"net/http"

	"quickchat/internal/services"
	"quickchat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MessageHandler handles the messaging endpoints: sidebar listing,
// conversation retrieval, sending and seen marking.
type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Users handles GET /users: everyone except the caller, plus unseen
// counts keyed by partner ID.
func (h *MessageHandler) Users(c *gin.Context) {
	u, ok := services.CurrentUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized"))
		return
	}

	partners, counts, err := h.service.ListConversationPartners(c.Request.Context(), u.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	unseen := make(map[string]int64, len(counts))
	for id, n := range counts {
		unseen[id.String()] = n
	}

	c.JSON(http.StatusOK, httpdto.UsersResponse{
		Success:        true,
		Users:          httpdto.FromUserSlice(partners),
		UnseenMessages: unseen,
	})
}

// Conversation handles GET /messages/:partnerId.
func (h *MessageHandler) Conversation(c *gin.Context) {
	u, ok := services.CurrentUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized"))
		return
	}

	partnerID, err := uuid.Parse(c.Param("partnerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid partner id"))
		return
	}

	msgs, err := h.service.FetchConversation(c.Request.Context(), u.ID, partnerID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.MessagesResponse{
		Success:  true,
		Messages: httpdto.FromMessageSlice(msgs),
	})
}

// Send handles POST /messages/send/:partnerId.
func (h *MessageHandler) Send(c *gin.Context) {
	u, ok := services.CurrentUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized"))
		return
	}

	receiverID, err := uuid.Parse(c.Param("partnerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid partner id"))
		return
	}

	var req httpdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), u.ID, receiverID, services.SendMessageInput{
		Text:        req.Text,
		ImageBase64: req.Image,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.SendMessageResponse{
		Success:    true,
		NewMessage: httpdto.FromMessage(msg),
	})
}

// MarkSeen handles PUT /messages/seen/:id.
func (h *MessageHandler) MarkSeen(c *gin.Context) {
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id"))
		return
	}

	if err := h.service.MarkSeen(c.Request.Context(), messageID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewOKResponse())
}
