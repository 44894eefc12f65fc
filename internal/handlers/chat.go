package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prosync/prosync-api/internal/dto"
	apierrors "github.com/prosync/prosync-api/internal/errors"
	"github.com/prosync/prosync-api/internal/middleware"
	"github.com/prosync/prosync-api/internal/services"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmptyMessage):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

// Send delivers a direct message from the caller to another user
func (h *ChatHandler) Send(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req struct {
		ReceiverID uint64 `json:"receiver_id" binding:"required"`
		Message    string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	message, err := h.chatService.Send(userID, req.ReceiverID, req.Message)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": dto.ToChatMessageDTO(*message)})
}

// Conversation returns the full message history between the caller and
// another user, oldest first. Messages addressed to the caller are marked
// read as a side effect.
func (h *ChatHandler) Conversation(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	otherID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	messages, err := h.chatService.Conversation(userID, otherID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	dtos := make([]dto.ChatMessageDTO, len(messages))
	for i, message := range messages {
		dtos[i] = dto.ToChatMessageDTO(message)
	}

	c.JSON(http.StatusOK, gin.H{"messages": dtos})
}

// Inbox returns every message the caller has sent or received, newest first
func (h *ChatHandler) Inbox(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	messages, err := h.chatService.Inbox(userID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	dtos := make([]dto.ChatMessageDTO, len(messages))
	for i, message := range messages {
		dtos[i] = dto.ToChatMessageDTO(message)
	}

	c.JSON(http.StatusOK, gin.H{"messages": dtos})
}
