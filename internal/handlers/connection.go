package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prosync/prosync-api/internal/dto"
	apierrors "github.com/prosync/prosync-api/internal/errors"
	"github.com/prosync/prosync-api/internal/middleware"
	"github.com/prosync/prosync-api/internal/models"
	"github.com/prosync/prosync-api/internal/services"
)

type ConnectionHandler struct {
	connectionService *services.ConnectionService
}

func NewConnectionHandler(connectionService *services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

func respondConnectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRequestNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotRequestReceiver):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrRequestNotPending),
		errors.Is(err, services.ErrInvalidDecision):
		apierrors.InvalidOperation(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

// Pending lists the connection requests waiting on the caller's decision
func (h *ConnectionHandler) Pending(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	requests, err := h.connectionService.ListPending(userID)
	if err != nil {
		respondConnectionError(c, err)
		return
	}

	dtos := make([]dto.ConnectionRequestDTO, len(requests))
	for i, request := range requests {
		dtos[i] = dto.ToConnectionRequestDTO(request)
	}

	c.JSON(http.StatusOK, gin.H{"requests": dtos})
}

// Respond accepts or rejects a pending connection request addressed to the
// caller
func (h *ConnectionHandler) Respond(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Decision models.WorkflowDecision `json:"decision" binding:"required,decision"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	request, err := h.connectionService.Respond(requestID, userID, req.Decision)
	if err != nil {
		respondConnectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": dto.ToConnectionRequestDTO(*request)})
}
