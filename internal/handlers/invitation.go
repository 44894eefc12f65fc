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

type InvitationHandler struct {
	invitationService *services.InvitationService
}

func NewInvitationHandler(invitationService *services.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

func respondInvitationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvitationNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotProjectOwner),
		errors.Is(err, services.ErrNotInvitationReceiver):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvitationNotPending),
		errors.Is(err, services.ErrInvalidDecision):
		apierrors.InvalidOperation(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

// Pending lists the invitations waiting on the caller's decision
func (h *InvitationHandler) Pending(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	invitations, err := h.invitationService.ListPending(userID)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	dtos := make([]dto.InvitationDTO, len(invitations))
	for i, invitation := range invitations {
		dtos[i] = dto.ToInvitationDTO(invitation)
	}

	c.JSON(http.StatusOK, gin.H{"invitations": dtos})
}

// Respond accepts or rejects a pending invitation addressed to the caller.
// Accepting also adds the caller as a collaborator on the project.
func (h *InvitationHandler) Respond(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	invitationID, ok := parseIDParam(c, "id")
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

	invitation, err := h.invitationService.Respond(invitationID, userID, req.Decision)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invitation": dto.ToInvitationDTO(*invitation)})
}
