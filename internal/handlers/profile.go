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
	"github.com/prosync/prosync-api/internal/utils"
)

type ProfileHandler struct {
	profileService      *services.ProfileService
	relationshipService *services.RelationshipService
	connectionService   *services.ConnectionService
}

func NewProfileHandler(
	profileService *services.ProfileService,
	relationshipService *services.RelationshipService,
	connectionService *services.ConnectionService,
) *ProfileHandler {
	return &ProfileHandler{
		profileService:      profileService,
		relationshipService: relationshipService,
		connectionService:   connectionService,
	}
}

func respondProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrSelfFollow),
		errors.Is(err, services.ErrSelfConnection):
		apierrors.InvalidOperation(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

func (h *ProfileHandler) profileDTO(profile models.Profile, viewerID uint64) (dto.ProfileDTO, error) {
	stats, err := h.profileService.Stats(profile.UserID)
	if err != nil {
		return dto.ProfileDTO{}, err
	}
	status, err := h.connectionService.Status(viewerID, profile.UserID)
	if err != nil {
		return dto.ProfileDTO{}, err
	}
	following := false
	if viewerID != 0 && viewerID != profile.UserID {
		following, err = h.relationshipService.IsFollowing(viewerID, profile.UserID)
		if err != nil {
			return dto.ProfileDTO{}, err
		}
	}
	return dto.ToProfileDTO(profile, stats, status, following), nil
}

// Search lists profiles matching an optional query string
func (h *ProfileHandler) Search(c *gin.Context) {
	viewerID := middleware.ViewerID(c)
	params := utils.GetPaginationParams(c)

	profiles, total, err := h.profileService.Search(c.Query("q"), params.Offset, params.Limit)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	dtos := make([]dto.ProfileDTO, len(profiles))
	for i, profile := range profiles {
		dtos[i], err = h.profileDTO(profile, viewerID)
		if err != nil {
			respondProfileError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"profiles": dtos,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Get returns the profile of the user with the given ID. The connection
// status in the response is relative to the viewer, if authenticated.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.profileService.GetByUserID(userID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	profileDTO, err := h.profileDTO(*profile, middleware.ViewerID(c))
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profileDTO})
}

// Me returns the authenticated user's own profile
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	profile, err := h.profileService.GetByUserID(userID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	profileDTO, err := h.profileDTO(*profile, userID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profileDTO})
}

// UpdateMe applies a partial update to the caller's own profile
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req struct {
		FullName   *string `json:"full_name"`
		Phone      *string `json:"phone"`
		Bio        *string `json:"bio"`
		Profession *string `json:"profession"`
		AvatarURL  *string `json:"avatar_url"`
		Email      *string `json:"email" binding:"omitempty,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileService.UpdateMe(userID, services.UpdateProfileInput{
		FullName:   req.FullName,
		Phone:      req.Phone,
		Bio:        req.Bio,
		Profession: req.Profession,
		AvatarURL:  req.AvatarURL,
		Email:      req.Email,
	})
	if err != nil {
		respondProfileError(c, err)
		return
	}

	profileDTO, err := h.profileDTO(*profile, userID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profileDTO})
}

// Follow toggles the caller's follow of the user with the given ID
func (h *ProfileHandler) Follow(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	following, err := h.relationshipService.Toggle(services.KindFollow, userID, targetID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": following})
}

// Connect sends a connection request to the user with the given ID. The
// outcome reports what actually happened when a request already existed in
// either direction.
func (h *ProfileHandler) Connect(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	request, outcome, err := h.connectionService.Connect(userID, targetID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"outcome": outcome,
		"request": dto.ToConnectionRequestDTO(*request),
	})
}
