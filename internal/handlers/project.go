package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prosync/prosync-api/internal/constants"
	"github.com/prosync/prosync-api/internal/dto"
	apierrors "github.com/prosync/prosync-api/internal/errors"
	"github.com/prosync/prosync-api/internal/middleware"
	"github.com/prosync/prosync-api/internal/services"
	"github.com/prosync/prosync-api/internal/utils"
)

type ProjectHandler struct {
	projectService      *services.ProjectService
	invitationService   *services.InvitationService
	relationshipService *services.RelationshipService
}

func NewProjectHandler(
	projectService *services.ProjectService,
	invitationService *services.InvitationService,
	relationshipService *services.RelationshipService,
) *ProjectHandler {
	return &ProjectHandler{
		projectService:      projectService,
		invitationService:   invitationService,
		relationshipService: relationshipService,
	}
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidProjectName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotProjectOwner):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

// Create creates a new project owned by the caller
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Technology  string `json:"technology"`
		ArchiveURL  string `json:"archive_url"`
		CoverURL    string `json:"cover_url"`
		IsPrivate   bool   `json:"is_private"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Technology:  req.Technology,
		ArchiveURL:  req.ArchiveURL,
		CoverURL:    req.CoverURL,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": dto.ToProjectDTO(*project)})
}

// Get returns a single project by ID
func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(*project)})
}

// GetBySlug returns a single project by its URL slug
func (h *ProjectHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		apierrors.BadRequest(c, "Invalid slug")
		return
	}

	project, err := h.projectService.GetProjectBySlug(slug)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(*project)})
}

// Mine lists the caller's own projects
func (h *ProjectHandler) Mine(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projects, err := h.projectService.ListMine(userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": dto.ToProjectDTOs(projects)})
}

// Search lists public projects matching an optional query string
func (h *ProjectHandler) Search(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.Search(c.Query("q"), params.Offset, params.Limit)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectDTOs(projects),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Update applies a partial update to a project owned by the caller
func (h *ProjectHandler) Update(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Technology  *string `json:"technology"`
		ArchiveURL  *string `json:"archive_url"`
		CoverURL    *string `json:"cover_url"`
		IsPrivate   *bool   `json:"is_private"`
		IsPinned    *bool   `json:"is_pinned"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.UpdateProject(projectID, userID, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Technology:  req.Technology,
		ArchiveURL:  req.ArchiveURL,
		CoverURL:    req.CoverURL,
		IsPrivate:   req.IsPrivate,
		IsPinned:    req.IsPinned,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(*project)})
}

// Delete removes a project owned by the caller along with its dependent rows
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(projectID, userID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// Collaborators lists the collaborators of a project
func (h *ProjectHandler) Collaborators(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	collaborations, err := h.projectService.ListCollaborators(projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	dtos := make([]dto.CollaborationDTO, len(collaborations))
	for i, collaboration := range collaborations {
		dtos[i] = dto.ToCollaborationDTO(collaboration)
	}

	c.JSON(http.StatusOK, gin.H{"collaborators": dtos})
}

// AddCollaborator lets the owner attach a user to the project directly,
// without going through an invitation
func (h *ProjectHandler) AddCollaborator(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		UserID uint64 `json:"user_id" binding:"required"`
		Role   string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	if req.Role == "" {
		req.Role = constants.DefaultCollaboratorRole
	}

	added, err := h.projectService.AddCollaborator(projectID, userID, req.UserID, req.Role)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"added": added})
}

// Invite sends a collaboration invitation for a project owned by the caller
func (h *ProjectHandler) Invite(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		ReceiverID uint64 `json:"receiver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	invitation, outcome, err := h.invitationService.Invite(userID, projectID, req.ReceiverID)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"outcome":    outcome,
		"invitation": dto.ToInvitationDTO(*invitation),
	})
}

// Save toggles the caller's bookmark of a project
func (h *ProjectHandler) Save(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	saved, err := h.relationshipService.Toggle(services.KindSaveProject, userID, projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

// Saved lists the projects the caller has bookmarked
func (h *ProjectHandler) Saved(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	savedProjects, err := h.relationshipService.SavedProjects(userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	dtos := make([]dto.ProjectDTO, len(savedProjects))
	for i, saved := range savedProjects {
		dtos[i] = dto.ToProjectDTO(saved.Project)
	}

	c.JSON(http.StatusOK, gin.H{"projects": dtos})
}
