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

type PostHandler struct {
	postService         *services.PostService
	relationshipService *services.RelationshipService
}

func NewPostHandler(
	postService *services.PostService,
	relationshipService *services.RelationshipService,
) *PostHandler {
	return &PostHandler{
		postService:         postService,
		relationshipService: relationshipService,
	}
}

func respondPostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmptyContent),
		errors.Is(err, services.ErrEmptyComment):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotPostAuthor):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

func (h *PostHandler) postDTO(post models.Post) (dto.PostDTO, error) {
	likes, comments, err := h.postService.Engagement(post.ID)
	if err != nil {
		return dto.PostDTO{}, err
	}
	return dto.ToPostDTO(post, likes, comments), nil
}

// Create creates a new post, optionally attached to a project
func (h *PostHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req struct {
		Content   string  `json:"content" binding:"required"`
		ProjectID *uint64 `json:"project_id"`
		ImageURL  string  `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.CreatePost(services.CreatePostInput{
		UserID:    userID,
		ProjectID: req.ProjectID,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": dto.ToPostDTO(*post, 0, 0)})
}

// Get returns a single post. Posts attached to a private project are only
// visible to the author, and read as not found otherwise. For authenticated
// viewers the response also reports their own like and save markers.
func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	viewerID := middleware.ViewerID(c)

	post, err := h.postService.GetPost(postID, viewerID)
	if err != nil {
		respondPostError(c, err)
		return
	}

	postDTO, err := h.postDTO(*post)
	if err != nil {
		respondPostError(c, err)
		return
	}

	liked, saved := false, false
	if viewerID != 0 {
		if liked, err = h.relationshipService.HasMarker(services.KindLike, viewerID, postID); err != nil {
			respondPostError(c, err)
			return
		}
		if saved, err = h.relationshipService.HasMarker(services.KindSavePost, viewerID, postID); err != nil {
			respondPostError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"post": postDTO, "liked": liked, "saved": saved})
}

// ByProject lists the posts attached to a project, newest first
func (h *PostHandler) ByProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	posts, err := h.postService.ProjectPosts(projectID, middleware.ViewerID(c))
	if err != nil {
		respondPostError(c, err)
		return
	}

	dtos := make([]dto.PostDTO, len(posts))
	for i, post := range posts {
		dtos[i], err = h.postDTO(post)
		if err != nil {
			respondPostError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"posts": dtos})
}

// List returns the feed of posts visible to the viewer, newest first
func (h *PostHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	posts, total, err := h.postService.ListPosts(middleware.ViewerID(c), params.Offset, params.Limit)
	if err != nil {
		respondPostError(c, err)
		return
	}

	dtos := make([]dto.PostDTO, len(posts))
	for i, post := range posts {
		dtos[i], err = h.postDTO(post)
		if err != nil {
			respondPostError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": dtos,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Delete removes a post authored by the caller
func (h *PostHandler) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.postService.DeletePost(postID, userID); err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// Like toggles the caller's like on a post
func (h *PostHandler) Like(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	liked, err := h.relationshipService.Toggle(services.KindLike, userID, postID)
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// Save toggles the caller's bookmark of a post
func (h *PostHandler) Save(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	saved, err := h.relationshipService.Toggle(services.KindSavePost, userID, postID)
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

// Saved lists the posts the caller has bookmarked
func (h *PostHandler) Saved(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	savedPosts, err := h.relationshipService.SavedPosts(userID)
	if err != nil {
		respondPostError(c, err)
		return
	}

	dtos := make([]dto.PostDTO, len(savedPosts))
	for i, saved := range savedPosts {
		dtos[i], err = h.postDTO(saved.Post)
		if err != nil {
			respondPostError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"posts": dtos})
}

// Comment adds a comment to a post visible to the caller
func (h *PostHandler) Comment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	comment, err := h.postService.Comment(postID, userID, req.Text)
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": dto.ToCommentDTO(*comment)})
}

// Comments lists the comments on a post visible to the caller
func (h *PostHandler) Comments(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.postService.Comments(postID, middleware.ViewerID(c))
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": dto.ToCommentDTOs(comments)})
}
