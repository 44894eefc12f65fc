package dto

import (
	"time"

	"github.com/prosync/prosync-api/internal/models"
)

// PostDTO represents a post in API responses
type PostDTO struct {
	ID           uint64    `json:"id"`
	UserID       uint64    `json:"user_id"`
	Username     string    `json:"username,omitempty"`
	ProjectID    *uint64   `json:"project_id"`
	ImageURL     string    `json:"image_url,omitempty"`
	Content      string    `json:"content"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"post_id"`
	UserID    uint64    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ToPostDTO converts a Post model and its engagement counts to PostDTO
func ToPostDTO(post models.Post, likeCount, commentCount int64) PostDTO {
	return PostDTO{
		ID:           post.ID,
		UserID:       post.UserID,
		Username:     post.User.Username,
		ProjectID:    post.ProjectID,
		ImageURL:     post.ImageURL,
		Content:      post.Content,
		LikeCount:    likeCount,
		CommentCount: commentCount,
		CreatedAt:    post.CreatedAt,
	}
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		Username:  comment.User.Username,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}

// ToCommentDTOs converts a slice of comments
func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = ToCommentDTO(c)
	}
	return dtos
}
