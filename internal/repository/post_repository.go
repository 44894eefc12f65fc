package repository

import (
	"github.com/prosync/prosync-api/internal/models"
	"gorm.io/gorm"
)

// GormPostRepository is a GORM implementation of PostRepository
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &GormPostRepository{db: db}
}

// Create creates a new post
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// FindByID finds a post by ID with author and project preloaded
func (r *GormPostRepository) FindByID(id uint64) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("User").Preload("Project").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// visibleScope limits a post query to what the viewer may see: posts without
// a project, posts on public projects, and the viewer's own posts.
func (r *GormPostRepository) visibleScope(db *gorm.DB, viewerID uint64) *gorm.DB {
	publicProjects := r.db.Model(&models.Project{}).Select("id").Where("is_private = ?", false)
	if viewerID == 0 {
		return db.Where("posts.project_id IS NULL OR posts.project_id IN (?)", publicProjects)
	}
	return db.Where(
		"posts.project_id IS NULL OR posts.user_id = ? OR posts.project_id IN (?)",
		viewerID, publicProjects,
	)
}

// ListVisible lists posts visible to the viewer, newest first
func (r *GormPostRepository) ListVisible(viewerID uint64, offset, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	base := r.visibleScope(r.db.Model(&models.Post{}), viewerID)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := base.Preload("User").Preload("Project").
		Order("posts.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// ListByProject lists the posts attached to a project, newest first
func (r *GormPostRepository) ListByProject(projectID uint64) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Delete removes a post and its dependent records in a transaction
func (r *GormPostRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.SavedPost{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// CreateComment appends a comment to a post
func (r *GormPostRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// ListComments lists a post's comments, newest first
func (r *GormPostRepository) ListComments(postID uint64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// CountLikes counts the likes on a post
func (r *GormPostRepository) CountLikes(postID uint64) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountComments counts the comments on a post
func (r *GormPostRepository) CountComments(postID uint64) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
