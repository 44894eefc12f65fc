package repository

import (
	"errors"

	"github.com/prosync/prosync-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRelationshipRepository is a GORM implementation of RelationshipRepository
type GormRelationshipRepository struct {
	db *gorm.DB
}

// NewRelationshipRepository creates a new RelationshipRepository
func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &GormRelationshipRepository{db: db}
}

// toggle inserts the join record, deferring to its composite primary key on
// conflict. A conflict means the record already existed, in which case it is
// deleted instead. Two identical concurrent toggles therefore leave at most
// one surviving row and neither request sees a constraint error.
func (r *GormRelationshipRepository) toggle(record any) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(record)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return false, result.Error
	}
	if result.Error == nil && result.RowsAffected > 0 {
		return true, nil
	}

	if err := r.db.Delete(record).Error; err != nil {
		return false, err
	}
	return false, nil
}

func (r *GormRelationshipRepository) exists(model any, query string, args ...any) (bool, error) {
	var count int64
	if err := r.db.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ToggleLike creates or removes a like for (post, user)
func (r *GormRelationshipRepository) ToggleLike(postID, userID uint64) (bool, error) {
	return r.toggle(&models.Like{PostID: postID, UserID: userID})
}

// ToggleSavedPost creates or removes a saved-post marker for (user, post)
func (r *GormRelationshipRepository) ToggleSavedPost(userID, postID uint64) (bool, error) {
	return r.toggle(&models.SavedPost{UserID: userID, PostID: postID})
}

// ToggleSavedProject creates or removes a saved-project marker for (user, project)
func (r *GormRelationshipRepository) ToggleSavedProject(userID, projectID uint64) (bool, error) {
	return r.toggle(&models.SavedProject{UserID: userID, ProjectID: projectID})
}

// ToggleFollower creates or removes the follow edge follower -> following
func (r *GormRelationshipRepository) ToggleFollower(followerID, followingID uint64) (bool, error) {
	return r.toggle(&models.Follower{FollowerID: followerID, FollowingID: followingID})
}

// HasLike reports whether the user has liked the post
func (r *GormRelationshipRepository) HasLike(postID, userID uint64) (bool, error) {
	return r.exists(&models.Like{}, "post_id = ? AND user_id = ?", postID, userID)
}

// HasSavedPost reports whether the user has saved the post
func (r *GormRelationshipRepository) HasSavedPost(userID, postID uint64) (bool, error) {
	return r.exists(&models.SavedPost{}, "user_id = ? AND post_id = ?", userID, postID)
}

// HasSavedProject reports whether the user has saved the project
func (r *GormRelationshipRepository) HasSavedProject(userID, projectID uint64) (bool, error) {
	return r.exists(&models.SavedProject{}, "user_id = ? AND project_id = ?", userID, projectID)
}

// IsFollowing reports whether the follow edge follower -> following exists
func (r *GormRelationshipRepository) IsFollowing(followerID, followingID uint64) (bool, error) {
	return r.exists(&models.Follower{}, "follower_id = ? AND following_id = ?", followerID, followingID)
}

// CountFollowers counts the users following the given user
func (r *GormRelationshipRepository) CountFollowers(userID uint64) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Follower{}).Where("following_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountFollowing counts the users the given user follows
func (r *GormRelationshipRepository) CountFollowing(userID uint64) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Follower{}).Where("follower_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListSavedPosts lists the posts a user has bookmarked, newest first
func (r *GormRelationshipRepository) ListSavedPosts(userID uint64) ([]models.SavedPost, error) {
	var saved []models.SavedPost
	if err := r.db.Preload("Post").Preload("Post.User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&saved).Error; err != nil {
		return nil, err
	}
	return saved, nil
}

// ListSavedProjects lists the projects a user has bookmarked, newest first
func (r *GormRelationshipRepository) ListSavedProjects(userID uint64) ([]models.SavedProject, error) {
	var saved []models.SavedProject
	if err := r.db.Preload("Project").Preload("Project.Owner").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&saved).Error; err != nil {
		return nil, err
	}
	return saved, nil
}
