package repository

import (
	"errors"
	"time"

	"github.com/prosync/prosync-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.Preload("Owner").First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindBySlug finds a project by its slug
func (r *GormProjectRepository) FindBySlug(slug string) (*models.Project, error) {
	var project models.Project
	if err := r.db.Preload("Owner").Where("slug = ?", slug).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// SlugExists reports whether a slug is already taken
func (r *GormProjectRepository) SlugExists(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Project{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByOwner lists all projects owned by a user, pinned first
func (r *GormProjectRepository) ListByOwner(ownerID uint64) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Where("owner_id = ?", ownerID).
		Order("is_pinned DESC, created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Search lists public projects matching the query across name, technology and
// description
func (r *GormProjectRepository) Search(query string, offset, limit int) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	base := r.db.Model(&models.Project{}).Where("is_private = ?", false)

	if query != "" {
		pattern := "%" + query + "%"
		base = base.Where(
			"name LIKE ? OR technology LIKE ? OR description LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := base.Preload("Owner").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// CountByOwner counts the projects a user owns
func (r *GormProjectRepository) CountByOwner(ownerID uint64) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Project{}).Where("owner_id = ?", ownerID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update persists changes to a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Omit(clause.Associations).Save(project).Error
}

// Delete removes a project and all related data in a transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var postIDs []uint64
		if err := tx.Model(&models.Post{}).Where("project_id = ?", id).
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}

		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.SavedPost{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Collaboration{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Invitation{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.SavedProject{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// ListCollaborators lists the collaborations of a project with users
func (r *GormProjectRepository) ListCollaborators(projectID uint64) ([]models.Collaboration, error) {
	var collaborations []models.Collaboration
	if err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Find(&collaborations).Error; err != nil {
		return nil, err
	}
	return collaborations, nil
}

// GetOrCreateCollaboration atomically ensures a collaboration exists for
// (project, user). The insert defers to the composite primary key on
// conflict, so two concurrent acceptances still leave exactly one row.
func (r *GormProjectRepository) GetOrCreateCollaboration(projectID, userID uint64, role string) (bool, error) {
	collaboration := models.Collaboration{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		JoinedAt:  time.Now(),
	}

	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&collaboration)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
