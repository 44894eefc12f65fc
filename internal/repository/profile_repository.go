package repository

import (
	"github.com/prosync/prosync-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProfileRepository is a GORM implementation of ProfileRepository
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindByUserID finds the profile belonging to a user
func (r *GormProfileRepository) FindByUserID(userID uint64) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update persists changes to a profile
func (r *GormProfileRepository) Update(profile *models.Profile) error {
	return r.db.Omit(clause.Associations).Save(profile).Error
}

// Search lists profiles matching the query across full name, username and
// profession
func (r *GormProfileRepository) Search(query string, offset, limit int) ([]models.Profile, int64, error) {
	var profiles []models.Profile
	var total int64

	base := r.db.Model(&models.Profile{}).
		Joins("JOIN users ON users.id = profiles.user_id")

	if query != "" {
		pattern := "%" + query + "%"
		base = base.Where(
			"profiles.full_name LIKE ? OR users.username LIKE ? OR profiles.profession LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := base.Preload("User").
		Offset(offset).Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}
