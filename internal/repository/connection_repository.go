package repository

import (
	"github.com/prosync/prosync-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormConnectionRepository is a GORM implementation of ConnectionRepository
type GormConnectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new ConnectionRepository
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &GormConnectionRepository{db: db}
}

// Create creates a new connection request
func (r *GormConnectionRepository) Create(request *models.ConnectionRequest) error {
	return r.db.Create(request).Error
}

// FindByID finds a connection request by ID
func (r *GormConnectionRepository) FindByID(id uint64) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	if err := r.db.Preload("Sender").Preload("Receiver").First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// FindBetween finds the single request between two users in either direction
func (r *GormConnectionRepository) FindBetween(userA, userB uint64) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	if err := r.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userA, userB, userB, userA,
	).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// Update persists changes to a connection request
func (r *GormConnectionRepository) Update(request *models.ConnectionRequest) error {
	return r.db.Omit(clause.Associations).Save(request).Error
}

// ListPendingForReceiver lists pending requests addressed to a user
func (r *GormConnectionRepository) ListPendingForReceiver(receiverID uint64) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	if err := r.db.Preload("Sender").
		Where("receiver_id = ? AND status = ?", receiverID, models.StatusPending).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
