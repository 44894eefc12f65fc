package repository

import (
	"errors"
	"time"

	"github.com/prosync/prosync-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvitationRepository is a GORM implementation of InvitationRepository
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &GormInvitationRepository{db: db}
}

// Create creates a new invitation
func (r *GormInvitationRepository) Create(invitation *models.Invitation) error {
	return r.db.Create(invitation).Error
}

// FindByID finds an invitation by ID with its project preloaded
func (r *GormInvitationRepository) FindByID(id uint64) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.Preload("Project").Preload("Project.Owner").
		First(&invitation, id).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// FindByProjectAndReceiver finds the invitation for a (project, receiver) pair
func (r *GormInvitationRepository) FindByProjectAndReceiver(projectID, receiverID uint64) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.Where("project_id = ? AND receiver_id = ?", projectID, receiverID).
		First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// Update persists changes to an invitation
func (r *GormInvitationRepository) Update(invitation *models.Invitation) error {
	return r.db.Omit(clause.Associations).Save(invitation).Error
}

// AcceptWithCollaboration marks the invitation accepted and ensures the
// collaboration exists, in one transaction. The collaboration insert defers
// to the (project, user) primary key so a double acceptance cannot produce a
// second row.
func (r *GormInvitationRepository) AcceptWithCollaboration(invitation *models.Invitation, role string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		invitation.Status = models.StatusAccepted
		if err := tx.Omit(clause.Associations).Save(invitation).Error; err != nil {
			return err
		}

		collaboration := models.Collaboration{
			ProjectID: invitation.ProjectID,
			UserID:    invitation.ReceiverID,
			Role:      role,
			JoinedAt:  time.Now(),
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&collaboration).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}

		return nil
	})
}

// ListPendingForReceiver lists pending invitations addressed to a user
func (r *GormInvitationRepository) ListPendingForReceiver(receiverID uint64) ([]models.Invitation, error) {
	var invitations []models.Invitation
	if err := r.db.Preload("Project").Preload("Project.Owner").
		Where("receiver_id = ? AND status = ?", receiverID, models.StatusPending).
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}
