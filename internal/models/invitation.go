package models

import "time"

// Invitation asks a user to collaborate on a project. Only the project owner
// may create one; at most one exists per (project, receiver) pair.
type Invitation struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	ProjectID  uint64         `gorm:"not null;uniqueIndex:idx_invitation_pair" json:"project_id"`
	ReceiverID uint64         `gorm:"not null;uniqueIndex:idx_invitation_pair" json:"receiver_id"`
	Status     WorkflowStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	// Relations
	Project  Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Receiver User    `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}
