package models

import "time"

// Collaboration links a user to a project with a role label. Created either
// directly by the owner or as the side effect of an accepted invitation.
type Collaboration struct {
	ProjectID uint64    `gorm:"primarykey" json:"project_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	Role      string    `gorm:"type:varchar(50);not null" json:"role"`
	JoinedAt  time.Time `json:"joined_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
