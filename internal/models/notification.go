package models

import "time"

// Notification is an immutable event record; only the read flag may change
// after creation.
type Notification struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	SenderID   uint64    `gorm:"not null" json:"sender_id"`
	ReceiverID uint64    `gorm:"not null;index" json:"receiver_id"`
	PostID     *uint64   `json:"post_id"`
	ProjectID  *uint64   `json:"project_id"`
	Message    string    `gorm:"type:varchar(255);not null" json:"message"`
	IsRead     bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Sender   User     `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver User     `gorm:"foreignKey:ReceiverID" json:"-"`
	Post     *Post    `gorm:"foreignKey:PostID" json:"-"`
	Project  *Project `gorm:"foreignKey:ProjectID" json:"-"`
}
