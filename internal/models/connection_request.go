package models

import "time"

// ConnectionRequest is an undirected relationship candidate stored as a
// directed (sender, receiver) row. At most one row may exist per unordered
// pair of users; the service checks both directions before creating one.
type ConnectionRequest struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	SenderID   uint64         `gorm:"not null;uniqueIndex:idx_connection_pair" json:"sender_id"`
	ReceiverID uint64         `gorm:"not null;uniqueIndex:idx_connection_pair" json:"receiver_id"`
	Status     WorkflowStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	// Relations
	Sender   User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}
