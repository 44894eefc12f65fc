package models

import "time"

// Follower is a directed edge from follower to followed user. Self-edges are
// rejected in the service layer before the row is ever written.
type Follower struct {
	FollowerID  uint64    `gorm:"primarykey" json:"follower_id"`
	FollowingID uint64    `gorm:"primarykey" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	FollowerUser  User `gorm:"foreignKey:FollowerID" json:"-"`
	FollowingUser User `gorm:"foreignKey:FollowingID" json:"-"`
}
