package models

import "time"

// Like is a join record keyed by (post, user). The composite primary key is
// the uniqueness constraint the toggle engine relies on to stay race-safe.
type Like struct {
	PostID    uint64    `gorm:"primarykey" json:"post_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Post Post `gorm:"foreignKey:PostID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}
