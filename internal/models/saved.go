package models

import "time"

// SavedPost and SavedProject are private bookmarks; they are never shown to
// other users. Same at-most-one-per-pair rule as Like.

type SavedPost struct {
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	PostID    uint64    `gorm:"primarykey" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

type SavedProject struct {
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	ProjectID uint64    `gorm:"primarykey" json:"project_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
