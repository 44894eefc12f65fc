package models

import "time"

// Post is authored by a user and optionally attached to a project.
// Visibility is derived, never stored: a post is visible when it has no
// project, when its project is public, or when the viewer authored it.
type Post struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	ProjectID *uint64   `gorm:"index" json:"project_id"`
	ImageURL  string    `gorm:"type:varchar(500)" json:"image_url"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User     User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project  *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"-"`
	Likes    []Like    `gorm:"foreignKey:PostID" json:"-"`
}
