package models

import "time"

type Project struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	OwnerID     uint64    `gorm:"not null;index" json:"owner_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Technology  string    `gorm:"type:varchar(100)" json:"technology"`
	ArchiveURL  string    `gorm:"type:varchar(500)" json:"archive_url"`
	CoverURL    string    `gorm:"type:varchar(500)" json:"cover_url"`
	IsPrivate   bool      `gorm:"not null;default:false" json:"is_private"`
	IsPinned    bool      `gorm:"not null;default:false" json:"is_pinned"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Owner         User            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Posts         []Post          `gorm:"foreignKey:ProjectID" json:"-"`
	Collaborators []Collaboration `gorm:"foreignKey:ProjectID" json:"-"`
}
