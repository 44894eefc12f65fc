package models

import "time"

// Profile holds display attributes for a user. Every user has exactly one
// profile; it is created in the same transaction as the user itself.
// The OTP pair is only populated during a password-reset flow and is cleared
// once the reset succeeds.
type Profile struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	UserID       uint64     `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName     string     `gorm:"type:varchar(200)" json:"full_name"`
	Phone        string     `gorm:"type:varchar(20)" json:"phone"`
	Bio          string     `gorm:"type:text" json:"bio"`
	Profession   string     `gorm:"type:varchar(100)" json:"profession"`
	AvatarURL    string     `gorm:"type:varchar(500)" json:"avatar_url"`
	OTP          string     `gorm:"type:varchar(6)" json:"-"`
	OTPCreatedAt *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
