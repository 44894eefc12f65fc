package dto

import (
	"github.com/prosync/prosync-api/internal/models"
	"github.com/prosync/prosync-api/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ProfileDTO represents a profile in API responses
type ProfileDTO struct {
	ID               uint64 `json:"id"`
	UserID           uint64 `json:"user_id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	FullName         string `json:"full_name"`
	Phone            string `json:"phone,omitempty"`
	Bio              string `json:"bio,omitempty"`
	Profession       string `json:"profession,omitempty"`
	AvatarURL        string `json:"avatar_url,omitempty"`
	FollowerCount    int64  `json:"follower_count"`
	FollowingCount   int64  `json:"following_count"`
	RepoCount        int64  `json:"repo_count"`
	ConnectionStatus string `json:"connection_status,omitempty"`
	IsFollowing      bool   `json:"is_following"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// ToProfileDTO converts a Profile model plus its derived stats and
// viewer-relative state to a ProfileDTO
func ToProfileDTO(profile models.Profile, stats services.ProfileStats, status services.ConnectionStatus, following bool) ProfileDTO {
	return ProfileDTO{
		ID:               profile.ID,
		UserID:           profile.UserID,
		Username:         profile.User.Username,
		Email:            profile.User.Email,
		FullName:         profile.FullName,
		Phone:            profile.Phone,
		Bio:              profile.Bio,
		Profession:       profile.Profession,
		AvatarURL:        profile.AvatarURL,
		FollowerCount:    stats.FollowerCount,
		FollowingCount:   stats.FollowingCount,
		RepoCount:        stats.ProjectCount,
		ConnectionStatus: string(status),
		IsFollowing:      following,
	}
}
