package services

import (
	"errors"
	"fmt"

	"github.com/prosync/prosync-api/internal/models"
	"github.com/prosync/prosync-api/internal/repository"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileService provides business logic for profile operations.
type ProfileService struct {
	profileRepo      repository.ProfileRepository
	userRepo         repository.UserRepository
	projectRepo      repository.ProjectRepository
	relationshipRepo repository.RelationshipRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	relationshipRepo repository.RelationshipRepository,
) *ProfileService {
	return &ProfileService{
		profileRepo:      profileRepo,
		userRepo:         userRepo,
		projectRepo:      projectRepo,
		relationshipRepo: relationshipRepo,
	}
}

// GetByUserID returns the profile belonging to a user.
func (s *ProfileService) GetByUserID(userID uint64) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profile, nil
}

// UpdateProfileInput represents a partial profile update. Nil fields are left
// untouched.
type UpdateProfileInput struct {
	FullName   *string
	Phone      *string
	Bio        *string
	Profession *string
	AvatarURL  *string
	Email      *string
}

// UpdateMe applies a partial update to the caller's own profile. An email
// change is written through to the user record.
func (s *ProfileService) UpdateMe(userID uint64, input UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		profile.FullName = *input.FullName
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.Profession != nil {
		profile.Profession = *input.Profession
	}
	if input.AvatarURL != nil {
		profile.AvatarURL = *input.AvatarURL
	}

	if input.Email != nil && *input.Email != profile.User.Email {
		user, err := s.userRepo.FindByID(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		user.Email = *input.Email
		if err := s.userRepo.Update(user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrEmailTaken
			}
			return nil, fmt.Errorf("failed to update email: %w", err)
		}
		profile.User = *user
	}

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}

// Search lists profiles matching the query.
func (s *ProfileService) Search(query string, offset, limit int) ([]models.Profile, int64, error) {
	profiles, total, err := s.profileRepo.Search(query, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search profiles: %w", err)
	}
	return profiles, total, nil
}

// ProfileStats are the derived counters shown alongside a profile.
type ProfileStats struct {
	FollowerCount  int64
	FollowingCount int64
	ProjectCount   int64
}

// Stats returns the follow and project counts for a user.
func (s *ProfileService) Stats(userID uint64) (ProfileStats, error) {
	followers, err := s.relationshipRepo.CountFollowers(userID)
	if err != nil {
		return ProfileStats{}, fmt.Errorf("failed to count followers: %w", err)
	}
	following, err := s.relationshipRepo.CountFollowing(userID)
	if err != nil {
		return ProfileStats{}, fmt.Errorf("failed to count following: %w", err)
	}
	projects, err := s.projectRepo.CountByOwner(userID)
	if err != nil {
		return ProfileStats{}, fmt.Errorf("failed to count projects: %w", err)
	}
	return ProfileStats{
		FollowerCount:  followers,
		FollowingCount: following,
		ProjectCount:   projects,
	}, nil
}
