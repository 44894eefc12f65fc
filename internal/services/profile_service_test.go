package services

import (
	"testing"

	"github.com/prosync/prosync-api/internal/models"
	"github.com/prosync/prosync-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProfileService(db *gorm.DB) *ProfileService {
	return NewProfileService(
		repository.NewProfileRepository(db),
		repository.NewUserRepository(db),
		repository.NewProjectRepository(db),
		repository.NewRelationshipRepository(db),
	)
}

func TestProfileService_GetByUserID(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(db)

	user := seedUser(t, db, "someone")

	profile, err := svc.GetByUserID(user.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, profile.UserID)
	require.Equal(t, "someone", profile.User.Username)

	_, err = svc.GetByUserID(user.ID + 999)
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileService_UpdateMe(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(db)

	user := seedUser(t, db, "someone")
	other := seedUser(t, db, "other")

	bio := "builds things"
	newEmail := "fresh@example.com"
	profile, err := svc.UpdateMe(user.ID, UpdateProfileInput{Bio: &bio, Email: &newEmail})
	require.NoError(t, err)
	require.Equal(t, "builds things", profile.Bio)

	// The email change is written through to the user record
	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.Equal(t, "fresh@example.com", updated.Email)

	// Taking another user's email is refused
	takenEmail := other.Email
	_, err = svc.UpdateMe(user.ID, UpdateProfileInput{Email: &takenEmail})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestProfileService_Search(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(db)

	seedUser(t, db, "alice")
	seedUser(t, db, "alicia")
	seedUser(t, db, "bob")

	profiles, total, err := svc.Search("ali", 0, 20)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, profiles, 2)

	profiles, total, err = svc.Search("", 0, 20)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, profiles, 3)
}

func TestProfileService_Stats(t *testing.T) {
	db := newTestDB(t)
	svc := newProfileService(db)

	star := seedUser(t, db, "star")
	fanA := seedUser(t, db, "fana")
	fanB := seedUser(t, db, "fanb")

	require.NoError(t, db.Create(&models.Follower{FollowerID: fanA.ID, FollowingID: star.ID}).Error)
	require.NoError(t, db.Create(&models.Follower{FollowerID: fanB.ID, FollowingID: star.ID}).Error)
	seedProject(t, db, star.ID, "Widget", "widget")

	stats, err := svc.Stats(star.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.FollowerCount)
	require.EqualValues(t, 0, stats.FollowingCount)
	require.EqualValues(t, 1, stats.ProjectCount)

	stats, err = svc.Stats(fanA.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, stats.FollowerCount)
	require.EqualValues(t, 1, stats.FollowingCount)
}
