package services

import (
	"testing"

	"github.com/prosync/prosync-api/internal/database"
	"github.com/prosync/prosync-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Project{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.SavedPost{},
		&models.SavedProject{},
		&models.Follower{},
		&models.Collaboration{},
		&models.ConnectionRequest{},
		&models.Invitation{},
		&models.Notification{},
		&models.ChatMessage{},
	)
	require.NoError(t, err)
	require.NoError(t, database.EnsurePairIndexes(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.Profile{UserID: user.ID, FullName: username}).Error)
	return user
}

func seedProject(t *testing.T, db *gorm.DB, ownerID uint64, name, slug string) *models.Project {
	t.Helper()

	project := &models.Project{
		OwnerID: ownerID,
		Name:    name,
		Slug:    slug,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func seedPost(t *testing.T, db *gorm.DB, userID uint64, content string) *models.Post {
	t.Helper()

	post := &models.Post{
		UserID:  userID,
		Content: content,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func notificationsFor(t *testing.T, db *gorm.DB, receiverID uint64) []models.Notification {
	t.Helper()

	var notifications []models.Notification
	require.NoError(t, db.Where("receiver_id = ?", receiverID).Find(&notifications).Error)
	return notifications
}
