package repository

import (
	"github.com/prosync/prosync-api/internal/models"
	"gorm.io/gorm"
)

// GormChatRepository is a GORM implementation of ChatRepository
type GormChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &GormChatRepository{db: db}
}

// Create appends a chat message
func (r *GormChatRepository) Create(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}

// Conversation lists the messages between two users, oldest first
func (r *GormChatRepository) Conversation(userID, otherID uint64) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := r.db.Preload("Sender").Preload("Receiver").
		Where(
			"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID,
		).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkConversationRead marks messages from other to user as read
func (r *GormChatRepository) MarkConversationRead(userID, otherID uint64) error {
	return r.db.Model(&models.ChatMessage{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", otherID, userID, false).
		Update("is_read", true).Error
}

// ListForUser lists all messages a user sent or received, newest first
func (r *GormChatRepository) ListForUser(userID uint64) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := r.db.Preload("Sender").Preload("Receiver").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
